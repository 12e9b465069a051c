// internal/controller/customer_controller.go
package controller

import (
    "database/sql"
    "encoding/json"
    "log"
    "net/http"
    "time"

    "github.com/unclebandit/rfm-dashboard-backend/internal/query"
    "github.com/unclebandit/rfm-dashboard-backend/internal/service"
)

type CustomerController struct {
    CustomerService *service.CustomerService
    DB              *sql.DB
}

// Search handles POST /api/clients: one filtered, bounded page of customers.
func (c *CustomerController) Search(w http.ResponseWriter, r *http.Request) {
    var body struct {
        Segment    string `json:"segment"`
        CustomerID string `json:"customerId"`
        Limit      int    `json:"limit"`
        Offset     int    `json:"offset"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }

    if body.Limit == 0 {
        body.Limit = 10
    }
    safeLimit := query.ClampLimit(body.Limit)
    safeOffset := query.ClampOffset(body.Offset)

    f := query.Normalize(body.Segment, body.CustomerID)
    log.Printf("📥 Search request: segment=%q customerId=%q limit=%d offset=%d\n",
        f.Segment, f.CustomerID, safeLimit, safeOffset)

    page, err := c.CustomerService.SearchPage(f, safeLimit, safeOffset)
    if err != nil {
        log.Println("❌ API Error:", err)
        w.Header().Set("Content-Type", "application/json")
        w.WriteHeader(http.StatusInternalServerError)
        json.NewEncoder(w).Encode(map[string]interface{}{
            "error": err.Error(),
            "code":  "QUERY_EXECUTION_ERROR",
        })
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(map[string]interface{}{
        "success": true,
        "data":    page.Rows,
        "columns": page.Columns,
        "meta": map[string]int{
            "limit":    safeLimit,
            "offset":   safeOffset,
            "rowCount": len(page.Rows),
        },
    })
}

// Count handles POST /api/clients/count: the unbounded total for the same
// filter contract as Search.
func (c *CustomerController) Count(w http.ResponseWriter, r *http.Request) {
    var body struct {
        Segment    string `json:"segment"`
        CustomerID string `json:"customerId"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }

    f := query.Normalize(body.Segment, body.CustomerID)

    total, err := c.CustomerService.CountMatching(f)
    if err != nil {
        log.Println("❌ Count Error:", err)
        w.Header().Set("Content-Type", "application/json")
        w.WriteHeader(http.StatusInternalServerError)
        json.NewEncoder(w).Encode(map[string]interface{}{
            "error": err.Error(),
            "code":  "COUNT_ERROR",
        })
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(map[string]interface{}{
        "success": true,
        "total":   total,
    })
}

// Segments handles GET /api/segments for the filter dropdown.
func (c *CustomerController) Segments(w http.ResponseWriter, r *http.Request) {
    segments, err := c.CustomerService.Segments()
    if err != nil {
        log.Println("❌ Error fetching segments:", err)
        w.Header().Set("Content-Type", "application/json")
        w.WriteHeader(http.StatusInternalServerError)
        json.NewEncoder(w).Encode(map[string]interface{}{
            "error": err.Error(),
            "code":  "FETCH_SEGMENTS_ERROR",
        })
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(map[string]interface{}{
        "success":  true,
        "segments": segments,
    })
}

// Statistics handles GET /api/statistics for the dashboard charts.
func (c *CustomerController) Statistics(w http.ResponseWriter, r *http.Request) {
    stats, err := c.CustomerService.SegmentStatistics()
    if err != nil {
        log.Println("❌ Error fetching statistics:", err)
        w.Header().Set("Content-Type", "application/json")
        w.WriteHeader(http.StatusInternalServerError)
        json.NewEncoder(w).Encode(map[string]interface{}{
            "error": err.Error(),
            "code":  "FETCH_STATISTICS_ERROR",
        })
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(map[string]interface{}{
        "success":    true,
        "statistics": stats,
    })
}

// Health handles GET /api/health.
func (c *CustomerController) Health(w http.ResponseWriter, r *http.Request) {
    w.Header().Set("Content-Type", "application/json")
    if err := c.DB.Ping(); err != nil {
        w.WriteHeader(http.StatusInternalServerError)
        json.NewEncoder(w).Encode(map[string]interface{}{
            "status":   "error",
            "database": "disconnected",
        })
        return
    }
    json.NewEncoder(w).Encode(map[string]interface{}{
        "status":    "healthy",
        "database":  "connected",
        "timestamp": time.Now().UTC().Format(time.RFC3339),
    })
}
