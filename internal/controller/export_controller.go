// internal/controller/export_controller.go
package controller

import (
    "encoding/json"
    "fmt"
    "log"
    "net/http"
    "time"

    "github.com/google/uuid"
    "github.com/streadway/amqp"

    "github.com/unclebandit/rfm-dashboard-backend/internal/query"
    "github.com/unclebandit/rfm-dashboard-backend/internal/queue"
    "github.com/unclebandit/rfm-dashboard-backend/internal/service"
)

type ExportController struct {
    ExportService *service.ExportService
    Queue         queue.Queue
    // AmqpURL routes async jobs to RabbitMQ when set; otherwise they run on
    // the in-process queue.
    AmqpURL string
}

// Download handles GET /api/clients/export: synchronous CSV download of the
// full filtered set, same filter contract as the listing endpoints.
func (c *ExportController) Download(w http.ResponseWriter, r *http.Request) {
    f := query.Normalize(r.URL.Query().Get("segment"), r.URL.Query().Get("customerId"))

    result, err := c.ExportService.ExportCSV(f)
    if err != nil {
        log.Println("❌ Export error:", err)
        w.Header().Set("Content-Type", "application/json")
        w.WriteHeader(http.StatusInternalServerError)
        json.NewEncoder(w).Encode(map[string]interface{}{
            "error": err.Error(),
            "code":  "QUERY_EXECUTION_ERROR",
        })
        return
    }

    filename := fmt.Sprintf("customers_%s.csv", time.Now().Format("2006-01-02"))
    w.Header().Set("Content-Type", "text/csv; charset=utf-8")
    w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
    if result.Truncated {
        w.Header().Set("X-Export-Truncated", "true")
    }
    w.Write(result.Data)
}

// CreateJob handles POST /api/exports: queues an async export and returns the
// job id. The artifact lands in the export directory, named after the job.
func (c *ExportController) CreateJob(w http.ResponseWriter, r *http.Request) {
    var body struct {
        Segment    string `json:"segment"`
        CustomerID string `json:"customerId"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }

    job := queue.ExportJob{
        ID:     uuid.NewString(),
        Filter: query.Normalize(body.Segment, body.CustomerID),
    }

    if c.AmqpURL != "" {
        if err := c.publishToBroker(job); err != nil {
            log.Println("❌ Failed to queue export:", err)
            http.Error(w, "Failed to queue export", http.StatusInternalServerError)
            return
        }
    } else {
        if err := c.Queue.Publish(queue.ExportTopic, job); err != nil {
            log.Println("❌ Failed to queue export:", err)
            http.Error(w, "Failed to queue export", http.StatusInternalServerError)
            return
        }
    }

    log.Println("📤 Export job queued:", job.ID)

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(map[string]interface{}{
        "success": true,
        "job_id":  job.ID,
    })
}

func (c *ExportController) publishToBroker(job queue.ExportJob) error {
    conn, err := amqp.Dial(c.AmqpURL)
    if err != nil {
        return err
    }
    defer conn.Close()

    ch, err := conn.Channel()
    if err != nil {
        return err
    }
    defer ch.Close()

    q, err := ch.QueueDeclare(
        queue.ExportTopic,
        true,
        false,
        false,
        false,
        nil,
    )
    if err != nil {
        return err
    }

    body, err := json.Marshal(job)
    if err != nil {
        return err
    }

    return ch.Publish(
        "",
        q.Name,
        false,
        false,
        amqp.Publishing{
            ContentType: "application/json",
            Body:        body,
        },
    )
}
