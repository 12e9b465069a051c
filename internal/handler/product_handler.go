// internal/handler/product_handler.go
package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/unclebandit/rfm-dashboard-backend/internal/query"
	"github.com/unclebandit/rfm-dashboard-backend/internal/service"
)

// ProductHandler holds the dependencies for product-related HTTP handlers
type ProductHandler struct {
	Service *service.CustomerService
}

// NewProductHandler creates a new ProductHandler with the given service
func NewProductHandler(svc *service.CustomerService) *ProductHandler {
	return &ProductHandler{
		Service: svc,
	}
}

// GetCustomerProductsHandler returns a customer's purchase history and its
// spend total, for the product modal.
func (h *ProductHandler) GetCustomerProductsHandler(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerID")

	view, err := h.Service.CustomerProducts(customerID)
	if err != nil {
		log.Println("❌ Products Error:", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"error":   "Failed to fetch products",
		})
		return
	}

	log.Printf("✅ Found %d products for customer %s\n", len(view.Products), customerID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":     true,
		"customer_id": view.CustomerID,
		"products":    view.Products,
		"total":       view.Total,
	})
}

// ListProductsHandler returns a page of the product catalog
func (h *ProductHandler) ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	limit := 100
	offset := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			offset = n
		}
	}
	limit = query.ClampLimit(limit)
	offset = query.ClampOffset(offset)

	products, err := h.Service.ListAllProducts(limit, offset)
	if err != nil {
		log.Println("❌ Error fetching products:", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": err.Error(),
			"code":  "FETCH_PRODUCTS_ERROR",
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":  true,
		"products": products,
	})
}

// ProductStatisticsHandler returns catalog totals and the best-seller list
func (h *ProductHandler) ProductStatisticsHandler(w http.ResponseWriter, r *http.Request) {
	stats, top, err := h.Service.ProductStatistics()
	if err != nil {
		log.Println("❌ Error fetching product statistics:", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": err.Error(),
			"code":  "FETCH_PRODUCT_STATS_ERROR",
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":      true,
		"statistics":   stats,
		"top_products": top,
	})
}
