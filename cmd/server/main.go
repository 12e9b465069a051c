// cmd/server/main.go
package main

import (
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/unclebandit/rfm-dashboard-backend/internal/controller"
	"github.com/unclebandit/rfm-dashboard-backend/internal/db"
	"github.com/unclebandit/rfm-dashboard-backend/internal/handler"
	"github.com/unclebandit/rfm-dashboard-backend/internal/queue"
	"github.com/unclebandit/rfm-dashboard-backend/internal/repository"
	"github.com/unclebandit/rfm-dashboard-backend/internal/service"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	// Init DB
	db.Init()

	customerRepo := &repository.CustomerRepository{DB: db.DB}
	productRepo := &repository.ProductRepository{DB: db.DB}

	customerService := &service.CustomerService{
		CustomerRepo: customerRepo,
		ProductRepo:  productRepo,
	}
	exportService := &service.ExportService{
		Customers: customerService,
	}

	exportDir := os.Getenv("EXPORT_DIR")
	if exportDir == "" {
		exportDir = "exports"
	}
	if err := os.MkdirAll(exportDir, 0o755); err != nil {
		log.Fatalf("failed to create export dir: %v", err)
	}

	q := queue.NewInMemoryQueue()
	queue.StartExportSubscriber(q, exportService, exportDir)

	customerController := &controller.CustomerController{
		CustomerService: customerService,
		DB:              db.DB,
	}
	exportController := &controller.ExportController{
		ExportService: exportService,
		Queue:         q,
		AmqpURL:       os.Getenv("AMQP_URL"),
	}
	productHandler := handler.NewProductHandler(customerService)

	r := chi.NewRouter()

	// Customer listing routes
	r.Post("/api/clients", customerController.Search)
	r.Post("/api/clients/count", customerController.Count)
	r.Get("/api/clients/export", exportController.Download)
	r.Post("/api/exports", exportController.CreateJob)
	r.Get("/api/segments", customerController.Segments)
	r.Get("/api/statistics", customerController.Statistics)
	r.Get("/api/health", customerController.Health)

	// Product routes
	r.Get("/api/customers/{customerID}/products", productHandler.GetCustomerProductsHandler)
	r.Get("/api/products", productHandler.ListProductsHandler)
	r.Get("/api/products/statistics", productHandler.ProductStatisticsHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Println("🚀 Server running on :" + port)
	log.Fatal(http.ListenAndServe(":"+port, r))
}
