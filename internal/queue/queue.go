package queue

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/unclebandit/rfm-dashboard-backend/internal/query"
	"github.com/unclebandit/rfm-dashboard-backend/internal/service"
)

// ExportTopic is the topic export jobs are published on, both in-process and
// on RabbitMQ.
const ExportTopic = "export_jobs"

// ExportJob asks a consumer to materialize one filtered customer export.
type ExportJob struct {
	ID     string       `json:"id"`
	Filter query.Filter `json:"filter"`
}

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue is an in-process queue with retry, used when the server runs
// without a broker.
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(payload any) error
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string][]func(payload any) error),
	}
}

// JobPayload wraps a message payload with retry info
type JobPayload struct {
	Payload    any
	RetryCount int
	MaxRetries int
}

// Publish sends a message to all subscribers
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	job := JobPayload{
		Payload:    payload,
		RetryCount: 0,
		MaxRetries: 3,
	}

	for _, handler := range handlers {
		go q.processJob(handler, job)
	}

	return nil
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(handler func(payload any) error, job JobPayload) {
	for job.RetryCount <= job.MaxRetries {
		err := handler(job.Payload)
		if err == nil {
			return // ACK
		}

		job.RetryCount++
		log.Printf("Job failed (attempt %d/%d): %+v, error: %v\n", job.RetryCount, job.MaxRetries, job.Payload, err)

		if job.RetryCount > job.MaxRetries {
			log.Printf("Job permanently failed after %d attempts: %+v\n", job.MaxRetries, job.Payload)
			return // No requeue
		}

		// Exponential backoff before retry
		time.Sleep(time.Duration(job.RetryCount*500) * time.Millisecond)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// StartExportSubscriber consumes export jobs, materializes the CSV and writes
// it under exportDir as customers_<date>_<jobID>.csv.
func StartExportSubscriber(q Queue, exports *service.ExportService, exportDir string) {
	go func() {
		err := q.Subscribe(ExportTopic, func(payload any) error {
			job, ok := payload.(ExportJob)
			if !ok {
				log.Println("⚠️ Invalid payload type, expected ExportJob")
				return nil // no retry
			}

			log.Println("📩 Processing export job:", job.ID)

			result, err := exports.ExportCSV(job.Filter)
			if err != nil {
				log.Println("⚠️ Export failed:", err)
				return err // triggers retry in queue
			}

			name := ExportFileName(job.ID, time.Now())
			path := filepath.Join(exportDir, name)
			if err := os.WriteFile(path, result.Data, 0o644); err != nil {
				log.Println("⚠️ Failed to write export file:", err)
				return err
			}

			log.Printf("✅ Export %s done: %d rows → %s\n", job.ID, result.RowCount, path)
			return nil
		})

		if err != nil {
			log.Println("⚠️ Failed to start subscriber for", ExportTopic, ":", err)
		}
	}()
}

// ExportFileName names an export artifact the way the dashboard download
// does: customers_<yyyy-mm-dd> plus the job id to keep same-day jobs apart.
func ExportFileName(jobID string, now time.Time) string {
	return fmt.Sprintf("customers_%s_%s.csv", now.Format("2006-01-02"), jobID)
}
