package queue_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/unclebandit/rfm-dashboard-backend/internal/queue"
)

func TestPublishWithoutSubscribers(t *testing.T) {
	q := queue.NewInMemoryQueue()
	if err := q.Publish(queue.ExportTopic, queue.ExportJob{ID: "j1"}); err == nil {
		t.Fatal("expected error when no subscribers registered")
	}
}

func TestPublishDeliversToSubscriber(t *testing.T) {
	q := queue.NewInMemoryQueue()

	done := make(chan queue.ExportJob, 1)
	q.Subscribe(queue.ExportTopic, func(payload any) error {
		done <- payload.(queue.ExportJob)
		return nil
	})

	if err := q.Publish(queue.ExportTopic, queue.ExportJob{ID: "j1"}); err != nil {
		t.Fatalf("unexpected publish error: %v", err)
	}

	select {
	case job := <-done:
		if job.ID != "j1" {
			t.Errorf("expected job j1, got %s", job.ID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber never received the job")
	}
}

func TestPublishRetriesFailedJobs(t *testing.T) {
	q := queue.NewInMemoryQueue()

	var mu sync.Mutex
	attempts := 0
	done := make(chan struct{})
	q.Subscribe(queue.ExportTopic, func(payload any) error {
		mu.Lock()
		defer mu.Unlock()
		attempts++
		if attempts < 2 {
			return errors.New("transient failure")
		}
		close(done)
		return nil
	})

	if err := q.Publish(queue.ExportTopic, queue.ExportJob{ID: "j2"}); err != nil {
		t.Fatalf("unexpected publish error: %v", err)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("job was not retried to success")
	}

	mu.Lock()
	defer mu.Unlock()
	if attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", attempts)
	}
}

func TestExportFileName(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	got := queue.ExportFileName("abc123", now)
	want := "customers_2025-06-15_abc123.csv"
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}
