package client_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/rfm-dashboard-backend/internal/client"
	"github.com/unclebandit/rfm-dashboard-backend/internal/model"
	"github.com/unclebandit/rfm-dashboard-backend/internal/pagination"
	"github.com/unclebandit/rfm-dashboard-backend/internal/query"
)

// fakeBackend serves the customer endpoints over a 23-row Champions set.
type fakeBackend struct {
	countFails bool
}

func (b *fakeBackend) rows(segment string) []model.CustomerRecord {
	if segment != "" && segment != "Champions" {
		return []model.CustomerRecord{}
	}
	rows := make([]model.CustomerRecord, 23)
	for i := range rows {
		rows[i] = model.CustomerRecord{
			"CustomerID": fmt.Sprintf("C%03d", i+1),
			"Segment":    "Champions",
		}
	}
	return rows
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/clients", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Segment    string `json:"segment"`
			CustomerID string `json:"customerId"`
			Limit      int    `json:"limit"`
			Offset     int    `json:"offset"`
		}
		json.NewDecoder(r.Body).Decode(&body)

		rows := b.rows(body.Segment)
		start := body.Offset
		if start > len(rows) {
			start = len(rows)
		}
		end := start + body.Limit
		if end > len(rows) {
			end = len(rows)
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    rows[start:end],
			"columns": []string{"CustomerID", "Segment"},
			"meta":    map[string]int{"limit": body.Limit, "offset": body.Offset, "rowCount": end - start},
		})
	})
	mux.HandleFunc("/api/products", func(w http.ResponseWriter, r *http.Request) {
		products := make([]model.ProductRecord, 30)
		for i := range products {
			products[i] = model.ProductRecord{ID: i + 1, CustomerID: "C001", ProductName: "Item", Quantity: 1, Price: 10}
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success":  true,
			"products": products,
		})
	})
	mux.HandleFunc("/api/clients/count", func(w http.ResponseWriter, r *http.Request) {
		if b.countFails {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error": "count unavailable",
				"code":  "COUNT_ERROR",
			})
			return
		}
		var body struct {
			Segment string `json:"segment"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"total":   len(b.rows(body.Segment)),
		})
	})
	return mux
}

func TestClientFetchPageAndCount(t *testing.T) {
	srv := httptest.NewServer((&fakeBackend{}).handler())
	defer srv.Close()

	c := client.New(srv.URL)
	f := query.Filter{Segment: "Champions"}

	page, err := c.FetchPage(f, 10, 0)
	require.NoError(t, err)
	assert.Len(t, page.Rows, 10)
	assert.Equal(t, []string{"CustomerID", "Segment"}, page.Columns)

	total, err := c.Count(f)
	require.NoError(t, err)
	assert.Equal(t, 23, total)
}

// The product catalog fetched in one call pages locally by the grid size.
func TestClientListProductsGridPaging(t *testing.T) {
	srv := httptest.NewServer((&fakeBackend{}).handler())
	defer srv.Close()

	c := client.New(srv.URL)
	products, err := c.ListProducts(1000, 0)
	require.NoError(t, err)
	require.Len(t, products, 30)

	lastPageStart := 2 * pagination.ProductPageSize
	assert.Len(t, products[lastPageStart:], 6, "30 products fill two grid pages of 12 plus 6")
}

func TestClientCountFailure(t *testing.T) {
	srv := httptest.NewServer((&fakeBackend{countFails: true}).handler())
	defer srv.Close()

	c := client.New(srv.URL)
	_, err := c.Count(query.Filter{})
	require.Error(t, err)
}

// The pager driving the HTTP client end to end: the same flow the browser
// front-end runs against the real server.
func TestPagerOverClient(t *testing.T) {
	srv := httptest.NewServer((&fakeBackend{}).handler())
	defer srv.Close()

	p := pagination.New(client.New(srv.URL), pagination.CustomerPageSize)
	require.NoError(t, p.ApplyFilter(query.Filter{Segment: "Champions"}))

	assert.Equal(t, pagination.StateDisplaying, p.State())
	assert.Equal(t, 23, p.TotalRows())
	assert.Equal(t, 3, p.TotalPages())
	assert.True(t, p.CanNext())
	assert.False(t, p.CanPrev())

	require.NoError(t, p.RequestPage(3))
	assert.Len(t, p.Page().Rows, 3)
	assert.False(t, p.CanNext())
}

// Degraded mode over the wire: count endpoint 500s, fetch still works, the
// pager falls back to the fetched row count.
func TestPagerDegradedCountOverClient(t *testing.T) {
	srv := httptest.NewServer((&fakeBackend{countFails: true}).handler())
	defer srv.Close()

	p := pagination.New(client.New(srv.URL), pagination.CustomerPageSize)
	require.NoError(t, p.RequestPage(1))

	assert.Equal(t, pagination.StateDisplaying, p.State())
	assert.Equal(t, 10, p.TotalRows())
	assert.Equal(t, 1, p.TotalPages())
}
