// internal/client/client.go
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/unclebandit/rfm-dashboard-backend/internal/model"
	"github.com/unclebandit/rfm-dashboard-backend/internal/query"
)

// Client consumes the dashboard API the same way the browser front-end does.
// It satisfies pagination.DataSource, so a Pager can drive it directly.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

type searchRequest struct {
	Segment    string `json:"segment"`
	CustomerID string `json:"customerId"`
	Limit      int    `json:"limit,omitempty"`
	Offset     int    `json:"offset"`
}

// FetchPage calls POST /api/clients. The filter is serialized with the
// empty-string sentinel for unconstrained fields, matching Count exactly.
func (c *Client) FetchPage(f query.Filter, limit, offset int) (*model.CustomerPage, error) {
	var resp struct {
		Success bool                   `json:"success"`
		Data    []model.CustomerRecord `json:"data"`
		Columns []string               `json:"columns"`
		Error   string                 `json:"error"`
	}
	req := searchRequest{Segment: f.Segment, CustomerID: f.CustomerID, Limit: limit, Offset: offset}
	if err := c.post("/api/clients", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("search failed: %s", resp.Error)
	}
	return &model.CustomerPage{Columns: resp.Columns, Rows: resp.Data}, nil
}

// Count calls POST /api/clients/count under the same filter contract.
func (c *Client) Count(f query.Filter) (int, error) {
	var resp struct {
		Success bool   `json:"success"`
		Total   int    `json:"total"`
		Error   string `json:"error"`
	}
	req := searchRequest{Segment: f.Segment, CustomerID: f.CustomerID}
	if err := c.post("/api/clients/count", req, &resp); err != nil {
		return 0, err
	}
	if !resp.Success {
		return 0, fmt.Errorf("count failed: %s", resp.Error)
	}
	return resp.Total, nil
}

// CustomerProducts calls GET /api/customers/{id}/products.
func (c *Client) CustomerProducts(customerID string) (*model.CustomerProductsView, error) {
	var resp struct {
		Success    bool                  `json:"success"`
		CustomerID string                `json:"customer_id"`
		Products   []model.ProductRecord `json:"products"`
		Total      float64               `json:"total"`
		Error      string                `json:"error"`
	}
	if err := c.get("/api/customers/"+customerID+"/products", &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("product fetch failed: %s", resp.Error)
	}
	return &model.CustomerProductsView{
		CustomerID: resp.CustomerID,
		Products:   resp.Products,
		Total:      resp.Total,
	}, nil
}

// ListProducts calls GET /api/products for the product-grid view.
func (c *Client) ListProducts(limit, offset int) ([]model.ProductRecord, error) {
	var resp struct {
		Success  bool                  `json:"success"`
		Products []model.ProductRecord `json:"products"`
		Error    string                `json:"error"`
	}
	path := fmt.Sprintf("/api/products?limit=%d&offset=%d", limit, offset)
	if err := c.get(path, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("product list failed: %s", resp.Error)
	}
	return resp.Products, nil
}

func (c *Client) post(path string, body, out interface{}) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	res, err := c.HTTP.Post(c.BaseURL+path, "application/json", bytes.NewReader(b))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	return json.NewDecoder(res.Body).Decode(out)
}

func (c *Client) get(path string, out interface{}) error {
	res, err := c.HTTP.Get(c.BaseURL + path)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	return json.NewDecoder(res.Body).Decode(out)
}
