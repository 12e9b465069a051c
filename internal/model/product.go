// internal/model/product.go
package model

import "time"

type ProductRecord struct {
    ID          int       `db:"id" json:"id"`
    CustomerID  string    `db:"customer_id" json:"customer_id"`
    ProductName string    `db:"product_name" json:"product_name"`
    Quantity    int       `db:"quantity" json:"quantity"`
    Price       float64   `db:"price" json:"price"`
    ImageURL    *string   `db:"image_url" json:"image_url,omitempty"`
    CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// CustomerProductsView is the derived per-customer purchase view shown in the
// product modal. Recomputed on every fetch, never cached.
type CustomerProductsView struct {
    CustomerID string          `json:"customer_id"`
    Products   []ProductRecord `json:"products"`
    Total      float64         `json:"total"`
}
