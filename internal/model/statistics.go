// internal/model/statistics.go
package model

// SegmentStat is one row of the per-segment RFM aggregate feeding the
// dashboard charts. Field names mirror the rfm_customers columns.
type SegmentStat struct {
    Segment       string  `db:"segment" json:"Segment"`
    CustomerCount int     `db:"customer_count" json:"customer_count"`
    AvgRecency    float64 `db:"avg_recency" json:"avg_recency"`
    AvgFrequency  float64 `db:"avg_frequency" json:"avg_frequency"`
    AvgMonetary   float64 `db:"avg_monetary" json:"avg_monetary"`
}

type ProductStats struct {
    TotalProducts int     `db:"total_products" json:"total_products"`
    TotalQuantity int     `db:"total_quantity" json:"total_quantity"`
    AvgPrice      float64 `db:"avg_price" json:"avg_price"`
    TotalRevenue  float64 `db:"total_revenue" json:"total_revenue"`
}

type TopProduct struct {
    ProductName string  `db:"product_name" json:"product_name"`
    TotalSold   int     `db:"total_sold" json:"total_sold"`
    Revenue     float64 `db:"revenue" json:"revenue"`
}
