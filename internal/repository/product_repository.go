package repository

import (
    "database/sql"
    "strconv"

    appErrors "github.com/unclebandit/rfm-dashboard-backend/internal/errors"
    "github.com/unclebandit/rfm-dashboard-backend/internal/model"
    "github.com/unclebandit/rfm-dashboard-backend/internal/query"
)

// ProductRepositoryInterface defines methods used by service
type ProductRepositoryInterface interface {
    ListByCustomer(customerID string) ([]model.ProductRecord, error)
    ListAll(limit, offset int) ([]model.ProductRecord, error)
    Statistics() (*model.ProductStats, []model.TopProduct, error)
}

// ProductRepository is the concrete implementation
type ProductRepository struct {
    DB *sql.DB
}

const productColumns = `id, customer_id, product_name, quantity, price, image_url, created_at`

// ListByCustomer fetches all products bought by one customer, newest first.
func (r *ProductRepository) ListByCustomer(customerID string) ([]model.ProductRecord, error) {
    q := `
        SELECT ` + productColumns + `
        FROM products
        WHERE customer_id = $1
        ORDER BY created_at DESC
    `
    rows, err := r.DB.Query(q, customerID)
    if err != nil {
        return nil, appErrors.NewProductFetchError(customerID, err)
    }
    defer rows.Close()

    products, err := scanProducts(rows)
    if err != nil {
        return nil, appErrors.NewProductFetchError(customerID, err)
    }
    return products, nil
}

// ListAll fetches the product catalog page used by the product-grid view.
func (r *ProductRepository) ListAll(limit, offset int) ([]model.ProductRecord, error) {
    limit = query.ClampLimit(limit)
    offset = query.ClampOffset(offset)

    q := `
        SELECT ` + productColumns + `
        FROM products
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2
    `
    rows, err := r.DB.Query(q, limit, offset)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    return scanProducts(rows)
}

// Statistics aggregates catalog totals plus the ten best sellers.
func (r *ProductRepository) Statistics() (*model.ProductStats, []model.TopProduct, error) {
    var stats model.ProductStats
    err := r.DB.QueryRow(`
        SELECT
            COUNT(*) as total_products,
            COALESCE(SUM(quantity), 0) as total_quantity,
            COALESCE(AVG(price), 0) as avg_price,
            COALESCE(SUM(price * quantity), 0) as total_revenue
        FROM products
    `).Scan(&stats.TotalProducts, &stats.TotalQuantity, &stats.AvgPrice, &stats.TotalRevenue)
    if err != nil {
        return nil, nil, err
    }

    rows, err := r.DB.Query(`
        SELECT
            product_name,
            SUM(quantity) as total_sold,
            SUM(price * quantity) as revenue
        FROM products
        GROUP BY product_name
        ORDER BY total_sold DESC
        LIMIT 10
    `)
    if err != nil {
        return nil, nil, err
    }
    defer rows.Close()

    top := []model.TopProduct{}
    for rows.Next() {
        var t model.TopProduct
        if err := rows.Scan(&t.ProductName, &t.TotalSold, &t.Revenue); err != nil {
            return nil, nil, err
        }
        top = append(top, t)
    }
    return &stats, top, rows.Err()
}

// scanProducts scans product rows, normalizing quantity and price to numeric
// types here and nowhere else. The storage layer may hand back numerics as
// text (DECIMAL columns arrive as []byte), so the coercion happens exactly
// once, at this boundary.
func scanProducts(rows *sql.Rows) ([]model.ProductRecord, error) {
    products := []model.ProductRecord{}
    for rows.Next() {
        var (
            p        model.ProductRecord
            quantity interface{}
            price    interface{}
        )
        if err := rows.Scan(&p.ID, &p.CustomerID, &p.ProductName, &quantity, &price, &p.ImageURL, &p.CreatedAt); err != nil {
            return nil, err
        }
        p.Quantity = toInt(quantity)
        p.Price = toFloat(price)
        products = append(products, p)
    }
    return products, rows.Err()
}

func toInt(v interface{}) int {
    switch n := v.(type) {
    case int64:
        return int(n)
    case float64:
        return int(n)
    case []byte:
        i, _ := strconv.Atoi(string(n))
        return i
    case string:
        i, _ := strconv.Atoi(n)
        return i
    }
    return 0
}

func toFloat(v interface{}) float64 {
    switch n := v.(type) {
    case float64:
        return n
    case int64:
        return float64(n)
    case []byte:
        f, _ := strconv.ParseFloat(string(n), 64)
        return f
    case string:
        f, _ := strconv.ParseFloat(n, 64)
        return f
    }
    return 0
}

var _ ProductRepositoryInterface = (*ProductRepository)(nil)
