// internal/service/customer_service.go
package service

import (
    "github.com/unclebandit/rfm-dashboard-backend/internal/model"
    "github.com/unclebandit/rfm-dashboard-backend/internal/query"
    "github.com/unclebandit/rfm-dashboard-backend/internal/repository"
)

type CustomerService struct {
    CustomerRepo repository.CustomerRepositoryInterface
    ProductRepo  repository.ProductRepositoryInterface
}

// SearchPage plans and executes one bounded page fetch for the filter.
func (s *CustomerService) SearchPage(f query.Filter, limit, offset int) (*model.CustomerPage, error) {
    _, fetch := query.Plan(f, limit, offset)
    return s.CustomerRepo.FetchPage(fetch)
}

// CountMatching plans and executes the unbounded count for the same filter.
// The planner guarantees the predicate is identical to the one SearchPage
// runs, so total and rows always describe the same logical set.
func (s *CustomerService) CountMatching(f query.Filter) (int, error) {
    count, _ := query.Plan(f, query.MinLimit, 0)
    return s.CustomerRepo.CountMatching(count)
}

// CustomerProducts fetches a customer's purchase history and its spend total.
// The total is always computed, so an empty history yields Total 0 rather
// than an absent field.
func (s *CustomerService) CustomerProducts(customerID string) (*model.CustomerProductsView, error) {
    products, err := s.ProductRepo.ListByCustomer(customerID)
    if err != nil {
        return nil, err
    }
    return &model.CustomerProductsView{
        CustomerID: customerID,
        Products:   products,
        Total:      AggregateSpend(products),
    }, nil
}

// AggregateSpend sums quantity × price over a product list. Plain float64
// arithmetic; display rounding to two decimals is the presentation layer's
// job.
func AggregateSpend(products []model.ProductRecord) float64 {
    total := 0.0
    for _, p := range products {
        total += float64(p.Quantity) * p.Price
    }
    return total
}

// ListAllProducts fetches a catalog page for the product-grid view.
func (s *CustomerService) ListAllProducts(limit, offset int) ([]model.ProductRecord, error) {
    return s.ProductRepo.ListAll(limit, offset)
}

// Segments lists the distinct segment values for the filter dropdown.
func (s *CustomerService) Segments() ([]string, error) {
    return s.CustomerRepo.DistinctSegments()
}

// SegmentStatistics returns the per-segment RFM aggregates for the charts.
func (s *CustomerService) SegmentStatistics() ([]model.SegmentStat, error) {
    return s.CustomerRepo.SegmentStatistics()
}

// ProductStatistics returns catalog totals and the best-seller list.
func (s *CustomerService) ProductStatistics() (*model.ProductStats, []model.TopProduct, error) {
    return s.ProductRepo.Statistics()
}
