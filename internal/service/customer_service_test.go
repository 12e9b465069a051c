package service_test

import (
	"errors"
	"math"
	"testing"

	appErrors "github.com/unclebandit/rfm-dashboard-backend/internal/errors"
	"github.com/unclebandit/rfm-dashboard-backend/internal/model"
	"github.com/unclebandit/rfm-dashboard-backend/internal/query"
	"github.com/unclebandit/rfm-dashboard-backend/internal/service"
)

// Mock repositories

type MockCustomerRepo struct {
	lastFetch query.FetchQuery
	lastCount query.CountQuery
	page      *model.CustomerPage
	total     int
	countErr  error
}

func (m *MockCustomerRepo) FetchPage(q query.FetchQuery) (*model.CustomerPage, error) {
	m.lastFetch = q
	if m.page != nil {
		return m.page, nil
	}
	return &model.CustomerPage{Columns: []string{"CustomerID", "Segment"}, Rows: []model.CustomerRecord{}}, nil
}

func (m *MockCustomerRepo) CountMatching(q query.CountQuery) (int, error) {
	m.lastCount = q
	if m.countErr != nil {
		return 0, m.countErr
	}
	return m.total, nil
}

func (m *MockCustomerRepo) DistinctSegments() ([]string, error) {
	return []string{"At Risk", "Champions"}, nil
}

func (m *MockCustomerRepo) SegmentStatistics() ([]model.SegmentStat, error) {
	return []model.SegmentStat{}, nil
}

type MockProductRepo struct {
	products map[string][]model.ProductRecord
}

func (m *MockProductRepo) ListByCustomer(customerID string) ([]model.ProductRecord, error) {
	if p, ok := m.products[customerID]; ok {
		return p, nil
	}
	return []model.ProductRecord{}, nil
}

func (m *MockProductRepo) ListAll(limit, offset int) ([]model.ProductRecord, error) {
	all := m.products["__all__"]
	if offset >= len(all) {
		return []model.ProductRecord{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (m *MockProductRepo) Statistics() (*model.ProductStats, []model.TopProduct, error) {
	return &model.ProductStats{}, []model.TopProduct{}, nil
}

func TestAggregateSpend(t *testing.T) {
	products := []model.ProductRecord{
		{Quantity: 2, Price: 9.99},
		{Quantity: 1, Price: 5},
	}

	got := service.AggregateSpend(products)
	if math.Abs(got-24.98) > 1e-9 {
		t.Errorf("expected 24.98, got %v", got)
	}
}

func TestAggregateSpendEmpty(t *testing.T) {
	if got := service.AggregateSpend(nil); got != 0 {
		t.Errorf("expected 0 for empty list, got %v", got)
	}
}

func TestCustomerProductsComputesTotal(t *testing.T) {
	svc := &service.CustomerService{
		CustomerRepo: &MockCustomerRepo{},
		ProductRepo: &MockProductRepo{products: map[string][]model.ProductRecord{
			"C001": {
				{CustomerID: "C001", ProductName: "Headphones", Quantity: 2, Price: 89.99},
				{CustomerID: "C001", ProductName: "Charger", Quantity: 1, Price: 24.50},
			},
		}},
	}

	view, err := svc.CustomerProducts("C001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(view.Products))
	}
	want := 2*89.99 + 24.50
	if math.Abs(view.Total-want) > 1e-9 {
		t.Errorf("expected total %v, got %v", want, view.Total)
	}
}

// A customer with no purchases still gets a view: empty product list, total 0.
// The aggregate is always computed, zero is a valid total.
func TestCustomerProductsNoPurchases(t *testing.T) {
	svc := &service.CustomerService{
		CustomerRepo: &MockCustomerRepo{},
		ProductRepo:  &MockProductRepo{products: map[string][]model.ProductRecord{}},
	}

	view, err := svc.CustomerProducts("C999")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Products == nil || len(view.Products) != 0 {
		t.Errorf("expected empty product list, got %v", view.Products)
	}
	if view.Total != 0 {
		t.Errorf("expected total 0, got %v", view.Total)
	}
}

func TestSearchPageClampsThroughPlanner(t *testing.T) {
	repo := &MockCustomerRepo{}
	svc := &service.CustomerService{CustomerRepo: repo, ProductRepo: &MockProductRepo{}}

	if _, err := svc.SearchPage(query.Filter{Segment: "Champions"}, 99999, -10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastFetch.Limit != 1000 {
		t.Errorf("expected limit clamped to 1000, got %d", repo.lastFetch.Limit)
	}
	if repo.lastFetch.Offset != 0 {
		t.Errorf("expected offset clamped to 0, got %d", repo.lastFetch.Offset)
	}
}

func TestCountMatchingSharesFilterContract(t *testing.T) {
	repo := &MockCustomerRepo{total: 23}
	svc := &service.CustomerService{CustomerRepo: repo, ProductRepo: &MockProductRepo{}}

	f := query.Filter{Segment: "Champions"}
	if _, err := svc.SearchPage(f, 10, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	total, err := svc.CountMatching(f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 23 {
		t.Errorf("expected 23, got %d", total)
	}

	wantCount, _ := query.Plan(f, 10, 0)
	if repo.lastCount.SQL != wantCount.SQL {
		t.Errorf("count query diverged from planner output:\n%s\n%s", repo.lastCount.SQL, wantCount.SQL)
	}
}

func TestCountErrorPropagates(t *testing.T) {
	repo := &MockCustomerRepo{countErr: appErrors.NewCountError(errors.New("backend down"))}
	svc := &service.CustomerService{CustomerRepo: repo, ProductRepo: &MockProductRepo{}}

	_, err := svc.CountMatching(query.Filter{})
	if err == nil {
		t.Fatal("expected count error")
	}
	var countErr *appErrors.CountError
	if !errors.As(err, &countErr) {
		t.Errorf("expected CountError, got %T", err)
	}
}
