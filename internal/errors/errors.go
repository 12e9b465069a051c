// internal/errors/errors.go
package appErrors

import "fmt"

// QueryExecutionError wraps a failed customer page fetch. Propagated to the
// caller as-is, never retried.
type QueryExecutionError struct {
    Err error
}

func (e *QueryExecutionError) Error() string {
    return fmt.Sprintf("query execution failed: %v", e.Err)
}

func (e *QueryExecutionError) Unwrap() error { return e.Err }

// CountError wraps a failed count query. Callers degrade to the fetched row
// count instead of failing the whole page load.
type CountError struct {
    Err error
}

func (e *CountError) Error() string {
    return fmt.Sprintf("count query failed: %v", e.Err)
}

func (e *CountError) Unwrap() error { return e.Err }

// ProductFetchError wraps a failed product lookup for a customer.
type ProductFetchError struct {
    CustomerID string
    Err        error
}

func (e *ProductFetchError) Error() string {
    return fmt.Sprintf("failed to fetch products for customer %s: %v", e.CustomerID, e.Err)
}

func (e *ProductFetchError) Unwrap() error { return e.Err }

// Helper constructors
func NewQueryExecutionError(err error) error { return &QueryExecutionError{Err: err} }
func NewCountError(err error) error          { return &CountError{Err: err} }
func NewProductFetchError(customerID string, err error) error {
    return &ProductFetchError{CustomerID: customerID, Err: err}
}
