// internal/model/customer.go
package model

// CustomerRecord is one row of the rfm_customers table. The table schema is
// owned by the external RFM scoring pipeline and is not known statically, so
// a record is the raw column name → value mapping produced by the driver.
type CustomerRecord map[string]interface{}

// CustomerPage is a fetched page plus the column set discovered from the
// result metadata. Columns come from the driver, not from the first row's
// keys, so an empty page still carries the full header set.
type CustomerPage struct {
    Columns []string         `json:"columns"`
    Rows    []CustomerRecord `json:"rows"`
}
