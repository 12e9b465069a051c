// internal/query/query.go
package query

import (
    "fmt"
    "strings"
)

const (
    // Hard caps shared by interactive paging and export. Anything above
    // MaxLimit is clamped, which means exports of more than MaxLimit rows
    // truncate (see ExportService).
    MaxLimit = 1000
    MinLimit = 1

    customersTable = "rfm_customers"
)

// Filter is the canonical predicate set for the customer listing. Empty
// string means unconstrained — the empty-string sentinel is part of the wire
// contract and is never replaced with null/absent, so the count and fetch
// calls always describe the same logical row set.
type Filter struct {
    Segment    string `json:"segment"`
    CustomerID string `json:"customerId"`
}

// IsZero reports whether the filter constrains nothing.
func (f Filter) IsZero() bool {
    return f.Segment == "" && f.CustomerID == ""
}

// Normalize builds a Filter from raw client input. Values are trimmed; blank
// input means unconstrained. No validation against a segment list: an unknown
// segment just matches zero rows.
func Normalize(rawSegment, rawCustomerID string) Filter {
    return Filter{
        Segment:    strings.TrimSpace(rawSegment),
        CustomerID: strings.TrimSpace(rawCustomerID),
    }
}

// CountQuery is an unbounded SELECT COUNT(*) over the filtered set.
type CountQuery struct {
    SQL  string
    Args []interface{}
}

// FetchQuery is the bounded page fetch over the same filtered set.
type FetchQuery struct {
    SQL    string
    Args   []interface{}
    Limit  int
    Offset int
}

// Plan derives the count/fetch query pair from one filter. Both predicates
// are built by a single clause-construction pass so they can never drift:
// the fetch query is the count predicate plus the LIMIT/OFFSET bound pair.
func Plan(f Filter, limit, offset int) (CountQuery, FetchQuery) {
    limit = ClampLimit(limit)
    offset = ClampOffset(offset)

    where := "WHERE 1=1"
    args := []interface{}{}
    argPos := 1

    // Fixed clause order: Segment before CustomerID.
    if f.Segment != "" {
        where += fmt.Sprintf(` AND "Segment"=$%d`, argPos)
        args = append(args, f.Segment)
        argPos++
    }
    if f.CustomerID != "" {
        where += fmt.Sprintf(` AND "CustomerID"=$%d`, argPos)
        args = append(args, f.CustomerID)
        argPos++
    }

    count := CountQuery{
        SQL:  fmt.Sprintf("SELECT COUNT(*) FROM %s %s", customersTable, where),
        Args: args,
    }

    fetchArgs := make([]interface{}, len(args), len(args)+2)
    copy(fetchArgs, args)
    fetchArgs = append(fetchArgs, limit, offset)

    fetch := FetchQuery{
        SQL: fmt.Sprintf("SELECT * FROM %s %s LIMIT $%d OFFSET $%d",
            customersTable, where, argPos, argPos+1),
        Args:   fetchArgs,
        Limit:  limit,
        Offset: offset,
    }

    return count, fetch
}

// ClampLimit bounds a page size to [MinLimit, MaxLimit]. Upstream handlers
// clamp too; the planner re-clamps in case a second caller skips them.
func ClampLimit(limit int) int {
    if limit < MinLimit {
        return MinLimit
    }
    if limit > MaxLimit {
        return MaxLimit
    }
    return limit
}

// ClampOffset bounds an offset to >= 0.
func ClampOffset(offset int) int {
    if offset < 0 {
        return 0
    }
    return offset
}
