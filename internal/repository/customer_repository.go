package repository

import (
    "database/sql"

    appErrors "github.com/unclebandit/rfm-dashboard-backend/internal/errors"
    "github.com/unclebandit/rfm-dashboard-backend/internal/model"
    "github.com/unclebandit/rfm-dashboard-backend/internal/query"
)

// CustomerRepositoryInterface defines methods used by service
type CustomerRepositoryInterface interface {
    FetchPage(q query.FetchQuery) (*model.CustomerPage, error)
    CountMatching(q query.CountQuery) (int, error)
    DistinctSegments() ([]string, error)
    SegmentStatistics() ([]model.SegmentStat, error)
}

// CustomerRepository is the concrete implementation
type CustomerRepository struct {
    DB *sql.DB
}

// FetchPage runs a planned page fetch. The rfm_customers schema is owned by
// the RFM pipeline, so rows are scanned dynamically: the column set comes from
// the result metadata and each row is a column → value map.
func (r *CustomerRepository) FetchPage(q query.FetchQuery) (*model.CustomerPage, error) {
    rows, err := r.DB.Query(q.SQL, q.Args...)
    if err != nil {
        return nil, appErrors.NewQueryExecutionError(err)
    }
    defer rows.Close()

    columns, err := rows.Columns()
    if err != nil {
        return nil, appErrors.NewQueryExecutionError(err)
    }

    page := &model.CustomerPage{
        Columns: columns,
        Rows:    []model.CustomerRecord{},
    }

    values := make([]interface{}, len(columns))
    scanTargets := make([]interface{}, len(columns))
    for i := range values {
        scanTargets[i] = &values[i]
    }

    for rows.Next() {
        if err := rows.Scan(scanTargets...); err != nil {
            return nil, appErrors.NewQueryExecutionError(err)
        }
        record := model.CustomerRecord{}
        for i, col := range columns {
            record[col] = normalizeValue(values[i])
        }
        page.Rows = append(page.Rows, record)
    }
    if err := rows.Err(); err != nil {
        return nil, appErrors.NewQueryExecutionError(err)
    }

    return page, nil
}

// CountMatching runs a planned count. Failures come back as CountError so the
// caller can degrade to the fetched row count instead of failing the page.
func (r *CustomerRepository) CountMatching(q query.CountQuery) (int, error) {
    var total int
    if err := r.DB.QueryRow(q.SQL, q.Args...).Scan(&total); err != nil {
        return 0, appErrors.NewCountError(err)
    }
    return total, nil
}

// DistinctSegments lists the segment values present in the table, for the
// filter dropdown.
func (r *CustomerRepository) DistinctSegments() ([]string, error) {
    rows, err := r.DB.Query(`SELECT DISTINCT "Segment" FROM rfm_customers ORDER BY "Segment"`)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    segments := []string{}
    for rows.Next() {
        var s string
        if err := rows.Scan(&s); err != nil {
            return nil, err
        }
        segments = append(segments, s)
    }
    return segments, rows.Err()
}

// SegmentStatistics aggregates per-segment RFM averages for the dashboard
// charts.
func (r *CustomerRepository) SegmentStatistics() ([]model.SegmentStat, error) {
    rows, err := r.DB.Query(`
        SELECT
            "Segment",
            COUNT(*) as customer_count,
            AVG("Recency") as avg_recency,
            AVG("Frequency") as avg_frequency,
            AVG("MonetaryValue") as avg_monetary
        FROM rfm_customers
        GROUP BY "Segment"
        ORDER BY customer_count DESC
    `)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    stats := []model.SegmentStat{}
    for rows.Next() {
        var s model.SegmentStat
        if err := rows.Scan(&s.Segment, &s.CustomerCount, &s.AvgRecency, &s.AvgFrequency, &s.AvgMonetary); err != nil {
            return nil, err
        }
        stats = append(stats, s)
    }
    return stats, rows.Err()
}

// normalizeValue converts driver byte slices to strings so records marshal to
// JSON as text, not base64. Runs once per value, at the scan boundary.
func normalizeValue(v interface{}) interface{} {
    if b, ok := v.([]byte); ok {
        return string(b)
    }
    return v
}

var _ CustomerRepositoryInterface = (*CustomerRepository)(nil)
