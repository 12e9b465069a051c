// internal/service/export_service.go
package service

import (
    "bytes"
    "encoding/csv"
    "fmt"
    "log"
    "strconv"

    "github.com/unclebandit/rfm-dashboard-backend/internal/query"
)

// exportRequestLimit is what the export path asks for. The planner clamps it
// to query.MaxLimit, so exports beyond that cap truncate — a documented
// contract limitation, surfaced through the Truncated flag.
const exportRequestLimit = 10000

type ExportService struct {
    Customers *CustomerService
}

// ExportResult is a materialized CSV artifact ready for download.
type ExportResult struct {
    Data      []byte
    RowCount  int
    Truncated bool
}

// ExportCSV materializes the full filtered customer set as UTF-8 RFC-4180
// CSV: header row from the discovered column set, fields quoted only when
// they contain the delimiter or a quote.
func (s *ExportService) ExportCSV(f query.Filter) (*ExportResult, error) {
    page, err := s.Customers.SearchPage(f, exportRequestLimit, 0)
    if err != nil {
        return nil, err
    }

    truncated := false
    if len(page.Rows) == query.MaxLimit {
        total, err := s.Customers.CountMatching(f)
        if err == nil && total > query.MaxLimit {
            truncated = true
            log.Printf("⚠️ Export truncated at %d of %d rows\n", query.MaxLimit, total)
        }
    }

    var buf bytes.Buffer
    w := csv.NewWriter(&buf)

    if err := w.Write(page.Columns); err != nil {
        return nil, err
    }
    record := make([]string, len(page.Columns))
    for _, row := range page.Rows {
        for i, col := range page.Columns {
            record[i] = formatValue(row[col])
        }
        if err := w.Write(record); err != nil {
            return nil, err
        }
    }
    w.Flush()
    if err := w.Error(); err != nil {
        return nil, err
    }

    return &ExportResult{
        Data:      buf.Bytes(),
        RowCount:  len(page.Rows),
        Truncated: truncated,
    }, nil
}

func formatValue(v interface{}) string {
    switch val := v.(type) {
    case nil:
        return ""
    case string:
        return val
    case []byte:
        return string(val)
    case float64:
        return strconv.FormatFloat(val, 'f', -1, 64)
    case int64:
        return strconv.FormatInt(val, 10)
    default:
        return fmt.Sprintf("%v", val)
    }
}
