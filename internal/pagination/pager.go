// internal/pagination/pager.go
package pagination

import (
    "sync"

    "github.com/unclebandit/rfm-dashboard-backend/internal/model"
    "github.com/unclebandit/rfm-dashboard-backend/internal/query"
)

// Page sizes for the two paged views, configured independently. The customer
// listing drives a Pager over the backend; the product grid slices a fetched
// catalog locally in pages of ProductPageSize.
const (
    CustomerPageSize = 10
    ProductPageSize  = 12
)

type State int

const (
    StateIdle State = iota
    StateLoading
    StateDisplaying
    StateEmpty
    StateError
)

func (s State) String() string {
    switch s {
    case StateIdle:
        return "idle"
    case StateLoading:
        return "loading"
    case StateDisplaying:
        return "displaying"
    case StateEmpty:
        return "empty"
    case StateError:
        return "error"
    }
    return "unknown"
}

// DataSource is the request/response boundary the pager drives. Both calls
// must serialize the same filter (empty-string sentinel for unconstrained) so
// the count and the rows describe one logical set.
type DataSource interface {
    FetchPage(f query.Filter, limit, offset int) (*model.CustomerPage, error)
    Count(f query.Filter) (int, error)
}

// Pager is the pagination state machine for one paged view. All state lives
// on the struct — never in package globals — so two open views cannot corrupt
// each other. Every load is tagged with a sequence number and a completion
// whose number is no longer the latest is discarded, so a slow superseded
// load can never overwrite a newer page.
type Pager struct {
    mu       sync.Mutex
    source   DataSource
    pageSize int

    state       State
    filter      query.Filter
    currentPage int
    totalRows   int
    page        *model.CustomerPage
    lastErr     error
    seq         uint64
}

func New(source DataSource, pageSize int) *Pager {
    if pageSize < 1 {
        pageSize = CustomerPageSize
    }
    return &Pager{
        source:      source,
        pageSize:    pageSize,
        state:       StateIdle,
        currentPage: 1,
    }
}

// RequestPage loads page n (1-based). Fetch runs first, then count; a count
// failure degrades the total to the fetched row count instead of failing the
// load. A fetch failure moves the pager to StateError.
func (p *Pager) RequestPage(n int) error {
    if n < 1 {
        n = 1
    }

    p.mu.Lock()
    p.state = StateLoading
    p.seq++
    seq := p.seq
    f := p.filter
    pageSize := p.pageSize
    p.mu.Unlock()

    offset := (n - 1) * pageSize
    page, err := p.source.FetchPage(f, pageSize, offset)
    if err != nil {
        p.mu.Lock()
        defer p.mu.Unlock()
        if seq != p.seq {
            return nil // superseded, drop
        }
        p.state = StateError
        p.lastErr = err
        return err
    }

    total, countErr := p.source.Count(f)
    if countErr != nil {
        // Degraded mode: approximate the total from what we fetched. The
        // page still renders; totalPages may under-report.
        total = len(page.Rows)
    }

    p.mu.Lock()
    defer p.mu.Unlock()
    if seq != p.seq {
        return nil // stale response, drop
    }

    p.currentPage = n
    p.totalRows = total
    p.page = page
    p.lastErr = nil
    if len(page.Rows) == 0 {
        p.state = StateEmpty
    } else {
        p.state = StateDisplaying
    }
    return nil
}

// NextPage advances one page. No-op when already on the last page.
func (p *Pager) NextPage() error {
    p.mu.Lock()
    ok := p.currentPage < p.totalPagesLocked()
    n := p.currentPage + 1
    p.mu.Unlock()
    if !ok {
        return nil
    }
    return p.RequestPage(n)
}

// PrevPage goes back one page. No-op on page 1.
func (p *Pager) PrevPage() error {
    p.mu.Lock()
    ok := p.currentPage > 1
    n := p.currentPage - 1
    p.mu.Unlock()
    if !ok {
        return nil
    }
    return p.RequestPage(n)
}

// ApplyFilter replaces the filter and restarts pagination from page 1.
func (p *Pager) ApplyFilter(f query.Filter) error {
    p.mu.Lock()
    p.filter = f
    p.currentPage = 1
    p.mu.Unlock()
    return p.RequestPage(1)
}

// ClearFilter resets to the unconstrained filter.
func (p *Pager) ClearFilter() error {
    return p.ApplyFilter(query.Filter{})
}

// totalPagesLocked computes the page count: at least 1 (an empty result set
// still displays a single empty page) and never below the current page, so a
// stale low count cannot produce a negative-width pagination display.
func (p *Pager) totalPagesLocked() int {
    pages := (p.totalRows + p.pageSize - 1) / p.pageSize
    if pages < 1 {
        pages = 1
    }
    if pages < p.currentPage {
        pages = p.currentPage
    }
    return pages
}

func (p *Pager) State() State {
    p.mu.Lock()
    defer p.mu.Unlock()
    return p.state
}

func (p *Pager) CurrentPage() int {
    p.mu.Lock()
    defer p.mu.Unlock()
    return p.currentPage
}

func (p *Pager) TotalRows() int {
    p.mu.Lock()
    defer p.mu.Unlock()
    return p.totalRows
}

func (p *Pager) TotalPages() int {
    p.mu.Lock()
    defer p.mu.Unlock()
    return p.totalPagesLocked()
}

// Page returns the currently displayed page, nil before the first load.
func (p *Pager) Page() *model.CustomerPage {
    p.mu.Lock()
    defer p.mu.Unlock()
    return p.page
}

func (p *Pager) Err() error {
    p.mu.Lock()
    defer p.mu.Unlock()
    return p.lastErr
}

// CanPrev reports whether the previous-page control is enabled.
func (p *Pager) CanPrev() bool {
    p.mu.Lock()
    defer p.mu.Unlock()
    return p.currentPage > 1
}

// CanNext reports whether the next-page control is enabled.
func (p *Pager) CanNext() bool {
    p.mu.Lock()
    defer p.mu.Unlock()
    return p.currentPage < p.totalPagesLocked()
}

func (p *Pager) Filter() query.Filter {
    p.mu.Lock()
    defer p.mu.Unlock()
    return p.filter
}
