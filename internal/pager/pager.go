// Package pager drives the paged transaction report: filter criteria,
// infinite-scroll bookkeeping, and the guard that keeps at most one fetch
// in flight.
package pager

import (
	"context"
	"sync"
	"time"

	"github.com/tomraj007/txnportal/internal/domain/report"
	"github.com/tomraj007/txnportal/internal/notify"
	"go.uber.org/zap"
)

// FetchFunc fetches one report page.
type FetchFunc func(ctx context.Context, req report.Request) (*report.Response, error)

// Config tunes the pager.
type Config struct {
	// PageSize defaults to 20.
	PageSize int
	// ScrollInterval is the minimum gap between scroll-triggered fetches,
	// so one scroll gesture cannot enqueue more than one page. Defaults
	// to 300ms.
	ScrollInterval time.Duration
}

// Pager is the report view's state machine. Searching is explicit: filter
// changes never trigger a fetch on their own, and Reset restores empty
// filters before searching.
type Pager struct {
	fetch    FetchFunc
	notifier notify.Notifier
	logger   *zap.Logger
	now      func() time.Time

	pageSize       int
	scrollInterval time.Duration

	mu           sync.Mutex
	filters      report.Filters
	currentPage  int
	totalRecords int
	items        []report.Transaction
	hasMore      bool
	loading      bool
	loadingMore  bool
	lastScroll   time.Time
}

func New(cfg Config, fetch FetchFunc, notifier notify.Notifier, logger *zap.Logger) *Pager {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 20
	}
	if cfg.ScrollInterval <= 0 {
		cfg.ScrollInterval = 300 * time.Millisecond
	}
	return &Pager{
		fetch:          fetch,
		notifier:       notifier,
		logger:         logger,
		now:            time.Now,
		pageSize:       cfg.PageSize,
		scrollInterval: cfg.ScrollInterval,
		currentPage:    1,
		hasMore:        true,
	}
}

// SetFilters replaces the filter criteria. It does not trigger a fetch;
// call Search for that.
func (p *Pager) SetFilters(f report.Filters) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.filters = f
}

// BuildRequest assembles the outgoing page request. Empty filter fields
// are omitted from the wire body entirely rather than sent as "".
func (p *Pager) BuildRequest() report.Request {
	p.mu.Lock()
	defer p.mu.Unlock()
	return report.Request{
		PageNumber: p.currentPage,
		PageSize:   p.pageSize,
		Filters:    p.filters,
	}
}

// Search starts over: first page, hasMore reset, fresh load.
func (p *Pager) Search(ctx context.Context) error {
	p.mu.Lock()
	p.currentPage = 1
	p.hasMore = true
	p.mu.Unlock()
	return p.Load(ctx, false)
}

// Reset clears every filter field, then behaves as Search.
func (p *Pager) Reset(ctx context.Context) error {
	p.mu.Lock()
	p.filters = report.Filters{}
	p.mu.Unlock()
	return p.Search(ctx)
}

// OnNearBottomScroll reacts to a near-bottom scroll signal: when more rows
// exist and nothing is loading, it advances the page and appends. Signals
// arriving faster than the configured interval are dropped.
func (p *Pager) OnNearBottomScroll(ctx context.Context) error {
	p.mu.Lock()
	if !p.hasMore || p.loading || p.loadingMore {
		p.mu.Unlock()
		return nil
	}
	now := p.now()
	if now.Sub(p.lastScroll) < p.scrollInterval {
		p.mu.Unlock()
		return nil
	}
	p.lastScroll = now
	p.currentPage++
	p.mu.Unlock()

	return p.Load(ctx, true)
}

// Load fetches the current page. A call while a fetch is outstanding is a
// no-op: no state changes, no request issued. A fresh (non-append) load
// drops the current rows immediately so stale and new data never mix.
// Errors are surfaced through the notifier; hasMore is forced false after
// a failure so scrolling stops inviting further fetches.
func (p *Pager) Load(ctx context.Context, appendPage bool) error {
	p.mu.Lock()
	if p.loading || p.loadingMore {
		p.mu.Unlock()
		return nil
	}
	if appendPage {
		p.loadingMore = true
	} else {
		p.loading = true
		p.items = nil
	}
	req := report.Request{
		PageNumber: p.currentPage,
		PageSize:   p.pageSize,
		Filters:    p.filters,
	}
	p.mu.Unlock()

	resp, err := p.fetch(ctx, req)

	p.mu.Lock()
	defer func() {
		p.loading = false
		p.loadingMore = false
		p.mu.Unlock()
	}()

	if err != nil {
		p.logger.Error("report fetch failed",
			zap.Int("page", req.PageNumber),
			zap.Error(err),
		)
		p.notifier.Notify(notify.KindError, notify.ErrorMessage(err))
		p.hasMore = false
		return err
	}

	if appendPage {
		p.items = append(p.items, resp.Items...)
	} else {
		p.items = resp.Items
	}
	p.totalRecords = resp.TotalCount
	p.hasMore = len(p.items) < p.totalRecords

	if !appendPage && len(resp.Items) == 0 {
		p.notifier.Notify(notify.KindInfo, "No transactions found for the selected filters")
	}
	return nil
}

// Items returns a copy of the loaded rows.
func (p *Pager) Items() []report.Transaction {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]report.Transaction, len(p.items))
	copy(out, p.items)
	return out
}

func (p *Pager) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasMore
}

func (p *Pager) TotalRecords() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.totalRecords
}

func (p *Pager) CurrentPage() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.currentPage
}

func (p *Pager) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading || p.loadingMore
}
