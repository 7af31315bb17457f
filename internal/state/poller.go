package state

import (
	"context"
	"sync"
	"time"

	"github.com/novaqhq/novaq/internal/logger"
	"github.com/novaqhq/novaq/internal/model"
)

// Source fetches the authoritative project list.
type Source interface {
	ListProjects(ctx context.Context) ([]model.Project, error)
	LoggedIn() bool
}

// Poller keeps a Store current by periodically refetching from a Source.
// Writers call Refresh after a successful save instead of waiting for the
// next tick.
type Poller struct {
	source   Source
	store    *Store
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewPoller starts background polling immediately
func NewPoller(source Source, store *Store, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	p := &Poller{
		source:   source,
		store:    store,
		interval: interval,
		stopCh:   make(chan struct{}),
	}

	go p.pollLoop()

	return p
}

func (p *Poller) pollLoop() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if p.source.LoggedIn() {
				p.Refresh(context.Background())
			}
		case <-p.stopCh:
			return
		}
	}
}

// Refresh fetches the project list once and replaces the store's contents.
// Fetch failures leave the store unchanged.
func (p *Poller) Refresh(ctx context.Context) error {
	projects, err := p.source.ListProjects(ctx)
	if err != nil {
		logger.Warn("project refresh failed", logger.F("error", err))
		return err
	}
	p.store.Replace(projects)
	logger.Debug("projects refreshed", logger.F("count", len(projects)))
	return nil
}

// Stop ends background polling
func (p *Poller) Stop() {
	p.stopOnce.Do(func() { close(p.stopCh) })
}
