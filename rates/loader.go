package rates

import (
	"context"
	"fmt"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"go-currency-converter/domain"
	"strings"
	"sync"
)

// Loader holds the current rate snapshot for one base currency.
// At most one load is in flight: starting a new one cancels the previous
// and a late answer from an older load is discarded, so the newest load always wins.
type Loader struct {
	// next the service loading rates
	next Service

	// base currency all rates are expressed against
	base domain.Currency

	// lock synchronizes access to the fields below
	lock sync.Mutex

	snapshot domain.Snapshot
	loaded   bool

	// generation identifies the newest load; cancel aborts it
	generation uint64
	cancel     context.CancelFunc

	logger log.Logger
}

// NewLoader returns a Loader with no snapshot yet
func NewLoader(base domain.Currency, s Service, logger log.Logger) *Loader {
	return &Loader{
		next:   s,
		base:   domain.Currency(strings.ToLower(string(base))),
		logger: logger,
	}
}

// Base currency of the loader
func (l *Loader) Base() domain.Currency {
	return l.base
}

// Current returns the current snapshot, false until a load has succeeded
func (l *Loader) Current() (domain.Snapshot, bool) {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.snapshot, l.loaded
}

// Refresh loads the rates now and replaces the current snapshot on success.
// A failed load keeps the previous snapshot. ErrSuperseded is returned when a
// newer Refresh started before this one completed.
func (l *Loader) Refresh(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	l.lock.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.generation++
	generation := l.generation
	l.cancel = cancel
	l.lock.Unlock()

	snapshot, err := l.next.Latest(ctx, l.base)

	l.lock.Lock()
	defer l.lock.Unlock()
	if generation != l.generation {
		level.Debug(l.logger).Log("msg", "discarding superseded load", "base", l.base, "err", err)
		return fmt.Errorf("refresh [%v]: %w", l.base, ErrSuperseded)
	}
	l.cancel = nil
	if err != nil {
		return fmt.Errorf("refresh [%v]: %w", l.base, err)
	}

	l.snapshot = snapshot
	l.loaded = true
	level.Info(l.logger).Log("msg", "rates loaded", "base", l.base, "date", snapshot.Date, "currencies", len(snapshot.Rates))
	return nil
}
