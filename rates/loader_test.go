package rates

import (
	"context"
	"errors"
	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-currency-converter/domain"
	"testing"
)

// scripted answers each call to Latest with the next step
type scripted struct {
	steps chan step
}

type step struct {
	started chan struct{}
	// release when non-nil, the call waits for it before answering
	release chan struct{}
	// honourCancel return as soon as ctx is done
	honourCancel bool
	snapshot     domain.Snapshot
	err          error
}

func (s *scripted) Latest(ctx context.Context, _ domain.Currency) (domain.Snapshot, error) {
	st := <-s.steps
	if st.started != nil {
		close(st.started)
	}
	if st.release != nil {
		if st.honourCancel {
			select {
			case <-st.release:
			case <-ctx.Done():
				return domain.Snapshot{}, ctx.Err()
			}
		} else {
			<-st.release
		}
	}
	return st.snapshot, st.err
}

func snapshotOn(date string, rates domain.Rates) domain.Snapshot {
	return domain.Snapshot{Base: "usd", Date: date, Rates: rates}
}

func TestLoader_Refresh(t *testing.T) {
	s := &scripted{steps: make(chan step, 1)}
	loader := NewLoader("USD", s, log.NewNopLogger())

	_, ok := loader.Current()
	assert.False(t, ok)
	assert.Equal(t, domain.Currency("usd"), loader.Base())

	first := snapshotOn("2024-03-06", domain.Rates{"eur": 0.92})
	s.steps <- step{snapshot: first}
	require.NoError(t, loader.Refresh(context.Background()))

	got, ok := loader.Current()
	assert.True(t, ok)
	assert.Equal(t, first, got)

	// a failed refresh keeps what we had
	s.steps <- step{err: ErrFetch}
	err := loader.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrFetch)

	got, ok = loader.Current()
	assert.True(t, ok)
	assert.Equal(t, first, got)
}

func TestLoader_RefreshFailsBeforeFirstLoad(t *testing.T) {
	s := &scripted{steps: make(chan step, 1)}
	loader := NewLoader("usd", s, log.NewNopLogger())

	s.steps <- step{err: errors.Join(ErrFetch, errors.New("unreachable"))}
	assert.ErrorIs(t, loader.Refresh(context.Background()), ErrFetch)

	_, ok := loader.Current()
	assert.False(t, ok)
}

func TestLoader_NewerRefreshCancelsOlder(t *testing.T) {
	s := &scripted{steps: make(chan step, 2)}
	loader := NewLoader("usd", s, log.NewNopLogger())

	started := make(chan struct{})
	s.steps <- step{
		started:      started,
		release:      make(chan struct{}),
		honourCancel: true,
		snapshot:     snapshotOn("old", domain.Rates{"eur": 0.9}),
	}

	done := make(chan error)
	go func() { done <- loader.Refresh(context.Background()) }()
	<-started

	newer := snapshotOn("new", domain.Rates{"eur": 0.92})
	s.steps <- step{snapshot: newer}
	require.NoError(t, loader.Refresh(context.Background()))

	assert.ErrorIs(t, <-done, ErrSuperseded)
	got, _ := loader.Current()
	assert.Equal(t, newer, got)
}

func TestLoader_LateAnswerIsDiscarded(t *testing.T) {
	s := &scripted{steps: make(chan step, 2)}
	loader := NewLoader("usd", s, log.NewNopLogger())

	started := make(chan struct{})
	release := make(chan struct{})
	s.steps <- step{
		started:  started,
		release:  release,
		snapshot: snapshotOn("stale", domain.Rates{"eur": 0.9}),
	}

	done := make(chan error)
	go func() { done <- loader.Refresh(context.Background()) }()
	<-started

	newer := snapshotOn("fresh", domain.Rates{"eur": 0.92})
	s.steps <- step{snapshot: newer}
	require.NoError(t, loader.Refresh(context.Background()))

	// the older source ignores cancellation and answers after the newer load
	close(release)
	assert.ErrorIs(t, <-done, ErrSuperseded)

	got, _ := loader.Current()
	assert.Equal(t, newer, got)
}
