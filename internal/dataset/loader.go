package dataset

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"examfinder/internal/eventbus"
)

// ErrLoadInProgress is returned when a load is requested while another runs
var ErrLoadInProgress = errors.New("load already in progress")

// Loader runs a provider and reports the outcome on the event bus
type Loader interface {
	Load(ctx context.Context) error
	Watch(ctx context.Context, interval time.Duration)
	Close()
}

type loader struct {
	provider    Provider
	bus         eventbus.EventBus
	logger      zerolog.Logger
	unsubscribe func()

	mu      sync.Mutex
	loading bool
	closed  bool
	wg      sync.WaitGroup
}

// NewLoader creates a loader for provider. It also answers reload requests
// published on bus.
func NewLoader(provider Provider, bus eventbus.EventBus, logger zerolog.Logger) Loader {
	l := &loader{
		provider: provider,
		bus:      bus,
		logger:   logger.With().Str("component", "loader").Str("source", provider.Source()).Logger(),
	}

	l.unsubscribe = bus.Subscribe(eventbus.EventReloadRequested, func(e eventbus.DomainEvent) {
		if _, ok := e.(eventbus.ReloadRequestedEvent); ok {
			l.reload()
		}
	})

	return l
}

// reload starts a background load unless the loader is closed
func (l *loader) reload() bool {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		l.logger.Debug().Msg("reload ignored, loader closed")
		return false
	}
	l.wg.Add(1)
	l.mu.Unlock()

	go func() {
		defer l.wg.Done()
		if err := l.Load(context.Background()); errors.Is(err, ErrLoadInProgress) {
			l.logger.Debug().Msg("reload ignored, load in progress")
		}
	}()
	return true
}

// Load fetches the dataset once. Listeners see a loading event followed by
// exactly one loaded or failed event.
func (l *loader) Load(ctx context.Context) error {
	l.mu.Lock()
	if l.loading {
		l.mu.Unlock()
		return ErrLoadInProgress
	}
	l.loading = true
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		l.loading = false
		l.mu.Unlock()
	}()

	l.bus.Publish(eventbus.DatasetLoadingEvent{Source: l.provider.Source()})

	start := time.Now()
	ds, err := l.provider.Load(ctx)
	if err != nil {
		l.logger.Error().Err(err).Msg("dataset load failed")
		l.bus.Publish(eventbus.DatasetFailedEvent{Source: l.provider.Source(), Err: err})
		return err
	}

	l.logger.Info().
		Int("exams", len(ds.Exams)).
		Dur("took", time.Since(start)).
		Msg("dataset loaded")
	l.bus.Publish(eventbus.DatasetLoadedEvent{Dataset: ds})
	return nil
}

// Watch reloads every interval until ctx is done. A non-positive interval
// disables watching.
func (l *loader) Watch(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := l.Load(ctx); err != nil && !errors.Is(err, ErrLoadInProgress) {
				l.logger.Warn().Err(err).Msg("scheduled reload failed")
			}
		}
	}
}

// Close stops answering reload requests and waits for running reloads
func (l *loader) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()

	if l.unsubscribe != nil {
		l.unsubscribe()
	}
	l.wg.Wait()
}
