package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"kwestendorf/scopeworker/internal/scope"
	"kwestendorf/scopeworker/internal/source"
	"kwestendorf/scopeworker/internal/store"
	"kwestendorf/scopeworker/logger"
	errs "kwestendorf/scopeworker/pkg/errors"
	"kwestendorf/scopeworker/services/cache"
	"kwestendorf/scopeworker/services/publisher"
)

// ErrUnknownSource is returned for a source name no adapter is registered
// under.
var ErrUnknownSource = errors.New("orchestrator: unknown source")

// ErrCoolingDown is returned by Refresh while a source's cooldown window
// from a previous refresh is still open.
var ErrCoolingDown = errors.New("orchestrator: refresh cooling down")

// sourceState holds one source's in-memory dataset. Its mutex serializes
// every mutation of the dataset, so a source only ever has one writer.
type sourceState struct {
	mu      sync.Mutex
	loaded  bool
	records map[string]scope.Record
}

// Orchestrator coordinates adapters, the record store, the refresh cooldown
// and the publisher. It owns the authoritative in-memory dataset per source.
type Orchestrator struct {
	adapters map[string]*source.Adapter
	names    []string
	store    store.Store
	cache    cache.CacheService
	pub      publisher.Publisher
	cooldown time.Duration
	states   map[string]*sourceState
	log      *logger.Logger
}

// New creates an orchestrator over the given adapters. The publisher may be
// nil, in which case merged datasets are not announced anywhere.
func New(adapters []*source.Adapter, st store.Store, cc cache.CacheService, pub publisher.Publisher, cooldown time.Duration) *Orchestrator {
	o := &Orchestrator{
		adapters: make(map[string]*source.Adapter, len(adapters)),
		store:    st,
		cache:    cc,
		pub:      pub,
		cooldown: cooldown,
		states:   make(map[string]*sourceState, len(adapters)),
		log:      logger.ForOrchestrator(),
	}
	for _, a := range adapters {
		o.adapters[a.Name()] = a
		o.names = append(o.names, a.Name())
		o.states[a.Name()] = &sourceState{}
	}
	return o
}

// Sources returns the registered source names in registration order.
func (o *Orchestrator) Sources() []string {
	out := make([]string, len(o.names))
	copy(out, o.names)
	return out
}

// Records returns a copy of a source's current dataset, initializing the
// source first if it has never been loaded.
func (o *Orchestrator) Records(ctx context.Context, name string) (map[string]scope.Record, error) {
	state, ok := o.states[name]
	if !ok {
		return nil, ErrUnknownSource
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	if err := o.initializeLocked(ctx, name, state); err != nil {
		return nil, err
	}
	return copyRecords(state.records), nil
}

// Initialize loads a source's persisted dataset into memory; when nothing is
// persisted yet it runs the adapter once and persists the result. Calling it
// on an already-loaded source is a no-op.
func (o *Orchestrator) Initialize(ctx context.Context, name string) error {
	state, ok := o.states[name]
	if !ok {
		return ErrUnknownSource
	}

	state.mu.Lock()
	defer state.mu.Unlock()
	return o.initializeLocked(ctx, name, state)
}

func (o *Orchestrator) initializeLocked(ctx context.Context, name string, state *sourceState) error {
	if state.loaded {
		return nil
	}

	persisted, err := o.store.Read(ctx, name)
	if err != nil {
		return errs.NewPersistence(name, "loading persisted records", err)
	}

	if len(persisted) > 0 {
		state.records = persisted
		state.loaded = true
		o.log.Info().Str("source", name).Int("records", len(persisted)).Msg("Loaded persisted dataset")
		return nil
	}

	o.log.Info().Str("source", name).Msg("No persisted dataset, running initial collection")
	return o.refreshLocked(ctx, name, state)
}

// Refresh runs a source's adapter and merges the outcome into the dataset.
// Concurrent and rapid repeat calls within the cooldown window are rejected
// with ErrCoolingDown; the caller that placed the cooldown marker is the one
// whose run proceeds.
func (o *Orchestrator) Refresh(ctx context.Context, name string) error {
	state, ok := o.states[name]
	if !ok {
		return ErrUnknownSource
	}

	if err := o.claimCooldown(name); err != nil {
		return err
	}

	state.mu.Lock()
	defer state.mu.Unlock()
	return o.refreshLocked(ctx, name, state)
}

// claimCooldown atomically places the per-source cooldown marker. A cache
// infrastructure failure does not block refreshing.
func (o *Orchestrator) claimCooldown(name string) error {
	if o.cache == nil || o.cooldown <= 0 {
		return nil
	}
	err := o.cache.Add("refresh:"+name, []byte("1"), o.cooldown)
	if errors.Is(err, cache.ErrNotStored) {
		return ErrCoolingDown
	}
	if err != nil {
		o.log.Warn().
			Err(errs.NewCache(name, "cooldown claim failed", err)).
			Msg("Cooldown cache unavailable, refreshing anyway")
	}
	return nil
}

// refreshLocked collects, merges, persists and publishes under the source
// mutex. The merged dataset is installed in memory before persistence is
// attempted, so a storage failure never loses collected records.
func (o *Orchestrator) refreshLocked(ctx context.Context, name string, state *sourceState) error {
	collected, outcome := o.adapters[name].Collect(ctx)

	merged := copyRecords(state.records)
	for key, rec := range collected {
		merged[key] = rec
	}
	state.records = merged
	state.loaded = true

	o.log.Info().
		Str("source", name).
		Str("outcome", string(outcome)).
		Int("collected", len(collected)).
		Int("total", len(merged)).
		Msg("Refreshed dataset")

	if err := o.store.Write(ctx, name, merged); err != nil {
		return errs.NewPersistence(name, "persisting merged records", err)
	}

	o.publish(name, merged)
	return nil
}

// publish announces a source's merged dataset, best effort.
func (o *Orchestrator) publish(name string, records map[string]scope.Record) {
	if o.pub == nil {
		return
	}
	payload, err := json.Marshal(records)
	if err != nil {
		o.log.Warn().Err(err).Str("source", name).Msg("Failed to encode dataset for publishing")
		return
	}
	if err := o.pub.Publish(name, payload); err != nil {
		o.log.Warn().Err(errs.NewPublisher(name, "stream publish failed", err)).Msg("Failed to publish dataset")
	}
}

func copyRecords(records map[string]scope.Record) map[string]scope.Record {
	out := make(map[string]scope.Record, len(records))
	for k, v := range records {
		out[k] = v
	}
	return out
}
