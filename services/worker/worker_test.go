package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"kwestendorf/scopeworker/internal/orchestrator"
	"kwestendorf/scopeworker/internal/reticle"
	"kwestendorf/scopeworker/internal/scope"
	"kwestendorf/scopeworker/internal/source"

	"github.com/stretchr/testify/assert"
)

type countingProvider struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (p *countingProvider) Fetch(_ context.Context, _, _ string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.err != nil {
		return "", p.err
	}
	return `<html><body><div class="items">
		<div class="item"><span class="name">VX-Freedom 3-9x40 Duplex</span></div>
	</div></body></html>`, nil
}

func (p *countingProvider) Close() error { return nil }

func (p *countingProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

type memStore struct {
	mu   sync.Mutex
	data map[string]map[string]scope.Record
}

func (s *memStore) Read(_ context.Context, name string) (map[string]scope.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]scope.Record)
	for k, v := range s.data[name] {
		out[k] = v
	}
	return out, nil
}

func (s *memStore) Write(_ context.Context, name string, records map[string]scope.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		s.data = make(map[string]map[string]scope.Record)
	}
	s.data[name] = records
	return nil
}

func (s *memStore) Close() error { return nil }

type trimCounter struct {
	mu    sync.Mutex
	trims int
}

func (p *trimCounter) Publish(string, []byte) error { return nil }
func (p *trimCounter) Close() error                 { return nil }

func (p *trimCounter) TrimStreams() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.trims++
	return nil
}

func (p *trimCounter) trimCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.trims
}

func newAdapter(name string, provider source.SnapshotProvider) *source.Adapter {
	return source.NewAdapter(source.Config{
		Name:        name,
		URL:         "https://example.com/scopes",
		BaseURL:     "https://example.com",
		FallbackURL: "https://example.com/scopes",
		Selectors: source.Selectors{
			Wait:  ".items",
			Item:  ".item",
			Title: ".name",
		},
		KeyStrategy: scope.SlugKey,
		Classifier:  reticle.NewBasicClassifier(),
		Fallback: map[string]scope.Record{
			"fallback-3-9x40": {MinZoom: 3, MaxZoom: 9, ObjectiveLens: 40, Model: "Fallback 3-9x40"},
		},
	}, provider)
}

func TestWorkerRunsCycleImmediatelyAndStops(t *testing.T) {
	provider := &countingProvider{}
	pub := &trimCounter{}
	orch := orchestrator.New([]*source.Adapter{newAdapter("alpha", provider), newAdapter("beta", provider)}, &memStore{}, nil, nil, 0)
	w := NewWorker(orch, pub, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	// The first cycle runs without waiting for the ticker
	assert.Eventually(t, func() bool {
		return provider.callCount() == 2 && pub.trimCount() == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop on context cancellation")
	}
}

func TestWorkerSurvivesFailingSource(t *testing.T) {
	failing := &countingProvider{err: errors.New("upstream down")}
	healthy := &countingProvider{}
	orch := orchestrator.New([]*source.Adapter{newAdapter("bad", failing), newAdapter("good", healthy)}, &memStore{}, nil, nil, 0)
	w := NewWorker(orch, nil, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	// The failing source falls back; the healthy one serves live records;
	// the cycle completes either way
	assert.Eventually(t, func() bool {
		bad, errBad := orch.Records(ctx, "bad")
		good, errGood := orch.Records(ctx, "good")
		if errBad != nil || errGood != nil {
			return false
		}
		_, badHasFallback := bad["fallback-3-9x40"]
		_, goodHasLive := good["vx-freedom-3-9x40-duplex"]
		return badHasFallback && goodHasLive
	}, time.Second, 10*time.Millisecond)
}
