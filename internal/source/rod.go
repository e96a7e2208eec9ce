package source

import (
	"context"
	"fmt"
	"sync"

	"kwestendorf/scopeworker/logger"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"
)

// RodProvider renders pages in headless Chrome via Rod. The browser is
// launched lazily on first fetch and reused across pages; stealth pages keep
// retailer bot-detection from serving empty shells.
type RodProvider struct {
	mu        sync.Mutex
	browser   *rod.Browser
	lnch      *launcher.Launcher
	remoteURL string
	closed    bool
}

// NewRodProvider creates a Rod-backed snapshot provider. remoteURL is the
// websocket URL of an external Chrome instance; empty launches a local one.
func NewRodProvider(remoteURL string) *RodProvider {
	return &RodProvider{remoteURL: remoteURL}
}

func (p *RodProvider) connect() (*rod.Browser, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, fmt.Errorf("browser provider is closed")
	}
	if p.browser != nil {
		return p.browser, nil
	}

	controlURL := p.remoteURL
	if controlURL == "" {
		p.lnch = launcher.New().Headless(true).NoSandbox(true)
		u, err := p.lnch.Launch()
		if err != nil {
			return nil, fmt.Errorf("launch chrome: %w", err)
		}
		controlURL = u
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("connect chrome: %w", err)
	}

	logger.Info("Connected to headless Chrome at %s", controlURL)
	p.browser = b
	return b, nil
}

// Fetch navigates a fresh stealth tab to the URL, waits for the page load
// and the named content marker, and returns the serialized DOM.
func (p *RodProvider) Fetch(ctx context.Context, url, waitSelector string) (string, error) {
	b, err := p.connect()
	if err != nil {
		return "", err
	}

	page, err := stealth.Page(b)
	if err != nil {
		return "", fmt.Errorf("create tab: %w", err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", fmt.Errorf("navigate %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("wait load %s: %w", url, err)
	}
	if waitSelector != "" {
		if _, err := page.Element(waitSelector); err != nil {
			return "", fmt.Errorf("wait for %q on %s: %w", waitSelector, url, err)
		}
	}

	res, err := page.Eval(`() => document.documentElement.outerHTML`)
	if err != nil {
		return "", fmt.Errorf("serialize DOM %s: %w", url, err)
	}
	return res.Value.Str(), nil
}

// Close shuts the browser down.
func (p *RodProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	if p.browser == nil {
		return nil
	}
	err := p.browser.Close()
	if p.lnch != nil {
		p.lnch.Cleanup()
	}
	p.browser = nil
	return err
}
