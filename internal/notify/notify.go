// Package notify sends operator alerts to Shoutrrr URLs (ntfy, Discord,
// Slack, SMTP, ...). Alerts are broadcast; there are no per-user channels.
package notify

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/containrrr/shoutrrr"
)

// DefaultCooldown is the minimum time between two alerts with the same key.
const DefaultCooldown = 15 * time.Minute

// Alerter broadcasts alerts, suppressing repeats of the same key within the
// cooldown. A nil *Alerter drops every alert.
type Alerter struct {
	urls     []string
	cooldown time.Duration
	prefix   string

	send func(url, message string) error
	now  func() time.Time
	wg   sync.WaitGroup

	mu   sync.Mutex
	last map[string]time.Time
}

// NewAlerter returns an Alerter for the given Shoutrrr URLs, or nil when none
// are configured.
func NewAlerter(urls []string, cooldown time.Duration) *Alerter {
	if len(urls) == 0 {
		return nil
	}
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Alerter{
		urls:     urls,
		cooldown: cooldown,
		prefix:   "[SASBACK] ",
		send:     shoutrrr.Send,
		now:      time.Now,
		last:     make(map[string]time.Time),
	}
}

// Alert sends message to every URL in the background unless key fired within
// the cooldown. It reports whether the alert was dispatched.
func (a *Alerter) Alert(key, message string) bool {
	if a == nil {
		return false
	}

	a.mu.Lock()
	now := a.now()
	if t, ok := a.last[key]; ok && now.Sub(t) < a.cooldown {
		a.mu.Unlock()
		return false
	}
	a.last[key] = now
	a.mu.Unlock()

	body := a.prefix + message
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		for _, u := range a.urls {
			if err := a.send(u, body); err != nil {
				log.Printf("notify: send to %s failed: %v", maskURL(u), err)
			}
		}
	}()
	return true
}

// Test sends a test message synchronously to every URL.
func (a *Alerter) Test() error {
	if a == nil {
		return fmt.Errorf("notify: no alert URLs configured")
	}
	var errs []string
	for _, u := range a.urls {
		if err := a.send(u, a.prefix+"prueba de alertas: si ves esto, las notificaciones funcionan"); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", maskURL(u), err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("notify: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Wait blocks until in-flight alerts have been sent.
func (a *Alerter) Wait() {
	if a != nil {
		a.wg.Wait()
	}
}

// ParseURLs splits a comma-or-newline-separated URL list and trims whitespace.
func ParseURLs(s string) []string {
	s = strings.ReplaceAll(s, "\n", ",")
	var urls []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			urls = append(urls, p)
		}
	}
	return urls
}

// maskURL hides credentials in a Shoutrrr URL for logging.
func maskURL(u string) string {
	if len(u) <= 15 {
		return u[:min(len(u), 5)] + "••••"
	}
	return u[:15] + "••••"
}
