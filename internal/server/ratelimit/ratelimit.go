// Package ratelimit throttles API clients with per-client token buckets.
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// staleAfter is how long an idle client keeps its buckets before a sweep
// drops them.
const staleAfter = time.Hour

// Rule is one throttling tier. A request matches on method plus either the
// exact path or, when Prefix ends in "/", a path prefix. PerMinute 0 means
// the matched requests are unlimited.
type Rule struct {
	Method    string
	Prefix    string
	PerMinute int
	Burst     int // defaults to PerMinute when 0
}

// Decision is the outcome of an Allow call, carrying the values the HTTP
// layer echoes back in rate limit headers.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

type bucketKey struct {
	client string
	rule   int
}

// bucket refills continuously instead of resetting per window, so a client
// that paces requests never hits the limit.
type bucket struct {
	tokens   float64
	lastFill time.Time
}

// Limiter tracks one token bucket per client and matched rule. The zero
// value is not usable; construct with New.
type Limiter struct {
	rules []Rule

	mu      sync.Mutex
	buckets map[bucketKey]*bucket
	sweepAt time.Time
}

// New creates a limiter enforcing the given rules. Requests that match no
// rule are allowed.
func New(rules []Rule) *Limiter {
	return &Limiter{
		rules:   rules,
		buckets: make(map[bucketKey]*bucket),
		sweepAt: time.Now().Add(staleAfter),
	}
}

// Allow consumes one token for the client on the rule matching the request
// and reports whether the request may proceed.
func (l *Limiter) Allow(client, method, path string) Decision {
	idx := l.match(method, path)
	if idx < 0 || l.rules[idx].PerMinute <= 0 {
		return Decision{Allowed: true}
	}
	rule := l.rules[idx]

	burst := rule.Burst
	if burst <= 0 {
		burst = rule.PerMinute
	}
	rate := float64(rule.PerMinute) / 60.0

	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.sweep(now)

	key := bucketKey{client: client, rule: idx}
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: float64(burst), lastFill: now}
		l.buckets[key] = b
	}

	b.tokens = min(float64(burst), b.tokens+now.Sub(b.lastFill).Seconds()*rate)
	b.lastFill = now

	decision := Decision{Limit: rule.PerMinute}
	if b.tokens >= 1 {
		b.tokens--
		decision.Allowed = true
		decision.Remaining = int(b.tokens)
		return decision
	}

	decision.RetryAfter = time.Duration((1 - b.tokens) / rate * float64(time.Second))
	return decision
}

// match returns the index of the rule applying to the request. Exact path
// matches win over prefix matches; -1 means no rule applies.
func (l *Limiter) match(method, path string) int {
	prefix := -1
	for i, rule := range l.rules {
		if rule.Method != method {
			continue
		}
		if rule.Prefix == path {
			return i
		}
		if prefix < 0 && strings.HasSuffix(rule.Prefix, "/") && strings.HasPrefix(path, rule.Prefix) {
			prefix = i
		}
	}
	return prefix
}

// sweep drops buckets idle past staleAfter. Called with l.mu held; runs at
// most once per staleAfter so the map cannot grow without bound.
func (l *Limiter) sweep(now time.Time) {
	if now.Before(l.sweepAt) {
		return
	}
	for key, b := range l.buckets {
		if now.Sub(b.lastFill) > staleAfter {
			delete(l.buckets, key)
		}
	}
	l.sweepAt = now.Add(staleAfter)
}

// ClientIP returns the throttling key for a request: the host part of
// RemoteAddr, or the whole RemoteAddr when it has no port.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
