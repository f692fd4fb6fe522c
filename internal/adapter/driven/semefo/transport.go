package semefo

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gregjones/httpcache"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

// RateLimit delays each request until limiter allows it. A cancelled request
// context aborts the wait and is returned as the error.
func RateLimit(limiter *rate.Limiter) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			if err := limiter.Wait(req.Context()); err != nil {
				closeRequestBody(req)
				return nil, fmt.Errorf("waiting for rate limiter: %w", err)
			}
			return next.RoundTrip(req)
		})
	}
}

// Metrics records the count and duration of backend calls.
func Metrics() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.RoundTrip(req)
			requestDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())
			requestsTotal.WithLabelValues(req.Method, statusClass(resp, err)).Inc()
			return resp, err
		})
	}
}

func statusClass(resp *http.Response, err error) string {
	if err != nil || resp == nil {
		return "error"
	}
	return strconv.Itoa(resp.StatusCode/100) + "xx"
}

// Cache adds HTTP conditional caching (ETag / Cache-Control) in front of next.
// Each distinct Authorization header gets its own cache so a response fetched
// with one credential is never served to another. At most size credentials
// are tracked; the least recently used cache is evicted first.
func Cache(size int) (Middleware, error) {
	caches, err := lru.New[string, *httpcache.Transport](size)
	if err != nil {
		return nil, fmt.Errorf("creating cache pool: %w", err)
	}

	return func(next http.RoundTripper) http.RoundTripper {
		return &cachePool{caches: caches, next: next}
	}, nil
}

type cachePool struct {
	mu     sync.Mutex
	caches *lru.Cache[string, *httpcache.Transport]
	next   http.RoundTripper
}

func (p *cachePool) RoundTrip(req *http.Request) (*http.Response, error) {
	return p.transportFor(req.Header.Get("Authorization")).RoundTrip(req)
}

func (p *cachePool) transportFor(authorization string) *httpcache.Transport {
	sum := sha256.Sum256([]byte(authorization))
	key := hex.EncodeToString(sum[:])

	p.mu.Lock()
	defer p.mu.Unlock()

	if t, ok := p.caches.Get(key); ok {
		return t
	}

	t := httpcache.NewTransport(httpcache.NewMemoryCache())
	t.Transport = p.next
	t.MarkCachedResponses = true
	p.caches.Add(key, t)
	return t
}
