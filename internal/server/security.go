package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/babygoats/BabyGoats_Go/internal/logger"
)

// ipActivity accumulates one client's counters for the current window. The
// expirable LRU owns the window: entries fall out RateLimitWindow after
// their first request, so every IP gets a rolling window of its own.
type ipActivity struct {
	requests    int
	failedAuths int
}

// AbuseMonitor tracks per-IP request and failed-auth counts over a rolling
// window, bounded in memory by the LRU cap so a spray of spoofed source
// addresses cannot grow the map without limit.
type AbuseMonitor struct {
	mu      sync.Mutex
	byIP    *expirable.LRU[string, *ipActivity]
	limit   int
	authCap int
}

func NewAbuseMonitor() *AbuseMonitor {
	return &AbuseMonitor{
		byIP:    expirable.NewLRU[string, *ipActivity](MaxTrackedIPs, nil, RateLimitWindow),
		limit:   RateLimitMaxRequests,
		authCap: FailedAuthAlertThreshold,
	}
}

func (m *AbuseMonitor) activity(ip string) *ipActivity {
	if act, found := m.byIP.Get(ip); found {
		return act
	}
	act := &ipActivity{}
	m.byIP.Add(ip, act)
	return act
}

// RecordFailedAuth counts a rejected API key for ip and raises a log alert
// once the count crosses the threshold.
func (m *AbuseMonitor) RecordFailedAuth(ip string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	act := m.activity(ip)
	act.failedAuths++
	if act.failedAuths >= m.authCap {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", act.failedAuths)
	}
}

// Allow counts one request for ip and reports whether it is still inside
// the window's budget. Over-limit traffic is logged every hundredth request
// so a sustained flood doesn't flood the log too.
func (m *AbuseMonitor) Allow(ip string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	act := m.activity(ip)
	act.requests++
	if act.requests > m.limit {
		if act.requests%100 == 0 {
			slog.Warn(SecurityAlertHighRate, "ip", ip, "count_in_window", act.requests)
		}
		return false
	}
	return true
}

// requestCount reports the counted requests for ip. Test hook.
func (m *AbuseMonitor) requestCount(ip string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if act, found := m.byIP.Get(ip); found {
		return act.requests
	}
	return 0
}

// AuthMiddleware requires the configured API key on every path outside the
// public allowlist. Comparison is constant-time so response latency can't
// be used to probe key bytes.
func AuthMiddleware(apiKey string, trustedProxies []string, monitor *AbuseMonitor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, path := range PublicPaths {
				if strings.HasPrefix(r.URL.Path, path) {
					next.ServeHTTP(w, r)
					return
				}
			}

			providedKey := r.Header.Get(HeaderAPIKey)
			if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
				ip := extractIP(r, trustedProxies)
				monitor.RecordFailedAuth(ip)

				logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
					"remote_addr", r.RemoteAddr,
					"path", r.URL.Path,
					"has_key", providedKey != "",
					"ip", ip)

				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitMiddleware rejects requests from IPs over the rolling window
// budget before they reach the router.
func RateLimitMiddleware(trustedProxies []string, monitor *AbuseMonitor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !monitor.Allow(extractIP(r, trustedProxies)) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestSizeLimitMiddleware caps request body size; oversized bodies fail
// inside the handlers' json decode with a MaxBytesError.
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// extractIP resolves the client address, honouring X-Forwarded-For only
// when the direct peer is a listed proxy. The rightmost entry wins: that is
// the hop the trusted proxy itself saw, and the only one it vouches for.
func extractIP(r *http.Request, trustedProxies []string) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	trusted := false
	for _, proxy := range trustedProxies {
		if proxy == remoteIP {
			trusted = true
			break
		}
	}
	if trusted {
		if forwarded := r.Header.Get(HeaderForwardedFor); forwarded != "" {
			hops := strings.Split(forwarded, ",")
			return strings.TrimSpace(hops[len(hops)-1])
		}
	}

	return remoteIP
}

// SecurityHeadersMiddleware sets the standard browser hardening headers on
// every response.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(HeaderContentType, HeaderValueNoSniff)
			w.Header().Set(HeaderFrameOptions, HeaderValueSameOrigin)
			w.Header().Set(HeaderXSSProtection, HeaderValueXSSBlock)
			w.Header().Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)
			next.ServeHTTP(w, r)
		})
	}
}
