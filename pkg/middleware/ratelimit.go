package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/pymer/churninsight-api/pkg/apiErrors"
	"github.com/pymer/churninsight-api/pkg/log"
	"golang.org/x/time/rate"
)

// Clientes sem requisições por esse tempo perdem o limitador
const clientIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiters guarda um limitador por IP de origem (RemoteAddr, sem a porta).
// X-Forwarded-For é ignorado porque o cliente controla esse header.
type clientLimiters struct {
	mu        sync.Mutex
	clients   map[string]*clientLimiter
	limit     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

func newClientLimiters(rps float64, burst int) *clientLimiters {
	return &clientLimiters{
		clients: make(map[string]*clientLimiter),
		limit:   rate.Limit(rps),
		burst:   max(burst, 1),
		now:     time.Now,
	}
}

func (c *clientLimiters) allow(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if now.Sub(c.lastSweep) >= clientIdleTTL {
		for k, client := range c.clients {
			if now.Sub(client.lastSeen) >= clientIdleTTL {
				delete(c.clients, k)
			}
		}
		c.lastSweep = now
	}

	client, ok := c.clients[key]
	if !ok {
		client = &clientLimiter{limiter: rate.NewLimiter(c.limit, c.burst)}
		c.clients[key] = client
	}
	client.lastSeen = now

	return client.limiter.AllowN(now, 1)
}

func (c *clientLimiters) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.clients)
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit aplica um limite de requisições por segundo para cada cliente. rps <= 0 desabilita.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	limiters := newClientLimiters(rps, burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := clientKey(r)
			if !limiters.allow(client) {
				log.ForContext(r.Context()).WithFields(log.Fields{
					"path":   r.URL.Path,
					"client": client,
				}).Warn("Limite de requisições excedido")
				w.Header().Set("Retry-After", "1")
				apiErrors.WriteError(w, apiErrors.ErrTooManyRequests, "Too many requests", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
