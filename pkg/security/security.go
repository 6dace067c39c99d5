package security

import (
	"bible_trivia_backend/pkg/monitoring"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// CORS only echoes origins from the allow list and permits credentials,
// which the access_token cookie needs.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	originSet := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		originSet[o] = true
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if origin != "" && originSet[origin] {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func Secure() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		if c.Request.TLS != nil {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		}

		c.Next()
	}
}

// KeyFunc names the bucket a request is counted against.
type KeyFunc func(c *gin.Context) string

// ByClientIP counts requests per remote address.
func ByClientIP(c *gin.Context) string {
	return "ip:" + c.ClientIP()
}

// Limit describes one rate-limited scope, such as all traffic or credential checks.
type Limit struct {
	Scope       string
	MaxRequests int
	Window      time.Duration
	Key         KeyFunc
}

// bucket pairs a limiter with the last time its key was seen.
type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter enforces l with a token bucket per key. Rejections answer 429
// with Retry-After and are counted per scope. A non-positive MaxRequests
// disables the limit.
func RateLimiter(l Limit) gin.HandlerFunc {
	if l.MaxRequests <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if l.Window <= 0 {
		l.Window = time.Minute
	}
	if l.Key == nil {
		l.Key = ByClientIP
	}

	buckets := make(map[string]*bucket)
	var mu sync.Mutex

	go func() {
		expiry := l.Window * 3
		if expiry < time.Minute {
			expiry = time.Minute
		}
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			mu.Lock()
			for key, b := range buckets {
				if time.Since(b.lastSeen) > expiry {
					delete(buckets, key)
				}
			}
			mu.Unlock()
		}
	}()

	every := l.Window / time.Duration(l.MaxRequests)
	retryAfter := strconv.Itoa(int(math.Ceil(every.Seconds())))

	return func(c *gin.Context) {
		key := l.Key(c)

		mu.Lock()
		b, ok := buckets[key]
		if !ok {
			b = &bucket{limiter: rate.NewLimiter(rate.Every(every), l.MaxRequests)}
			buckets[key] = b
		}
		b.lastSeen = time.Now()
		mu.Unlock()

		if !b.limiter.Allow() {
			monitoring.RateLimited.WithLabelValues(l.Scope).Inc()
			c.Header("Retry-After", retryAfter)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": "too many requests",
			})
			return
		}

		c.Next()
	}
}
