package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	AttemptsRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "trivia_attempts_recorded_total",
			Help: "Quiz attempts persisted to the scores table",
		},
	)

	AttemptConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "trivia_attempt_conflicts_total",
			Help: "Attempt number collisions seen while recording a score",
		},
	)

	AnswersGraded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trivia_answers_graded_total",
			Help: "Answers graded by outcome",
		},
		[]string{"result"},
	)

	LeaderboardCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trivia_leaderboard_cache_total",
			Help: "Leaderboard cache lookups by outcome",
		},
		[]string{"outcome"},
	)

	RateLimited = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trivia_rate_limited_total",
			Help: "Requests rejected by a rate limit scope",
		},
		[]string{"scope"},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(AttemptsRecorded)
		prometheus.MustRegister(AttemptConflicts)
		prometheus.MustRegister(AnswersGraded)
		prometheus.MustRegister(LeaderboardCache)
		prometheus.MustRegister(RateLimited)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
