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

	SubmissionsGraded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exam_submissions_graded_total",
			Help: "Number of graded exam submissions by outcome",
		},
		[]string{"outcome"},
	)

	ExamGrade = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "exam_grade_percent",
			Help:    "Distribution of exam grades (0-100)",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	Enrollments = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "course_enrollments_total",
			Help: "Number of new course enrollments by mode",
		},
		[]string{"mode"},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(SubmissionsGraded)
		prometheus.MustRegister(ExamGrade)
		prometheus.MustRegister(Enrollments)
	})
}

// ObserveExam 记录一次评分结果
func ObserveExam(grade float64, passed bool) {
	outcome := "failed"
	if passed {
		outcome = "passed"
	}
	SubmissionsGraded.WithLabelValues(outcome).Inc()
	ExamGrade.Observe(grade)
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
