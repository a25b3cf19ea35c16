package handler

import (
	"net/http"

	"shopfront-api/internal/adapter/http/middleware"
	redisStore "shopfront-api/internal/adapter/storage/redis"
	"shopfront-api/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	ReviewSvc      ports.ReviewService
	PaymentSvc     ports.PaymentService
	WebSocket      http.HandlerFunc           // upgrades GET /ws
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	OpenAPISpec    []byte // nil = /docs/openapi.yaml answers 404
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.MaxBodySize(maxBodyBytes))

	r.GET("/health", HealthCheck(deps.HealthCheckers...))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	docs := NewDocsHandler(deps.OpenAPISpec)
	r.GET("/docs", docs.UI)
	r.GET("/docs/openapi.yaml", docs.Spec)

	rules := middleware.DefaultRateLimitRules()
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rules[group], deps.Logger)
	}

	reviews := NewReviewHandler(deps.ReviewSvc)
	r.GET("/reviews/:id", reviews.List)
	r.POST("/reviews/:id", rl(middleware.GroupReviewsWrite), reviews.Create)

	payments := NewPaymentHandler(deps.PaymentSvc)
	r.POST("/initiate-payment", rl(middleware.GroupPayments), payments.Initiate)

	if deps.WebSocket != nil {
		r.GET("/ws", gin.WrapF(deps.WebSocket))
	}

	return r
}

// WithCORS wraps h so browsers on allowedOrigins may call the API. A "*"
// entry allows any origin.
func WithCORS(h http.Handler, allowedOrigins []string) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", middleware.HeaderRequestID},
		ExposedHeaders: []string{middleware.HeaderRequestID},
		MaxAge:         600,
	})
	return c.Handler(h)
}
