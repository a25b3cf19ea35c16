// Package payfast submits signed payment requests to PayFast's onsite
// process endpoint.
package payfast

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"shopfront-api/config"
	"shopfront-api/internal/core/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
)

const (
	breakerName     = "payfast"
	maxResponseBody = 1 << 20
)

var (
	breakerState = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "payfast_circuit_breaker_state",
		Help: "State of the PayFast circuit breaker (0=closed, 1=half-open, 2=open)",
	})

	submissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payfast_submissions_total",
		Help: "PayFast submissions by outcome",
	}, []string{"outcome"})

	submissionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "payfast_submission_duration_seconds",
		Help:    "Round-trip time of PayFast submissions",
		Buckets: prometheus.DefBuckets,
	})
)

// ErrCircuitOpen is returned without contacting PayFast while the breaker
// is open.
var ErrCircuitOpen = gobreaker.ErrOpenState

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// StatusError reports a non-2xx answer from PayFast.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("payfast: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("payfast: unexpected status %d: %s", e.StatusCode, e.Body)
}

// Client implements ports.PaymentGateway.
type Client struct {
	httpClient HTTPClient
	processURL string
	breaker    *gobreaker.CircuitBreaker[[]byte]
	log        zerolog.Logger
}

// NewClient creates a PayFast client. When cb.Enabled is false every call
// goes straight to PayFast.
func NewClient(httpClient HTTPClient, processURL string, cb config.BreakerConfig, log zerolog.Logger) *Client {
	c := &Client{
		httpClient: httpClient,
		processURL: processURL,
		log:        log.With().Str("component", "payfast_client").Logger(),
	}
	if cb.Enabled {
		c.breaker = newBreaker(cb, c.log)
	}
	return c
}

func newBreaker(cfg config.BreakerConfig, log zerolog.Logger) *gobreaker.CircuitBreaker[[]byte] {
	settings := gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureRatio
		},
		// PayFast rejecting a request (4xx) says nothing about its health.
		IsSuccessful: func(err error) bool {
			var se *StatusError
			if errors.As(err, &se) {
				return se.StatusCode < http.StatusInternalServerError
			}
			return err == nil
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state change")
			breakerState.Set(stateToFloat(to))
		},
	}

	breakerState.Set(0)
	return gobreaker.NewCircuitBreaker[[]byte](settings)
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// Submit form-encodes fields in order, POSTs them once and returns the
// response body as the payment identifier.
func (c *Client) Submit(ctx context.Context, fields domain.Fields) (domain.PaymentID, error) {
	start := time.Now()
	body, err := c.execute(ctx, fields)
	submissionDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		submissionsTotal.WithLabelValues(outcome(err)).Inc()
		c.log.Warn().Err(err).Str("url", c.processURL).Msg("payfast submission failed")
		return nil, err
	}

	submissionsTotal.WithLabelValues("success").Inc()
	c.log.Debug().Int("bytes", len(body)).Msg("payfast submission accepted")
	return domain.NewPaymentID(body), nil
}

func (c *Client) execute(ctx context.Context, fields domain.Fields) ([]byte, error) {
	if c.breaker == nil {
		return c.post(ctx, fields)
	}

	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.post(ctx, fields)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("payfast: circuit breaker rejected request: %w", err)
	}
	return body, err
}

func (c *Client) post(ctx context.Context, fields domain.Fields) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.processURL, strings.NewReader(fields.Encode()))
	if err != nil {
		return nil, fmt.Errorf("payfast: creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payfast: sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("payfast: reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return body, nil
}

func outcome(err error) string {
	var se *StatusError
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "rejected"
	case errors.As(err, &se):
		return "status_error"
	default:
		return "transport_error"
	}
}
