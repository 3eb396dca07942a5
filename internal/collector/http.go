package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

const userAgent = "Mozilla/5.0 (compatible; StockAdvisor/1.0)"

// newHTTPClient creates a client with optional proxy support.
func newHTTPClient(proxyURL string) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
}

// NewLimiter returns a limiter allowing rps requests per second; rps <= 0 disables limiting.
func NewLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Limit(rps), 1)
}

// breakerFailures is the number of consecutive failed requests that opens a provider's circuit.
const breakerFailures = 5

// NewBreaker returns a circuit breaker that opens after breakerFailures
// consecutive failures and retries after a minute.
func NewBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("provider", name).Str("from", from.String()).Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	})
}

// httpSource bundles the client, limiter and breaker shared by the JSON fetchers.
// Limiter and Breaker may be nil.
type httpSource struct {
	Client  *http.Client
	Limiter *rate.Limiter
	Breaker *gobreaker.CircuitBreaker
}

func newHTTPSource(name, proxyURL string, limiter *rate.Limiter) httpSource {
	return httpSource{
		Client:  newHTTPClient(proxyURL),
		Limiter: limiter,
		Breaker: NewBreaker(name),
	}
}

// getJSON issues a rate-limited GET through the breaker and decodes a 200
// response body into out.
func (s httpSource) getJSON(ctx context.Context, endpoint string, header http.Header, out any) error {
	if s.Limiter != nil {
		if err := s.Limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit: %w", err)
		}
	}
	if s.Breaker == nil {
		return doJSON(ctx, s.Client, endpoint, header, out)
	}
	_, err := s.Breaker.Execute(func() (interface{}, error) {
		return nil, doJSON(ctx, s.Client, endpoint, header, out)
	})
	return err
}

func doJSON(ctx context.Context, client *http.Client, endpoint string, header http.Header, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if len(body) > 256 {
			body = body[:256]
		}
		return fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
