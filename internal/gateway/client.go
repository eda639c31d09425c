package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// Client is the typed client for the helpdesk REST backend.
type Client struct {
	httpClient *resty.Client
	baseURL    string
	healthPath string
	metrics    *Metrics
	logger     zerolog.Logger

	// Service clients
	Tickets   *TicketsService
	Users     *UsersService
	Dashboard *DashboardService
}

// Config represents client configuration. Zero Timeout and RetryCount keep
// the transport defaults: no deadline and no retries.
type Config struct {
	BaseURL    string
	HealthPath string
	UserAgent  string
	Timeout    time.Duration
	RetryCount int
	Debug      bool
	Metrics    *Metrics
	Logger     zerolog.Logger
}

// NewClient creates a new backend client.
func NewClient(config *Config) *Client {
	if config.UserAgent == "" {
		config.UserAgent = "helpdesk-console/1.0"
	}
	if config.HealthPath == "" {
		config.HealthPath = "/tickets/dashboard"
	}

	httpClient := resty.New().
		SetBaseURL(config.BaseURL).
		SetRetryCount(config.RetryCount).
		SetHeader("User-Agent", config.UserAgent).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	if config.Timeout > 0 {
		httpClient.SetTimeout(config.Timeout)
	}
	if config.Debug {
		httpClient.SetDebug(true)
	}

	client := &Client{
		httpClient: httpClient,
		baseURL:    config.BaseURL,
		healthPath: config.HealthPath,
		metrics:    config.Metrics,
		logger:     config.Logger.With().Str("component", "gateway").Logger(),
	}

	client.Tickets = &TicketsService{client: client}
	client.Users = &UsersService{client: client}
	client.Dashboard = &DashboardService{client: client}

	return client
}

// BaseURL returns the backend base URL the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// call describes one backend request.
type call struct {
	operation   string
	method      string
	path        string
	pathParams  map[string]string
	queryParams map[string]string
	body        interface{}
	result      interface{}
}

// do executes a call, translating transport failures into *NetworkError and
// non-2xx answers into *APIError.
func (c *Client) do(ctx context.Context, cl call) error {
	start := time.Now()

	req := c.httpClient.R().SetContext(ctx)
	if len(cl.pathParams) > 0 {
		req.SetPathParams(cl.pathParams)
	}
	if len(cl.queryParams) > 0 {
		req.SetQueryParams(cl.queryParams)
	}
	if cl.body != nil {
		req.SetBody(cl.body)
	}

	resp, err := req.Execute(cl.method, cl.path)
	if err != nil {
		c.metrics.observe(cl.operation, outcomeNetwork, time.Since(start))
		c.logger.Debug().Err(err).Str("operation", cl.operation).Msg("backend request failed")
		return &NetworkError{
			Operation: cl.operation,
			URL:       c.baseURL + cl.path,
			Err:       err,
		}
	}

	c.logger.Debug().
		Str("operation", cl.operation).
		Str("method", cl.method).
		Int("status", resp.StatusCode()).
		Dur("elapsed", resp.Time()).
		Msg("backend response")

	if !resp.IsSuccess() {
		c.metrics.observe(cl.operation, outcomeStatus, time.Since(start))
		var body errorBody
		_ = json.Unmarshal(resp.Body(), &body)
		return newAPIError(cl.operation, resp.StatusCode(), body, resp.Body())
	}

	if cl.result != nil && len(resp.Body()) > 0 {
		if err := json.Unmarshal(resp.Body(), cl.result); err != nil {
			c.metrics.observe(cl.operation, outcomeDecode, time.Since(start))
			return fmt.Errorf("decode %s response: %w", cl.operation, err)
		}
	}

	c.metrics.observe(cl.operation, outcomeSuccess, time.Since(start))
	return nil
}

// Ping checks that the backend answers.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, call{
		operation: "ping",
		method:    resty.MethodGet,
		path:      c.healthPath,
	})
}
