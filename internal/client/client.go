// Package client talks to the REST API of a T8 vibration-monitoring
// appliance and turns its responses into typed entities.
//
// Every operation maps to exactly one HTTP GET under {host}/rest with Basic
// authentication and a bounded per-request timeout. The client performs no
// retries and holds no cross-call state: host and credentials are immutable
// after construction, so independent goroutines may share one client.
package client

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// T8Client defines the retrieval operations of the appliance API.
type T8Client interface {
	GetSystemInfo(ctx context.Context) (*SystemInfo, error)
	GetStatus(ctx context.Context) (*Status, error)
	ListConfs(ctx context.Context) ([]string, error)
	GetConf(ctx context.Context, id string) (*Conf, error)
	ListProcModes(ctx context.Context) ([]ProcMode, error)
	ListParams(ctx context.Context) ([]ProcMode, error)
	ListWaveModeNames(ctx context.Context) ([]string, error)
	ListSnapshots(ctx context.Context, machine string) ([]int64, error)
	GetSnapshot(ctx context.Context, machine string, t int64) (*Snapshot, error)
	ListWaves(ctx context.Context, machine, point, pmode string) ([]int64, error)
	GetWave(ctx context.Context, machine, point, pmode string, t int64) (*Wave, error)
	ListSpectra(ctx context.Context, machine, point, pmode string) ([]int64, error)
	GetSpectrum(ctx context.Context, machine, point, pmode string, t int64) (*Spectrum, error)
	GetMachineTrend(ctx context.Context, machine string) (*MachineTrend, error)
	GetPointTrend(ctx context.Context, machine, point string) (*PointTrend, error)
	GetProcModeTrend(ctx context.Context, machine, point, pmode string) (*ProcModeTrend, error)
	GetParamTrend(ctx context.Context, machine, point, param string) (*ParamTrend, error)
	Host() string
}

// ClientConfig holds configuration for DefaultClient.
type ClientConfig struct {
	Host               string
	Username           string
	Password           string
	InsecureSkipVerify bool
	RequestTimeout     time.Duration
}

// DefaultClient implements T8Client using the standard net/http package.
type DefaultClient struct {
	http   *http.Client
	config ClientConfig
}

// NewDefaultClient constructs a DefaultClient from the given config.
// Returns an error if Host is empty. The request timeout defaults to 5s,
// the appliance's documented response deadline.
func NewDefaultClient(cfg ClientConfig) (*DefaultClient, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("Host is required")
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 5 * time.Second
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		InsecureSkipVerify: cfg.InsecureSkipVerify, //nolint:gosec
	}

	return &DefaultClient{
		http: &http.Client{
			Timeout:   cfg.RequestTimeout,
			Transport: transport,
		},
		config: cfg,
	}, nil
}

// Host returns the configured appliance host URL.
func (c *DefaultClient) Host() string {
	return c.config.Host
}

// doGet performs a GET request to the given path (relative to {host}/rest).
// It sets Accept: application/json and Basic Auth if credentials are
// configured. Returns the response body bytes, ErrHTTPStatus on a non-2xx
// response, or ErrUnreachable when no response arrives at all.
func (c *DefaultClient) doGet(ctx context.Context, path string) ([]byte, error) {
	url := strings.TrimRight(c.config.Host, "/") + "/rest" + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	if c.config.Username != "" || c.config.Password != "" {
		req.SetBasicAuth(c.config.Username, c.config.Password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	const maxResponseBytes = 32 * 1024 * 1024 // well above any real T8 response
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w %d: %s", ErrHTTPStatus, resp.StatusCode, truncate(body, 200))
	}

	return body, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
