package transfer

import (
	"net"
	"net/http"
	"net/url"
	"time"
)

// HTTP client defaults
const (
	DefaultTimeout   = 3 * time.Minute
	DefaultKATimeout = 90 * time.Second
	DefaultUserAgent = "repo-downloader/1.0"
)

// ClientConfig configures the HTTP client used for archive fetches.
// Timeout bounds connecting and waiting for response headers; the body
// streams until the transfer is cancelled.
type ClientConfig struct {
	Timeout       time.Duration
	KATimeout     time.Duration
	ProxyURL      string
	ProxyUsername string
	ProxyPassword string
	UserAgent     string
	Headers       map[string]string
}

// HTTPDoer is satisfied by Client and by test doubles
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client wraps http.Client with the configured headers
type Client struct {
	client *http.Client
	config ClientConfig
}

// NewClient creates an HTTP client from cfg
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.KATimeout == 0 {
		cfg.KATimeout = DefaultKATimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	dialer := &net.Dialer{
		Timeout:   cfg.Timeout,
		KeepAlive: cfg.KATimeout,
	}
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   cfg.Timeout,
		ResponseHeaderTimeout: cfg.Timeout,
		IdleConnTimeout:       cfg.KATimeout,
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   2,
	}
	if cfg.ProxyURL != "" {
		proxyURL, err := url.Parse(cfg.ProxyURL)
		if err == nil {
			if cfg.ProxyUsername != "" {
				if cfg.ProxyPassword != "" {
					proxyURL.User = url.UserPassword(cfg.ProxyUsername, cfg.ProxyPassword)
				} else {
					proxyURL.User = url.User(cfg.ProxyUsername)
				}
			}
			transport.Proxy = http.ProxyURL(proxyURL)
		}
	}
	return &Client{
		client: &http.Client{Transport: transport},
		config: cfg,
	}
}

// Do sends req with the configured user agent and headers
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", c.config.UserAgent)
	for k, v := range c.config.Headers {
		req.Header.Set(k, v)
	}
	return c.client.Do(req)
}
