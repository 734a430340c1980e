package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dropDatabas3/wizauth/internal/metrics"
	"github.com/dropDatabas3/wizauth/internal/observability/logger"
)

// maxBody limita lo que se lee de una respuesta del provider.
const maxBody = 1 << 20

// Config del gateway.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration

	// HTTPClient opcional (tests). Si es nil se arma uno con Timeout.
	HTTPClient *http.Client
}

// Client habla con la API REST del provider (auth + data). No tiene estado
// mutable; un único *http.Client reutiliza conexiones entre requests.
type Client struct {
	base   *url.URL
	apiKey string
	http   *http.Client
}

func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("provider: base url is required")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("provider: api key is required")
	}
	u, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("provider: invalid base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("provider: base url must be http(s), got %q", cfg.BaseURL)
	}
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{base: u, apiKey: cfg.APIKey, http: hc}, nil
}

// Request es una llamada al provider. Body se serializa como JSON salvo que
// ya sea []byte. Bearer vacío => se usa el api key (llamadas de servicio).
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	Bearer string
	Header http.Header
}

// Response es una respuesta 2xx ya leída.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Decode deserializa el body JSON en v. Un body vacío no es error.
func (r *Response) Decode(v any) error {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("provider: decode response: %w", err)
	}
	return nil
}

// URL resuelve path + query contra la base del provider.
func (c *Client) URL(path string, q url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(c.base.Path, "/") + "/" + strings.TrimLeft(path, "/")
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// Do ejecuta la llamada. Status >= 400 => *ProviderError; sin respuesta =>
// *NetworkError. No reintenta.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	op := method + " " + req.Path

	var body io.Reader
	if req.Body != nil {
		switch b := req.Body.(type) {
		case []byte:
			body = bytes.NewReader(b)
		default:
			buf, err := json.Marshal(b)
			if err != nil {
				return nil, fmt.Errorf("provider: encode %s: %w", op, err)
			}
			body = bytes.NewReader(buf)
		}
	}

	hreq, err := http.NewRequestWithContext(ctx, method, c.URL(req.Path, req.Query), body)
	if err != nil {
		return nil, fmt.Errorf("provider: build %s: %w", op, err)
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			hreq.Header.Add(k, v)
		}
	}
	hreq.Header.Set("apikey", c.apiKey)
	hreq.Header.Set("Accept", "application/json")
	if body != nil {
		hreq.Header.Set("Content-Type", "application/json")
	}
	bearer := req.Bearer
	if bearer == "" {
		bearer = c.apiKey
	}
	hreq.Header.Set("Authorization", "Bearer "+bearer)

	log := logger.From(ctx).With(logger.Component("provider"), logger.ProviderPath(req.Path), logger.Method(method))
	start := time.Now()
	resp, err := c.http.Do(hreq)
	metrics.ProviderDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ProviderRequests.WithLabelValues(method, "network").Inc()
		log.Warn("provider request failed", logger.Err(err), logger.DurationMs(time.Since(start)))
		return nil, newNetworkError(op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		metrics.ProviderRequests.WithLabelValues(method, "network").Inc()
		return nil, newNetworkError(op, err)
	}
	metrics.ProviderRequests.WithLabelValues(method, metrics.StatusClass(resp.StatusCode)).Inc()
	log.Debug("provider response", logger.ProviderStatus(resp.StatusCode), logger.DurationMs(time.Since(start)))

	if resp.StatusCode >= 400 {
		return nil, newProviderError(resp.StatusCode, raw)
	}
	return &Response{Status: resp.StatusCode, Header: resp.Header, Body: raw}, nil
}

// doJSON es Do + Decode en out (si out != nil).
func (c *Client) doJSON(ctx context.Context, req Request, out any) error {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return resp.Decode(out)
}
