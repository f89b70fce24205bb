package executor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/yesoreyeram/thaiyyal/backend/pkg/security"
	"github.com/yesoreyeram/thaiyyal/backend/pkg/types"
)

// httpRequestConfig is the config shape for the httpRequest node kind.
// Headers arrives as a JSON-encoded string of string→string, not a nested
// object, matching how the flow document authors it.
type httpRequestConfig struct {
	URL     string `json:"url"`
	Method  string `json:"method"`
	Headers string `json:"headers"`
	Body    string `json:"body"`
}

// HTTPNode executes the httpRequest node kind: a single GET/POST/PUT/DELETE/
// PATCH call with a 30 second timeout, SSRF-guarded by the zero-trust
// network policy in types.Config.
type HTTPNode struct {
	mu     sync.RWMutex
	client *http.Client
}

// NewHTTPNode creates an httpRequest node executor with a shared,
// connection-pooled client.
func NewHTTPNode() *HTTPNode { return &HTTPNode{} }

func (n *HTTPNode) Kind() string { return "httpRequest" }

func (n *HTTPNode) Execute(ctx ExecutionContext, inputs map[string]types.Value, config json.RawMessage) (map[string]types.Value, error) {
	var cfg httpRequestConfig
	if len(config) > 0 {
		if err := json.Unmarshal(config, &cfg); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInputValue, err)
		}
	}
	if u, ok := inputs["url"]; ok {
		if s, ok := u.AsString(); ok && s != "" {
			cfg.URL = s
		}
	}
	if cfg.URL == "" {
		return nil, fmt.Errorf("%w: url", ErrMissingRequiredInput)
	}
	if !strings.HasPrefix(cfg.URL, "http://") && !strings.HasPrefix(cfg.URL, "https://") {
		return nil, fmt.Errorf("%w: url must start with http:// or https://", ErrInvalidURL)
	}

	method := strings.ToUpper(cfg.Method)
	if method == "" {
		method = http.MethodGet
	}
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch:
	default:
		return nil, fmt.Errorf("%w: unsupported method %q", ErrInvalidInputValue, method)
	}

	engineCfg := ctx.Config()
	if !engineCfg.AllowHTTP {
		return nil, fmt.Errorf("%w: HTTP requests are disabled (AllowHTTP=false)", ErrURLNotAllowed)
	}
	if err := validateURL(cfg.URL, engineCfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrURLNotAllowed, err)
	}

	var body io.Reader
	if cfg.Body != "" {
		body = bytes.NewBufferString(cfg.Body)
	} else if b, ok := inputs["body"]; ok {
		if s, ok := b.AsString(); ok {
			body = bytes.NewBufferString(s)
		}
	}

	req, err := http.NewRequestWithContext(ctx.Context(), method, cfg.URL, body)
	if err != nil {
		return nil, fmt.Errorf("http error: %v", err)
	}
	if cfg.Headers != "" {
		var headers map[string]string
		if err := json.Unmarshal([]byte(cfg.Headers), &headers); err == nil {
			for k, v := range headers {
				req.Header.Set(k, v)
			}
		}
	}

	resp, err := n.client2(engineCfg).Do(req)
	if err != nil {
		return nil, fmt.Errorf("http error: %v", err)
	}
	defer resp.Body.Close()

	limited := io.LimitReader(resp.Body, engineCfg.MaxResponseSize)
	respBody, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("http error: failed to read response body: %v", err)
	}

	return map[string]types.Value{
		"response": types.String(string(respBody)),
		"status":   types.Number(float64(resp.StatusCode)),
	}, nil
}

func (n *HTTPNode) client2(cfg types.Config) *http.Client {
	n.mu.RLock()
	if n.client != nil {
		defer n.mu.RUnlock()
		return n.client
	}
	n.mu.RUnlock()

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.client != nil {
		return n.client
	}

	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	n.client = &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if cfg.MaxHTTPRedirects > 0 && len(via) >= cfg.MaxHTTPRedirects {
				return fmt.Errorf("too many redirects (max %d)", cfg.MaxHTTPRedirects)
			}
			return validateURL(req.URL.String(), cfg)
		},
	}
	return n.client
}

// validateURL enforces the zero-trust network policy: every block flag in
// types.Config is phrased as an Allow*, SSRFConfig wants Block*, so they are
// inverted here.
func validateURL(rawURL string, cfg types.Config) error {
	ssrfCfg := security.SSRFConfig{
		AllowedSchemes:     []string{"http", "https"},
		BlockPrivateIPs:    !cfg.AllowPrivateIPs,
		BlockLocalhost:     !cfg.AllowLocalhost,
		BlockLinkLocal:     !cfg.AllowLinkLocal,
		BlockCloudMetadata: !cfg.AllowCloudMetadata,
		AllowedDomains:     cfg.AllowedDomains,
	}
	return security.NewSSRFProtectionWithConfig(ssrfCfg).ValidateURL(rawURL)
}
