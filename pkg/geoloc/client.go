package geoloc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/Xavi-Linux/geoapy/pkg/apierr"
	"github.com/Xavi-Linux/geoapy/pkg/store"
)

// DefaultBaseURL is the provider's lookup endpoint.
const DefaultBaseURL = "https://api.ipgeolocation.io/ipgeo"

// httpTimeout is the default timeout for provider requests.
const httpTimeout = 10 * time.Second

// Config holds the settings for a Client.
type Config struct {
	// Key is the ipgeolocation.io API key. An empty key is allowed at
	// construction time but fails every lookup with KEY_NOT_REGISTERED
	// before any network call.
	Key string

	// BaseURL overrides the provider endpoint. Defaults to DefaultBaseURL.
	BaseURL string

	// HTTPClient overrides the transport. Defaults to a client with a
	// 10s timeout. No retries are performed at any layer.
	HTTPClient *http.Client

	// Store receives persisted lookup results. Defaults to a NullStore.
	Store store.Store

	// Logger receives debug-level request logs. Defaults to log.Default().
	Logger *log.Logger
}

// Client performs lookups against the ipgeolocation.io API.
// Each lookup is a single blocking round trip; errors propagate to the
// caller unretried and unmasked.
type Client struct {
	key     string
	baseURL string
	http    *http.Client
	store   store.Store
	logger  *log.Logger
}

// NewClient creates a Client from cfg, applying defaults for every
// unset optional field.
func NewClient(cfg Config) *Client {
	c := &Client{
		key:     cfg.Key,
		baseURL: cfg.BaseURL,
		http:    cfg.HTTPClient,
		store:   cfg.Store,
		logger:  cfg.Logger,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: httpTimeout}
	}
	if c.store == nil {
		c.store = store.NewNullStore()
	}
	if c.logger == nil {
		c.logger = log.Default()
	}
	return c
}

// Store returns the store backend attached to this client.
func (c *Client) Store() store.Store {
	return c.store
}

// Options control a single lookup.
type Options struct {
	// Fields restricts the returned mapping to exactly these catalog
	// fields (provider-side filtering). Nil returns the full field set.
	Fields []string

	// ExcludeFields removes these catalog fields from the returned
	// mapping (provider-side filtering).
	ExcludeFields []string

	// FromCache consults the store before issuing a network call and
	// short-circuits on a hit. Off by default; persistence is otherwise
	// write-only via Response.Cache.
	FromCache bool
}

// Lookup resolves geolocation data for ip. An empty ip queries the
// caller's own public address; any other value must be a valid
// dotted-quad IPv4 string.
//
// Validation failures, a missing key, transport errors, and
// non-success provider statuses all surface as typed errors; see
// [github.com/Xavi-Linux/geoapy/pkg/apierr].
func (c *Client) Lookup(ctx context.Context, ip string, opts Options) (*Response, error) {
	if c.key == "" {
		return nil, apierr.New(apierr.CodeKeyNotRegistered, "no API key registered")
	}
	if ip != "" {
		if err := ValidateIPv4(ip); err != nil {
			return nil, err
		}
	}

	include, err := normalizeFields(opts.Fields)
	if err != nil {
		return nil, err
	}
	exclude, err := normalizeFields(opts.ExcludeFields)
	if err != nil {
		return nil, err
	}

	if opts.FromCache {
		if resp, ok, err := FromCache(ctx, c.store, ip, include); err != nil {
			return nil, err
		} else if ok {
			c.logger.Debug("lookup served from cache", "ip", ip)
			return resp, nil
		}
	}

	q := url.Values{}
	q.Set("apiKey", c.key)
	if ip != "" {
		q.Set("ip", ip)
	}
	if len(include) > 0 {
		q.Set("fields", strings.Join(include, ","))
	}
	if len(exclude) > 0 {
		q.Set("excludes", strings.Join(exclude, ","))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, apierr.Wrap(apierr.CodeInternal, err, "build request")
	}

	reqID := uuid.NewString()
	c.logger.Debug("lookup request", "id", reqID, "ip", ip, "fields", include, "excludes", exclude)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apierr.Wrap(apierr.CodeNetwork, err, "lookup %s", displayIP(ip))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, apierr.Wrap(apierr.CodeInternal, err, "decode provider response")
	}

	c.logger.Debug("lookup response", "id", reqID, "ip", ip,
		"fields", len(raw), "duration", time.Since(start).Round(time.Millisecond))

	return newResponse(raw, ip, include, c.store), nil
}

// LookupSelf resolves geolocation data for the caller's own public
// address, as seen by the provider.
func (c *Client) LookupSelf(ctx context.Context, opts Options) (*Response, error) {
	return c.Lookup(ctx, "", opts)
}

// statusMessages carries the provider's documented explanation for each
// distinguished non-success status.
var statusMessages = map[int]string{
	http.StatusUnauthorized:    "missing, invalid, or unverified API key, or the subscription does not permit this request",
	http.StatusForbidden:       "IP to geolocation lookup for a domain name requires a paid subscription",
	http.StatusNotFound:        "the queried IP address or domain name was not found in the provider's database",
	http.StatusLocked:          "the queried IP address is a bogon (bogus IP address from the bogon space)",
	http.StatusTooManyRequests: "the API usage limit has been reached for the subscription",
}

// statusError maps a non-success provider response to a StatusError.
// The provider's own error payload message takes precedence over the
// documented per-status text when present.
func statusError(resp *http.Response) error {
	msg := statusMessages[resp.StatusCode]
	if msg == "" {
		msg = "unexpected response from provider"
	}

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Message != "" {
		msg = payload.Message
	}

	return &apierr.StatusError{Status: resp.StatusCode, Message: msg}
}

func displayIP(ip string) string {
	if ip == "" {
		return "self"
	}
	return ip
}
