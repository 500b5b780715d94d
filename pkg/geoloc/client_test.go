package geoloc

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Xavi-Linux/geoapy/pkg/apierr"
	"github.com/Xavi-Linux/geoapy/pkg/store"
)

// newTestClient points a client at a stub provider and counts the
// requests that reach it.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *int) {
	t.Helper()

	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client := NewClient(Config{
		Key:     "test-key",
		BaseURL: server.URL,
		Store:   store.NewMemoryStore(),
	})
	return client, &calls
}

func TestLookup(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("apiKey") != "test-key" {
			t.Errorf("apiKey = %q, want %q", q.Get("apiKey"), "test-key")
		}
		if q.Get("ip") != "8.8.8.8" {
			t.Errorf("ip = %q, want %q", q.Get("ip"), "8.8.8.8")
		}
		json.NewEncoder(w).Encode(map[string]any{
			"ip":           "8.8.8.8",
			"country_name": "United States",
			"latitude":     "37.75100",
			"is_eu":        false,
		})
	})

	resp, err := client.Lookup(context.Background(), "8.8.8.8", Options{})
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}

	if resp.IP() != "8.8.8.8" {
		t.Errorf("IP() = %q, want %q", resp.IP(), "8.8.8.8")
	}
	country, ok := resp.Value("country_name")
	if !ok || country != "United States" {
		t.Errorf("Value(country_name) = %v, %v", country, ok)
	}
	if resp.Cached() {
		t.Error("fresh lookup should not report cached")
	}
}

func TestLookupFieldFilter(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("fields"); got != "zipcode,latitude" {
			t.Errorf("fields param = %q, want %q", got, "zipcode,latitude")
		}
		// Provider-side filtering returns exactly the requested subset.
		json.NewEncoder(w).Encode(map[string]any{
			"zipcode":  "94035",
			"latitude": "37.38600",
		})
	})

	resp, err := client.Lookup(context.Background(), "8.8.8.8", Options{
		Fields: []string{"Zipcode", "LATITUDE"},
	})
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}

	got := resp.Fields()
	want := []string{"latitude", "zipcode"}
	if len(got) != len(want) {
		t.Fatalf("Fields() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Fields()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLookupExcludeFilter(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("excludes"); got != "currency,time_zone" {
			t.Errorf("excludes param = %q, want %q", got, "currency,time_zone")
		}
		json.NewEncoder(w).Encode(map[string]any{"ip": "8.8.8.8"})
	})

	_, err := client.Lookup(context.Background(), "8.8.8.8", Options{
		ExcludeFields: []string{"currency", "time_zone"},
	})
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
}

func TestLookupSelf(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("ip") {
			t.Error("self lookup should not carry an ip param")
		}
		json.NewEncoder(w).Encode(map[string]any{"ip": "203.0.113.7"})
	})

	resp, err := client.LookupSelf(context.Background(), Options{})
	if err != nil {
		t.Fatalf("LookupSelf() error: %v", err)
	}
	if resp.IP() != "203.0.113.7" {
		t.Errorf("IP() = %q, want %q", resp.IP(), "203.0.113.7")
	}
}

func TestLookupNoKey(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})

	_, err := client.Lookup(context.Background(), "8.8.8.8", Options{})
	if !apierr.Is(err, apierr.CodeKeyNotRegistered) {
		t.Errorf("error code = %v, want KEY_NOT_REGISTERED", apierr.GetCode(err))
	}
	if calls != 0 {
		t.Errorf("provider called %d times, want 0", calls)
	}
}

func TestLookupInvalidAddress(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := client.Lookup(context.Background(), "999.1.1.1", Options{})
	if !apierr.Is(err, apierr.CodeInvalidAddress) {
		t.Errorf("error code = %v, want INVALID_ADDRESS", apierr.GetCode(err))
	}
	if *calls != 0 {
		t.Errorf("provider called %d times, want 0", *calls)
	}
}

func TestLookupUnknownField(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := client.Lookup(context.Background(), "8.8.8.8", Options{
		Fields: []string{"postal_code"},
	})
	if !apierr.Is(err, apierr.CodeUnknownField) {
		t.Errorf("error code = %v, want UNKNOWN_FIELD", apierr.GetCode(err))
	}
	if *calls != 0 {
		t.Errorf("provider called %d times, want 0", *calls)
	}
}

func TestLookupProviderStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{
			name:    "bad key with provider message",
			status:  http.StatusUnauthorized,
			body:    `{"message":"Provided API key is not valid"}`,
			message: "Provided API key is not valid",
		},
		{
			name:    "rate limit without body",
			status:  http.StatusTooManyRequests,
			body:    ``,
			message: "the API usage limit has been reached for the subscription",
		},
		{
			name:    "bogon address",
			status:  http.StatusLocked,
			body:    ``,
			message: "the queried IP address is a bogon (bogus IP address from the bogon space)",
		},
		{
			name:    "undocumented status",
			status:  http.StatusTeapot,
			body:    ``,
			message: "unexpected response from provider",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := client.Lookup(context.Background(), "8.8.8.8", Options{})
			var se *apierr.StatusError
			if !errors.As(err, &se) {
				t.Fatalf("error = %v, want *apierr.StatusError", err)
			}
			if se.Status != tt.status {
				t.Errorf("Status = %d, want %d", se.Status, tt.status)
			}
			if se.Message != tt.message {
				t.Errorf("Message = %q, want %q", se.Message, tt.message)
			}
		})
	}
}

func TestLookupNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := NewClient(Config{Key: "test-key", BaseURL: server.URL})

	_, err := client.Lookup(context.Background(), "8.8.8.8", Options{})
	if !apierr.Is(err, apierr.CodeNetwork) {
		t.Errorf("error code = %v, want NETWORK_ERROR", apierr.GetCode(err))
	}
}

func TestLookupFromCache(t *testing.T) {
	ctx := context.Background()

	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"ip":      "123.123.123.123",
			"zipcode": "10115",
		})
	})

	opts := Options{Fields: []string{"ip", "zipcode"}}

	first, err := client.Lookup(ctx, "123.123.123.123", opts)
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	if err := first.Cache(ctx); err != nil {
		t.Fatalf("Cache() error: %v", err)
	}

	// Without FromCache a second lookup still hits the provider.
	if _, err := client.Lookup(ctx, "123.123.123.123", opts); err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	if *calls != 2 {
		t.Fatalf("provider called %d times, want 2", *calls)
	}

	// With FromCache the stored entry short-circuits the network call.
	opts.FromCache = true
	resp, err := client.Lookup(ctx, "123.123.123.123", opts)
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	if *calls != 2 {
		t.Errorf("provider called %d times, want 2", *calls)
	}
	if !resp.Cached() {
		t.Error("response should report cached")
	}
	if zip, _ := resp.Value("zipcode"); zip != "10115" {
		t.Errorf("Value(zipcode) = %v, want %q", zip, "10115")
	}
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(Config{Key: "k"})

	if client.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q, want %q", client.baseURL, DefaultBaseURL)
	}
	if client.http == nil {
		t.Error("http client should default")
	}
	if client.http.Timeout != httpTimeout {
		t.Errorf("Timeout = %v, want %v", client.http.Timeout, httpTimeout)
	}
	if client.Store() == nil {
		t.Error("store should default to a null store")
	}
}
