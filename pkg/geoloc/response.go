package geoloc

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/Xavi-Linux/geoapy/pkg/apierr"
	"github.com/Xavi-Linux/geoapy/pkg/store"
)

// Response wraps a successful lookup result. It exposes the returned
// mapping both by key (Value) and as a typed record (Record), and can
// persist itself to the store it was looked up through (Cache).
//
// A Response is immutable once constructed and owned solely by the
// caller that received it.
type Response struct {
	raw    map[string]json.RawMessage
	ip     string   // the address the lookup was issued for; "" for a self lookup
	fields []string // normalized filter shape; nil when unfiltered
	store  store.Store
	cached bool // true when reconstructed from the store
}

func newResponse(raw map[string]json.RawMessage, ip string, fields []string, s store.Store) *Response {
	if s == nil {
		s = store.NewNullStore()
	}
	return &Response{raw: raw, ip: ip, fields: fields, store: s}
}

// Value returns the decoded value for field and whether the provider
// returned it. Scalar fields decode to string/float64/bool; currency
// and time_zone decode to map[string]any.
func (r *Response) Value(field string) (any, bool) {
	raw, ok := r.raw[field]
	if !ok {
		return nil, false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, false
	}
	return v, true
}

// RawValue returns the raw JSON for field and whether the provider
// returned it.
func (r *Response) RawValue(field string) (json.RawMessage, bool) {
	raw, ok := r.raw[field]
	return raw, ok
}

// Fields returns the sorted list of fields present in the response.
// For a filtered lookup these are exactly the requested fields.
func (r *Response) Fields() []string {
	out := make([]string, 0, len(r.raw))
	for f := range r.raw {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of fields in the response.
func (r *Response) Len() int {
	return len(r.raw)
}

// Cached reports whether this response was served from the store
// rather than a network call.
func (r *Response) Cached() bool {
	return r.cached
}

// IP returns the address this response describes: the "ip" field of
// the payload when present, otherwise the address the lookup was
// issued for.
func (r *Response) IP() string {
	var ip string
	if raw, ok := r.raw["ip"]; ok {
		if json.Unmarshal(raw, &ip) == nil && ip != "" {
			return ip
		}
	}
	return r.ip
}

// Record decodes the response into the typed Record. Fields absent
// from a filtered response are left at their zero values.
func (r *Response) Record() (*Record, error) {
	data, err := json.Marshal(r.raw)
	if err != nil {
		return nil, apierr.Wrap(apierr.CodeInternal, err, "encode response")
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, apierr.Wrap(apierr.CodeInternal, err, "decode record")
	}
	return &rec, nil
}

// Cache persists the wrapped mapping to the response's store, keyed by
// the originating IP and filter shape. This is a manual, caller-
// triggered operation; lookups do not consult the cache unless asked
// to via Options.FromCache.
func (r *Response) Cache(ctx context.Context) error {
	data, err := json.Marshal(r.raw)
	if err != nil {
		return apierr.Wrap(apierr.CodeInternal, err, "encode response")
	}
	return r.store.Set(ctx, r.cacheKey(), data, 0)
}

// Uncache removes the persisted entry for this response, if any.
func (r *Response) Uncache(ctx context.Context) error {
	return r.store.Delete(ctx, r.cacheKey())
}

func (r *Response) cacheKey() string {
	ip := r.ip
	if ip == "" {
		ip = r.IP()
	}
	return store.LookupKey(ip, r.fields)
}

// MarshalJSON encodes the wrapped mapping.
func (r *Response) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.raw)
}

// String renders the wrapped mapping as compact JSON.
func (r *Response) String() string {
	data, err := json.Marshal(r.raw)
	if err != nil {
		return ""
	}
	return string(data)
}

// FromCache reconstructs a Response previously persisted with Cache,
// looked up by IP and filter shape. Returns ok=false when no entry
// exists for that combination.
func FromCache(ctx context.Context, s store.Store, ip string, fields []string) (*Response, bool, error) {
	data, ok, err := s.Get(ctx, store.LookupKey(ip, fields))
	if err != nil || !ok {
		return nil, false, err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		// Corrupt entry - drop it and report a miss.
		_ = s.Delete(ctx, store.LookupKey(ip, fields))
		return nil, false, nil
	}
	var norm []string
	if len(fields) > 0 {
		norm, err = normalizeFields(fields)
		if err != nil {
			return nil, false, err
		}
	}
	resp := newResponse(raw, ip, norm, s)
	resp.cached = true
	return resp, true, nil
}
