package store

import "testing"

func TestLookupKeyOrderInsensitive(t *testing.T) {
	a := LookupKey("1.2.3.4", []string{"city", "zipcode"})
	b := LookupKey("1.2.3.4", []string{"zipcode", "city"})
	if a != b {
		t.Errorf("field order changed the key: %q vs %q", a, b)
	}
}

func TestLookupKeyCaseInsensitiveFields(t *testing.T) {
	a := LookupKey("1.2.3.4", []string{"ZipCode"})
	b := LookupKey("1.2.3.4", []string{"zipcode"})
	if a != b {
		t.Errorf("field case changed the key: %q vs %q", a, b)
	}
}

func TestLookupKeyDistinctShapes(t *testing.T) {
	keys := []string{
		LookupKey("1.2.3.4", nil),
		LookupKey("1.2.3.4", []string{"zipcode"}),
		LookupKey("1.2.3.4", []string{"city"}),
		LookupKey("5.6.7.8", nil),
		LookupKey("", nil),
	}
	seen := make(map[string]int)
	for i, k := range keys {
		if prev, ok := seen[k]; ok {
			t.Errorf("keys %d and %d collide: %q", prev, i, k)
		}
		seen[k] = i
	}
}

func TestLookupKeyPrefix(t *testing.T) {
	key := LookupKey("1.2.3.4", nil)
	if len(key) <= len("lookup:") || key[:len("lookup:")] != "lookup:" {
		t.Errorf("key = %q, want lookup: prefix", key)
	}
}

func TestHashStable(t *testing.T) {
	a := Hash([]byte("payload"))
	b := Hash([]byte("payload"))
	if a != b {
		t.Errorf("Hash not deterministic: %q vs %q", a, b)
	}
	if len(a) != 64 {
		t.Errorf("Hash length = %d, want 64", len(a))
	}
}
