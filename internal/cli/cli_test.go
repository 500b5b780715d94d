package cli

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/Xavi-Linux/geoapy/pkg/geoloc"
)

func TestRootCommandStructure(t *testing.T) {
	c := New(&bytes.Buffer{}, log.InfoLevel)
	root := c.RootCommand()

	want := []string{"key", "lookup", "fields", "cache", "serve", "completion"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestRedactKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"abcdefghijklmnop", "abcd********mnop"},
		{"short", "*****"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := redactKey(tt.key); got != tt.want {
			t.Errorf("redactKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestTrimFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{37.386, "37.386"},
		{-122, "-122"},
		{0, "0"},
	}
	for _, tt := range tests {
		if got := trimFloat(tt.in); got != tt.want {
			t.Errorf("trimFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDisplayTarget(t *testing.T) {
	if got := displayTarget(""); got != "your address" {
		t.Errorf("displayTarget(\"\") = %q", got)
	}
	if got := displayTarget("8.8.8.8"); got != "8.8.8.8" {
		t.Errorf("displayTarget(8.8.8.8) = %q", got)
	}
}

func TestFieldDescriptionsCoverCatalog(t *testing.T) {
	catalog := geoloc.Fields()

	for _, name := range catalog {
		if _, ok := fieldDescriptions[name]; !ok {
			t.Errorf("catalog field %q has no description", name)
		}
	}
	for name := range fieldDescriptions {
		if !geoloc.ValidField(name) {
			t.Errorf("described field %q is not in the catalog", name)
		}
	}
	if len(fieldDescriptions) != len(catalog) {
		t.Errorf("len(fieldDescriptions) = %d, want %d", len(fieldDescriptions), len(catalog))
	}
}
