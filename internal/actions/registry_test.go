package actions

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "actions.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestRegistryLoadsValidConfig(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `{
		"response_modes": {
			"default": {"name": "Default", "instruction": "be helpful"},
			"short": {"name": "Short", "instruction": "be brief", "format": "terse"}
		}
	}`)

	r := New(path, zap.NewNop())

	if got := r.SystemPrompt("short"); got != "be brief" {
		t.Fatalf("SystemPrompt(short) = %q", got)
	}
	meta, ok := r.Metadata("short")
	if !ok {
		t.Fatalf("expected metadata for short")
	}
	if meta.Format != "terse" {
		t.Fatalf("unexpected format: %q", meta.Format)
	}
	// format defaults to conversational when unset
	meta, _ = r.Metadata("default")
	if meta.Format != "conversational" {
		t.Fatalf("expected conversational default format, got %q", meta.Format)
	}
}

func TestRegistryFallsBackOnMalformedConfig(t *testing.T) {
	// instruction field missing fails schema validation
	path := writeConfig(t, t.TempDir(), `{
		"response_modes": {
			"default": {"name": "Default"}
		}
	}`)

	r := New(path, zap.NewNop())

	if got := r.SystemPrompt("default"); got == "" {
		t.Fatalf("expected non-empty default prompt after fallback")
	}
	if !r.Exists("dental_diagnosis") {
		t.Fatalf("expected built-in defaults to be loaded")
	}
}

func TestRegistryFallsBackOnInvalidJSON(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `{not json`)

	r := New(path, zap.NewNop())

	if got := r.SystemPrompt("default"); got == "" {
		t.Fatalf("expected non-empty default prompt after fallback")
	}
}

func TestRegistryCreatesDefaultConfigWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "actions.json")

	r := New(path, zap.NewNop())

	if got := r.SystemPrompt("default"); got == "" {
		t.Fatalf("expected non-empty default prompt")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected default config to be written: %v", err)
	}
	var cfg configFile
	if err := json.Unmarshal(raw, &cfg); err != nil {
		t.Fatalf("generated config is not valid JSON: %v", err)
	}
	if _, ok := cfg.ResponseModes["default"]; !ok {
		t.Fatalf("generated config is missing the default mode")
	}
}

func TestRegistryFuzzySuggestionDoesNotRedirect(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `{
		"response_modes": {
			"default": {"name": "Default", "instruction": "default instruction"},
			"short": {"name": "Short", "instruction": "short instruction"}
		}
	}`)

	r := New(path, zap.NewNop())

	// "shrot" is distance 2 from "short": suggested in logs, never substituted
	if got := r.SystemPrompt("shrot"); got != "default instruction" {
		t.Fatalf("near-match must not redirect; got %q", got)
	}
	// "defualt" is distance 2 from "default"
	if got := r.SystemPrompt("defualt"); got != "default instruction" {
		t.Fatalf("near-match must not redirect; got %q", got)
	}
}

func TestRegistrySimilarActions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "actions.json")
	r := New(path, zap.NewNop())

	r.mu.Lock()
	similar := r.similarLocked("defualt")
	r.mu.Unlock()

	if len(similar) != 1 || similar[0] != "default" {
		t.Fatalf("expected [default], got %v", similar)
	}
}

func TestRegistryReloadOnModTimeAdvance(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `{
		"response_modes": {
			"default": {"name": "Default", "instruction": "v1"}
		}
	}`)

	r := New(path, zap.NewNop())
	if got := r.SystemPrompt("default"); got != "v1" {
		t.Fatalf("expected v1, got %q", got)
	}

	writeConfig(t, dir, `{
		"response_modes": {
			"default": {"name": "Default", "instruction": "v2"}
		}
	}`)
	// force the mtime forward; some filesystems have coarse resolution
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	if got := r.SystemPrompt("default"); got != "v2" {
		t.Fatalf("expected reload to pick up v2, got %q", got)
	}
}

func TestRegistryAllReturnsCopy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "actions.json")
	r := New(path, zap.NewNop())

	all := r.All()
	all["default"] = "mutated"

	if got := r.SystemPrompt("default"); got == "mutated" {
		t.Fatalf("All must return a copy, internal state was mutated")
	}
}

func TestRegistryAddCustom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "actions.json")
	r := New(path, zap.NewNop())

	if err := r.AddCustom("ortho_review", "Review orthodontic cases.", nil); err != nil {
		t.Fatalf("AddCustom: %v", err)
	}
	if !r.Exists("ortho_review") {
		t.Fatalf("expected custom action to exist")
	}
	if err := r.AddCustom("", "x", nil); err == nil {
		t.Fatalf("expected error for empty identifier")
	}
}

func TestRegistryCategories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "actions.json")
	r := New(path, zap.NewNop())

	cats := r.Categories()

	expect := map[string][]string{
		"Translation":   {"translate_en", "translate_fr"},
		"Communication": {"long", "resume", "short"},
	}
	for cat, want := range expect {
		got := cats[cat]
		if len(got) != len(want) {
			t.Fatalf("category %s: got %v, want %v", cat, got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("category %s: got %v, want %v", cat, got, want)
			}
		}
	}
	if len(cats["Medical"]) == 0 {
		t.Fatalf("expected medical actions in defaults")
	}
	// defaults have no empty categories in the result
	for cat, list := range cats {
		if len(list) == 0 {
			t.Fatalf("category %s is empty but present", cat)
		}
	}
}

func TestLevenshteinDistance(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"default", "default", 0},
		{"defualt", "default", 2},
		{"shrot", "short", 2},
		{"kitten", "sitting", 3},
	}
	for _, tc := range cases {
		if got := levenshteinDistance(tc.a, tc.b); got != tc.want {
			t.Fatalf("levenshteinDistance(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}
