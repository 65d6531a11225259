// Package actions manages the named system-prompt profiles ("actions") that
// select the assistant's instructions for a request. Definitions load from a
// JSON configuration file and degrade to a built-in default set whenever the
// file is missing or invalid; the registry is never left without a usable
// "default" prompt.
package actions

import (
	"encoding/json"
	"errors"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// suggestThreshold is the maximum edit distance for near-match suggestions.
const suggestThreshold = 2

// Metadata describes an action beyond its instruction text.
type Metadata struct {
	Name        string `json:"name"`
	MaxLength   string `json:"max_length,omitempty"`
	Format      string `json:"format"`
	Description string `json:"description"`
}

type configEntry struct {
	Name        string `json:"name"`
	Instruction string `json:"instruction"`
	MaxLength   string `json:"max_length,omitempty"`
	Format      string `json:"format,omitempty"`
	Description string `json:"description,omitempty"`
}

type defaultSettings struct {
	Language          string `json:"language"`
	Tone              string `json:"tone"`
	Domain            string `json:"domain"`
	MedicalDisclaimer string `json:"medical_disclaimer"`
	CreatedAt         string `json:"created_at"`
	Version           string `json:"version"`
}

type configFile struct {
	ResponseModes   map[string]configEntry `json:"response_modes"`
	DefaultSettings *defaultSettings       `json:"default_settings,omitempty"`
}

// Stats summarizes the registry state for introspection endpoints.
type Stats struct {
	TotalActions int            `json:"total_actions"`
	Categories   map[string]int `json:"categories"`
	LastReload   string         `json:"last_reload,omitempty"`
	ConfigFile   string         `json:"config_file"`
	ConfigExists bool           `json:"config_exists"`
}

// Registry owns the action set for the process lifetime. All methods are safe
// for concurrent use.
type Registry struct {
	mu           sync.Mutex
	path         string
	logger       *zap.Logger
	actions      map[string]string
	metadata     map[string]Metadata
	lastModified time.Time
	loaded       bool
}

// New constructs a registry backed by the JSON file at path and performs the
// initial load. Load failures degrade to the built-in defaults.
func New(path string, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Registry{
		path:     path,
		logger:   logger.Named("actions"),
		actions:  make(map[string]string),
		metadata: make(map[string]Metadata),
	}

	r.mu.Lock()
	r.reloadLocked()
	r.mu.Unlock()

	return r
}

// reloadLocked revalidates the backing file and reloads it when its
// modification time has advanced since the last successful load. Any failure
// falls back to the default set. Callers must hold r.mu.
func (r *Registry) reloadLocked() {
	info, err := os.Stat(r.path)
	if err != nil {
		if r.loaded {
			// the file disappeared after a successful load; keep serving
			// the current set rather than thrash
			return
		}
		r.logger.Warn("actions config not found", zap.String("path", r.path), zap.Error(err))
		r.loadDefaultsLocked()
		r.writeDefaultConfig()
		// the written template must not clobber the in-memory defaults on
		// the next call; reload again only when an operator edits it
		if written, serr := os.Stat(r.path); serr == nil {
			r.lastModified = written.ModTime()
			r.loaded = true
		}
		return
	}

	if r.loaded && !info.ModTime().After(r.lastModified) {
		return
	}

	raw, err := os.ReadFile(r.path)
	if err != nil {
		r.logger.Error("actions config unreadable", zap.String("path", r.path), zap.Error(err))
		r.fallBackLocked(info)
		return
	}

	var cfg configFile
	if err := json.Unmarshal(raw, &cfg); err != nil {
		r.logger.Error("actions config is not valid JSON", zap.String("path", r.path), zap.Error(err))
		r.fallBackLocked(info)
		return
	}

	if err := validateConfig(cfg); err != nil {
		r.logger.Error("actions config failed validation, using defaults", zap.Error(err))
		r.fallBackLocked(info)
		return
	}

	actions := make(map[string]string, len(cfg.ResponseModes))
	metadata := make(map[string]Metadata, len(cfg.ResponseModes))
	for key, entry := range cfg.ResponseModes {
		actions[key] = entry.Instruction
		name := entry.Name
		if name == "" {
			name = key
		}
		format := entry.Format
		if format == "" {
			format = "conversational"
		}
		metadata[key] = Metadata{
			Name:        name,
			MaxLength:   entry.MaxLength,
			Format:      format,
			Description: entry.Description,
		}
	}

	// the default action must survive any load
	if _, ok := actions["default"]; !ok {
		actions["default"] = defaultActions()["default"]
		metadata["default"] = Metadata{Name: "Default", Format: "conversational"}
	}

	r.actions = actions
	r.metadata = metadata
	r.lastModified = info.ModTime()
	r.loaded = true

	r.logger.Info("actions loaded",
		zap.String("path", r.path),
		zap.Int("count", len(r.actions)),
	)
}

func validateConfig(cfg configFile) error {
	if cfg.ResponseModes == nil {
		return errors.New("missing 'response_modes'")
	}
	for key, entry := range cfg.ResponseModes {
		if entry.Name == "" {
			return errors.New("action '" + key + "' is missing required field: name")
		}
		if entry.Instruction == "" {
			return errors.New("action '" + key + "' is missing required field: instruction")
		}
	}
	return nil
}

// fallBackLocked installs the default set and pins the failed file's mtime so
// the broken config is not re-parsed on every request. Callers must hold r.mu.
func (r *Registry) fallBackLocked(info os.FileInfo) {
	r.loadDefaultsLocked()
	r.lastModified = info.ModTime()
	r.loaded = true
}

func (r *Registry) loadDefaultsLocked() {
	r.actions = defaultActions()
	r.metadata = make(map[string]Metadata, len(r.actions))
	for key := range r.actions {
		r.metadata[key] = Metadata{
			Name:   titleCase(key),
			Format: "conversational",
		}
	}
	r.logger.Info("default actions loaded", zap.Int("count", len(r.actions)))
}

// writeDefaultConfig persists a generated default configuration so operators
// have a template to edit. Failure to write is logged, not fatal.
func (r *Registry) writeDefaultConfig() {
	raw, err := json.MarshalIndent(generateDefaultConfig(), "", "  ")
	if err != nil {
		r.logger.Error("marshal default actions config", zap.Error(err))
		return
	}
	if err := os.WriteFile(r.path, raw, 0o644); err != nil {
		r.logger.Error("could not create default actions config",
			zap.String("path", r.path),
			zap.Error(err),
		)
		return
	}
	r.logger.Info("default actions config created", zap.String("path", r.path))
}

// SystemPrompt returns the instruction for the given action, falling back to
// the "default" action when the identifier is unknown. Near-matches within
// edit distance 2 are logged as suggestions only; they are never substituted
// for the answer.
func (r *Registry) SystemPrompt(action string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reloadLocked()

	if prompt, ok := r.actions[action]; ok {
		return prompt
	}

	if similar := r.similarLocked(action); len(similar) > 0 {
		r.logger.Warn("unknown action, similar actions exist",
			zap.String("action", action),
			zap.Strings("similar", similar),
		)
	} else {
		r.logger.Warn("unknown action, using default",
			zap.String("action", action),
		)
	}

	if prompt, ok := r.actions["default"]; ok {
		return prompt
	}
	return fallbackInstruction
}

// similarLocked returns known identifiers within the edit-distance threshold
// of action, case-insensitively. Callers must hold r.mu.
func (r *Registry) similarLocked(action string) []string {
	lower := strings.ToLower(action)

	var similar []string
	for existing := range r.actions {
		if levenshteinDistance(lower, strings.ToLower(existing)) <= suggestThreshold {
			similar = append(similar, existing)
		}
	}
	sort.Strings(similar)
	return similar
}

// Metadata returns the structured metadata for an action.
func (r *Registry) Metadata(action string) (Metadata, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reloadLocked()

	meta, ok := r.metadata[action]
	return meta, ok
}

// All returns a copy of the identifier-to-instruction mapping.
func (r *Registry) All() map[string]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reloadLocked()

	out := make(map[string]string, len(r.actions))
	for k, v := range r.actions {
		out[k] = v
	}
	return out
}

// Exists reports whether an action is known.
func (r *Registry) Exists(action string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reloadLocked()

	_, ok := r.actions[action]
	return ok
}

// Description returns a human-readable description for an action, preferring
// metadata over the built-in defaults.
func (r *Registry) Description(action string) string {
	if meta, ok := r.Metadata(action); ok && meta.Description != "" {
		return meta.Description
	}
	if desc, ok := defaultDescriptions[action]; ok {
		return desc
	}
	return "Custom action: " + action
}

// AddCustom inserts or overwrites an action in memory only; it is not
// persisted to the configuration file.
func (r *Registry) AddCustom(action, instruction string, meta *Metadata) error {
	if action == "" {
		return errors.New("action identifier is empty")
	}
	if instruction == "" {
		return errors.New("instruction is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.actions[action] = instruction
	if meta != nil {
		r.metadata[action] = *meta
	} else {
		r.metadata[action] = Metadata{
			Name:        titleCase(action),
			Format:      "conversational",
			Description: "Custom action added dynamically",
		}
	}

	r.logger.Info("custom action added", zap.String("action", action))
	return nil
}

// Categories partitions known identifiers into fixed categories by substring
// match, evaluated in priority order. Empty categories are omitted.
func (r *Registry) Categories() map[string][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reloadLocked()

	categories := map[string][]string{}
	for action := range r.actions {
		cat := categorize(action)
		categories[cat] = append(categories[cat], action)
	}
	for _, list := range categories {
		sort.Strings(list)
	}
	return categories
}

func categorize(action string) string {
	switch {
	case strings.Contains(action, "translate"):
		return "Translation"
	case containsAny(action, "analysis", "pdf", "image"):
		return "Analysis"
	case containsAny(action, "short", "long", "resume"):
		return "Communication"
	case containsAny(action, "dental", "diagnosis", "treatment", "appointment"):
		return "Medical"
	default:
		return "General"
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Stats reports registry-level statistics.
func (r *Registry) Stats() Stats {
	counts := map[string]int{}
	for cat, list := range r.Categories() {
		counts[cat] = len(list)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	st := Stats{
		TotalActions: len(r.actions),
		Categories:   counts,
		ConfigFile:   r.path,
	}
	if r.loaded {
		st.LastReload = r.lastModified.Format(time.RFC3339)
	}
	if _, err := os.Stat(r.path); err == nil {
		st.ConfigExists = true
	}
	return st
}

// titleCase capitalizes each underscore- or space-separated word.
func titleCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == ' '
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
