package tips

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"calmcast/internal/logger"

	"github.com/fsnotify/fsnotify"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// bankFile maps the YAML override of the static tip bank.
type bankFile struct {
	Phrases   map[string]string `yaml:"phrases" json:"phrases"`
	Actions   []string          `yaml:"actions" json:"actions"`
	Durations []string          `yaml:"durations" json:"durations"`
	Limit     int               `yaml:"limit" json:"limit"`
}

// BankSnapshot is one immutable expansion of the bank. Readers get
// the whole snapshot; reloads swap it wholesale.
type BankSnapshot struct {
	Version  int64     `json:"version"`
	LoadedAt time.Time `json:"loaded_at"`
	Tips     []string  `json:"tips"`
}

const bankSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["phrases", "actions", "durations"],
  "properties": {
    "phrases": {
      "type": "object",
      "required": ["high", "moderate", "low"],
      "additionalProperties": {"type": "string"}
    },
    "actions": {"type": "array", "minItems": 1, "items": {"type": "string"}},
    "durations": {"type": "array", "minItems": 1, "items": {"type": "string"}},
    "limit": {"type": "integer", "minimum": 1}
  }
}`

var bankLevels = []string{"high", "moderate", "low"}

// defaultBank is the compiled-in bank used when no override file is
// configured.
var defaultBank = bankFile{
	Phrases: map[string]string{
		"high":     "Your anxiety is high—try {action} for {duration}.",
		"moderate": "You seem moderately anxious; consider {action} to reset for {duration}.",
		"low":      "You're doing well; maintain momentum with {action} for {duration}.",
	},
	Actions: []string{
		"a 5-minute breathing exercise",
		"journaling for 5 minutes",
		"a short walk outside",
		"a quick body scan",
		"connecting with a friend",
		"limiting screen time for a bit",
		"drinking a full glass of water and pausing",
		"setting a small achievable goal",
		"doing the box breath (4-4-4-4)",
		"reflecting on one positive thing from today",
	},
	Durations: []string{
		"5 minutes",
		"10 minutes",
		"a short moment",
		"a mindful pause",
		"a brief break",
	},
	Limit: 200,
}

// Registry serves the static tip bank read-only, reloading an
// optional YAML override on file change.
type Registry struct {
	path    string
	watcher *fsnotify.Watcher

	mu       sync.RWMutex
	snapshot BankSnapshot
}

// NewRegistry builds the registry. An empty path means compiled-in
// defaults only, no watcher.
func NewRegistry(path string) (*Registry, error) {
	r := &Registry{path: strings.TrimSpace(path)}
	if err := r.reload(); err != nil {
		return nil, err
	}
	if r.path == "" {
		return r, nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("starting tip bank watcher failed: %w", err)
	}
	if err := watcher.Add(filepath.Dir(r.path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching tip bank directory failed: %w", err)
	}
	r.watcher = watcher
	go r.watch()
	return r, nil
}

// Snapshot returns the current bank.
func (r *Registry) Snapshot() BankSnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snap := r.snapshot
	snap.Tips = append([]string(nil), r.snapshot.Tips...)
	return snap
}

// Close stops the watcher.
func (r *Registry) Close() error {
	if r.watcher == nil {
		return nil
	}
	return r.watcher.Close()
}

func (r *Registry) watch() {
	for {
		select {
		case evt, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(evt.Name) != filepath.Clean(r.path) {
				continue
			}
			if !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Create) {
				continue
			}
			if err := r.reload(); err != nil {
				logger.Errorf("tip bank reload failed, keeping previous snapshot: %v", err)
				continue
			}
			logger.Infof("tip bank reloaded from %s", filepath.Base(r.path))
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			logger.Errorf("tip bank watcher error: %v", err)
		}
	}
}

func (r *Registry) reload() error {
	bank := defaultBank
	if r.path != "" {
		loaded, err := readBankFile(r.path)
		if err != nil {
			return err
		}
		bank = loaded
	}
	tips := expandBank(bank)
	r.mu.Lock()
	r.snapshot = BankSnapshot{
		Version:  r.snapshot.Version + 1,
		LoadedAt: time.Now(),
		Tips:     tips,
	}
	r.mu.Unlock()
	return nil
}

func readBankFile(path string) (bankFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return bankFile{}, fmt.Errorf("reading tip bank failed: %w", err)
	}
	var bank bankFile
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&bank); err != nil {
		return bankFile{}, fmt.Errorf("parsing tip bank failed: %w", err)
	}
	if err := validateBank(bank); err != nil {
		return bankFile{}, err
	}
	return bank, nil
}

// validateBank runs the JSON schema over the decoded file so an
// override with missing levels or empty lists is refused before it
// replaces the snapshot.
func validateBank(bank bankFile) error {
	raw, err := json.Marshal(bank)
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("bank.json", bytes.NewReader([]byte(bankSchema))); err != nil {
		return err
	}
	schema, err := compiler.Compile("bank.json")
	if err != nil {
		return err
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("tip bank fails schema validation: %w", err)
	}
	for _, level := range bankLevels {
		phrase := bank.Phrases[level]
		if !strings.Contains(phrase, "{action}") {
			return fmt.Errorf("tip bank phrase %q must contain {action}", level)
		}
	}
	return nil
}

// expandBank renders level × action × duration into the flat tip
// list, deduplicated in order and capped by the limit.
func expandBank(bank bankFile) []string {
	limit := bank.Limit
	if limit <= 0 {
		limit = defaultBank.Limit
	}
	seen := make(map[string]struct{})
	var tips []string
	for _, level := range bankLevels {
		phrase := bank.Phrases[level]
		for _, action := range bank.Actions {
			for _, duration := range bank.Durations {
				tip := strings.ReplaceAll(phrase, "{action}", action)
				tip = strings.ReplaceAll(tip, "{duration}", duration)
				if _, dup := seen[tip]; dup {
					continue
				}
				seen[tip] = struct{}{}
				tips = append(tips, tip)
				if len(tips) >= limit {
					return tips
				}
			}
		}
	}
	return tips
}
