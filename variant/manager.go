// Copyright (c) 2026 Kyradjis
// released under the MIT license

package variant

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"code.cloudfoundry.org/bytefmt"

	"github.com/kyradjis/bluelib/logger"
	"github.com/kyradjis/bluelib/utils"
)

const (
	logType        = "bluelib.variant"
	variantFileExt = ".json"
)

// variantFile is the on-disk shape of one entity's variant file.
type variantFile struct {
	Variants []map[string]any `json:"variants"`
}

// registry is one immutable snapshot of all loaded variants, keyed by
// casefolded entity type name.
type registry struct {
	variants map[string][]*Variant
}

// Manager owns the variant registry for a process. Sources are scanned in
// order, so a later directory (a data pack) overrides an earlier one (the
// built-in resources) per variant name.
type Manager struct {
	sources []string
	logger  *logger.Manager
	store   utils.ConfigStore[registry]
}

// NewManager scans the given source directories and returns a manager
// holding the loaded registry. A source directory that cannot be read makes
// the initial load fail; once running, Reload degrades instead.
func NewManager(sources []string, lm *logger.Manager) (*Manager, error) {
	if lm == nil {
		lm = logger.NewDefault(logger.LogInfo)
	}
	m := &Manager{
		sources: sources,
		logger:  lm,
	}
	reg, err := m.load(true)
	if err != nil {
		return nil, err
	}
	m.store.Set(reg)
	return m, nil
}

// Reload rebuilds the registry from the source directories and swaps it in
// atomically. Unreadable directories and malformed files are logged and
// skipped; readers keep the previous snapshot until the swap.
func (m *Manager) Reload() error {
	reg, err := m.load(false)
	if err != nil {
		return err
	}
	m.store.Set(reg)
	m.logger.Info(logType, "variant registry reloaded", fmt.Sprintf("%d entity types", len(reg.variants)))
	return nil
}

func (m *Manager) load(strict bool) (*registry, error) {
	// entity -> variant name -> merged data
	merged := make(map[string]map[string]map[string]any)

	for _, source := range m.sources {
		entries, err := os.ReadDir(source)
		if err != nil {
			if strict {
				return nil, fmt.Errorf("cannot read variant source %s: %w", source, err)
			}
			m.logger.Warning(logType, "skipping unreadable variant source", source, err.Error())
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), variantFileExt) {
				continue
			}
			m.loadFile(source, entry.Name(), merged)
		}
	}

	reg := &registry{variants: make(map[string][]*Variant, len(merged))}
	for entity, byName := range merged {
		variants := make([]*Variant, 0, len(byName))
		for name, data := range byName {
			variants = append(variants, &Variant{EntityType: entity, Name: name, Data: data})
		}
		sort.Slice(variants, func(i, j int) bool { return variants[i].Name < variants[j].Name })
		reg.variants[entity] = variants
	}
	return reg, nil
}

func (m *Manager) loadFile(source, name string, merged map[string]map[string]map[string]any) {
	entity, err := utils.CasefoldEntityType(strings.TrimSuffix(name, variantFileExt))
	if err != nil {
		m.logger.Warning(logType, "skipping variant file with invalid entity name", name, err.Error())
		return
	}

	path := filepath.Join(source, name)
	data, err := os.ReadFile(path)
	if err != nil {
		m.logger.Warning(logType, "cannot read variant file", path, err.Error())
		return
	}

	var file variantFile
	if err := json.Unmarshal(data, &file); err != nil {
		m.logger.Warning(logType, "invalid json in variant file", path, err.Error())
		return
	}

	byName := merged[entity]
	if byName == nil {
		byName = make(map[string]map[string]any)
		merged[entity] = byName
	}

	loaded := 0
	for _, raw := range file.Variants {
		variantName, ok := raw["variantName"].(string)
		if !ok || variantName == "" {
			m.logger.Warning(logType, "skipping variant without a variantName", path)
			continue
		}
		if existing, ok := byName[variantName]; ok {
			byName[variantName] = MergeObjects(existing, raw)
		} else {
			byName[variantName] = MergeObjects(nil, raw)
		}
		loaded++
	}

	m.logger.Debug(logType, "loaded variant file", path,
		fmt.Sprintf("%d variants", loaded), bytefmt.ByteSize(uint64(len(data))))
}

// Variants returns the variants loaded for the given entity type, sorted by
// name, or nil if none are known.
func (m *Manager) Variants(entityType string) []*Variant {
	folded, err := utils.CasefoldEntityType(entityType)
	if err != nil {
		return nil
	}
	return m.store.Get().variants[folded]
}

// Variant returns the named variant of the given entity type.
func (m *Manager) Variant(entityType, name string) (*Variant, bool) {
	for _, v := range m.Variants(entityType) {
		if v.Name == name {
			return v, true
		}
	}
	return nil, false
}

// Entities returns all known entity type names, sorted.
func (m *Manager) Entities() []string {
	reg := m.store.Get()
	entities := make([]string, 0, len(reg.variants))
	for entity := range reg.variants {
		entities = append(entities, entity)
	}
	sort.Strings(entities)
	return entities
}

// Count returns the number of loaded variants across all entity types.
func (m *Manager) Count() int {
	count := 0
	for _, variants := range m.store.Get().variants {
		count += len(variants)
	}
	return count
}
