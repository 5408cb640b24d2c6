// Copyright (c) 2026 Kyradjis
// released under the MIT license

// Package variant loads named JSON "entity variant" records from resource
// and data directories, merging overrides over defaults. The registry is
// rebuilt from scratch and atomically swapped on every reload.
package variant

// Variant is one named configuration blob associated with an entity type.
// It is immutable once loaded; a reload produces fresh records.
type Variant struct {
	EntityType string
	Name       string
	Data       map[string]any
}

// MergeObjects deep-merges override into base and returns the result as a
// new map; neither input is modified. Nested objects merge recursively;
// scalars and arrays are replaced wholesale, later source winning.
func MergeObjects(base, override map[string]any) map[string]any {
	result := make(map[string]any, len(base)+len(override))
	for key, value := range base {
		result[key] = value
	}
	for key, value := range override {
		baseChild, baseIsObject := result[key].(map[string]any)
		overrideChild, overrideIsObject := value.(map[string]any)
		if baseIsObject && overrideIsObject {
			result[key] = MergeObjects(baseChild, overrideChild)
		} else {
			result[key] = value
		}
	}
	return result
}
