// Copyright (c) 2026 Kyradjis
// released under the MIT license

package variant

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/kyradjis/bluelib/logger"
)

func writeVariantFile(t *testing.T, dir, name, contents string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0600); err != nil {
		t.Fatal(err)
	}
}

func quietLogger() *logger.Manager {
	return logger.NewDefault(logger.LogError)
}

func TestManagerLoadsAndMerges(t *testing.T) {
	resources := t.TempDir()
	datapack := t.TempDir()

	writeVariantFile(t, resources, "Dragon.json", `{
		"variants": [
			{"variantName": "blue", "scale": 1, "texture": {"path": "blue.png", "emissive": false}},
			{"variantName": "red", "scale": 1}
		]
	}`)
	writeVariantFile(t, datapack, "dragon.json", `{
		"variants": [
			{"variantName": "blue", "texture": {"emissive": true}},
			{"variantName": "gold", "scale": 3}
		]
	}`)

	m, err := NewManager([]string{resources, datapack}, quietLogger())
	if err != nil {
		t.Fatal(err)
	}

	if count := m.Count(); count != 3 {
		t.Errorf("expected 3 variants, got %d", count)
	}
	if entities := m.Entities(); !reflect.DeepEqual(entities, []string{"dragon"}) {
		t.Errorf("unexpected entities: %v", entities)
	}

	// lookups casefold the entity type
	blue, ok := m.Variant("Dragon", "blue")
	if !ok {
		t.Fatal("blue variant not found")
	}
	texture, ok := blue.Data["texture"].(map[string]any)
	if !ok {
		t.Fatalf("unexpected texture data: %#v", blue.Data["texture"])
	}
	// the data pack override merged over the resource default
	if texture["emissive"] != true || texture["path"] != "blue.png" {
		t.Errorf("unexpected merged texture: %#v", texture)
	}

	if _, ok := m.Variant("dragon", "gold"); !ok {
		t.Errorf("data-pack-only variant missing")
	}
	if _, ok := m.Variant("creeper", "blue"); ok {
		t.Errorf("unexpected variant for unknown entity")
	}
}

func TestManagerSkipsMalformedFiles(t *testing.T) {
	source := t.TempDir()
	writeVariantFile(t, source, "dragon.json", `{"variants": [{"variantName": "blue"}]}`)
	writeVariantFile(t, source, "broken.json", `{"variants": [`)
	writeVariantFile(t, source, "nameless.json", `{"variants": [{"scale": 2}]}`)
	writeVariantFile(t, source, "notes.txt", `not a variant file`)

	m, err := NewManager([]string{source}, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	if count := m.Count(); count != 1 {
		t.Errorf("expected 1 variant, got %d", count)
	}
}

func TestManagerStrictInitialLoad(t *testing.T) {
	if _, err := NewManager([]string{"/no/such/directory"}, quietLogger()); err == nil {
		t.Errorf("expected an error for an unreadable source")
	}
}

func TestManagerReloadReplacesRegistry(t *testing.T) {
	source := t.TempDir()
	writeVariantFile(t, source, "dragon.json", `{"variants": [{"variantName": "blue"}]}`)

	m, err := NewManager([]string{source}, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := m.Variant("dragon", "blue"); !ok {
		t.Fatal("blue variant not found before reload")
	}

	// the registry is fully replaced, not merged incrementally
	writeVariantFile(t, source, "dragon.json", `{"variants": [{"variantName": "green"}]}`)
	if err := m.Reload(); err != nil {
		t.Fatal(err)
	}
	if _, ok := m.Variant("dragon", "blue"); ok {
		t.Errorf("stale variant survived the reload")
	}
	if _, ok := m.Variant("dragon", "green"); !ok {
		t.Errorf("new variant missing after reload")
	}
}
