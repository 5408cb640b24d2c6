// Copyright (c) 2026 Kyradjis
// released under the MIT license

package entitystate

import (
	"path/filepath"
	"testing"

	"github.com/kyradjis/bluelib/datastore"
	"github.com/kyradjis/bluelib/logger"
)

func newMemoryStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(nil, logger.NewDefault(logger.LogError))
	if err != nil {
		t.Fatal(err)
	}
	return store
}

func TestDefaultsWithoutAllocation(t *testing.T) {
	store := newMemoryStore(t)

	if store.Flying("dragon-1") || store.CanFly("dragon-1") || store.Tamed("dragon-1") {
		t.Errorf("unknown entity should report default state")
	}
	if store.LoyaltyLevel("dragon-1") != 0 || store.TamingItem("dragon-1") != "" {
		t.Errorf("unknown entity should report zero counters")
	}
	// reads must not allocate entries
	if store.Known("dragon-1") || store.Count() != 0 {
		t.Errorf("read allocated an entry")
	}
}

func TestWritesAllocateAndStick(t *testing.T) {
	store := newMemoryStore(t)

	store.SetCanFly("dragon-1", true)
	store.SetFlying("dragon-1", true)
	store.SetFlightCooldown("dragon-1", 40)
	store.SetSwimming("fish-9", true)

	if !store.Flying("dragon-1") || !store.CanFly("dragon-1") {
		t.Errorf("flight flags didn't stick")
	}
	if store.FlightCooldown("dragon-1") != 40 {
		t.Errorf("cooldown didn't stick")
	}
	if !store.Swimming("fish-9") {
		t.Errorf("swimming flag didn't stick")
	}
	if store.Count() != 2 {
		t.Errorf("expected 2 entries, got %d", store.Count())
	}
}

func TestTamingLifecycle(t *testing.T) {
	store := newMemoryStore(t)

	store.SetTamingItem("wolf-3", "minecraft:bone")
	store.SetTamed("wolf-3", true, "player-1")
	store.SetFollowing("wolf-3", true)
	store.SetLoyaltyLevel("wolf-3", 5)

	if !store.Tamed("wolf-3") || store.OwnerID("wolf-3") != "player-1" {
		t.Errorf("taming didn't stick")
	}
	if store.LoyaltyLevel("wolf-3") != 5 || !store.Following("wolf-3") {
		t.Errorf("loyalty/following didn't stick")
	}

	store.SetTamed("wolf-3", false, "")
	if store.Tamed("wolf-3") || store.OwnerID("wolf-3") != "" {
		t.Errorf("untaming didn't clear ownership")
	}
	if store.LoyaltyLevel("wolf-3") != 0 || store.Following("wolf-3") {
		t.Errorf("untaming didn't clear loyalty and following")
	}
}

func TestTamingSetsBaseLoyalty(t *testing.T) {
	store := newMemoryStore(t)
	store.SetTamed("wolf-3", true, "player-1")
	if store.LoyaltyLevel("wolf-3") != 1 {
		t.Errorf("expected base loyalty 1, got %d", store.LoyaltyLevel("wolf-3"))
	}
}

func TestForgetEvicts(t *testing.T) {
	store := newMemoryStore(t)
	store.SetFlying("dragon-1", true)
	store.Forget("dragon-1")
	if store.Known("dragon-1") || store.Count() != 0 {
		t.Errorf("Forget left the entry allocated")
	}
	if store.Flying("dragon-1") {
		t.Errorf("forgotten entity should report defaults")
	}
}

func TestPersistAndRestore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	lm := logger.NewDefault(logger.LogError)

	ds, err := datastore.Open(path, lm)
	if err != nil {
		t.Fatal(err)
	}
	store, err := NewStore(ds, lm)
	if err != nil {
		t.Fatal(err)
	}
	store.SetTamed("wolf-3", true, "player-1")
	store.SetLoyaltyLevel("wolf-3", 4)
	store.SetFlying("dragon-1", true)
	store.Forget("dragon-1")
	if err := store.Persist(); err != nil {
		t.Fatal(err)
	}
	if err := ds.Close(); err != nil {
		t.Fatal(err)
	}

	ds, err = datastore.Open(path, lm)
	if err != nil {
		t.Fatal(err)
	}
	defer ds.Close()
	restored, err := NewStore(ds, lm)
	if err != nil {
		t.Fatal(err)
	}
	if !restored.Tamed("wolf-3") || restored.LoyaltyLevel("wolf-3") != 4 || restored.OwnerID("wolf-3") != "player-1" {
		t.Errorf("taming state didn't survive the restart: %+v", restored.Get("wolf-3"))
	}
	if restored.Known("dragon-1") {
		t.Errorf("forgotten entity came back after restart")
	}
}
