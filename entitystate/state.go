// Copyright (c) 2026 Kyradjis
// released under the MIT license

// Package entitystate tracks per-entity behavioral state: flight, swimming,
// taming, loyalty and following. Entities are keyed by a stable string id;
// hosts must call Forget when an entity despawns so the store can't grow
// without bound.
package entitystate

import (
	"encoding/json"
	"sync"

	"github.com/kyradjis/bluelib/datastore"
	"github.com/kyradjis/bluelib/logger"
)

const logType = "bluelib.entitystate"

// State holds the behavioral flags and counters of one entity. The zero
// value is the default state reported for entities that were never written.
type State struct {
	Flying         bool   `json:"flying,omitempty"`
	CanFly         bool   `json:"canFly,omitempty"`
	FlightCooldown int    `json:"flightCooldown,omitempty"`
	Swimming       bool   `json:"swimming,omitempty"`
	SwimCooldown   int    `json:"swimCooldown,omitempty"`
	TamingItem     string `json:"tamingItem,omitempty"`
	Tamed          bool   `json:"tamed,omitempty"`
	OwnerID        string `json:"ownerId,omitempty"`
	LoyaltyLevel   int    `json:"loyaltyLevel,omitempty"`
	Following      bool   `json:"following,omitempty"`
}

// Store is the process-wide entity state map. Reads of unknown entities
// return defaults without allocating an entry; only writes create entries.
// When built over a datastore, Persist snapshots changed entries so taming
// and loyalty survive a restart.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*State
	dirty   map[string]bool
	ds      datastore.Datastore // nil for an in-memory store
	logger  *logger.Manager
}

// NewStore returns a store over the given datastore, restoring any
// persisted entries. Pass a nil datastore for a purely in-memory store.
func NewStore(ds datastore.Datastore, lm *logger.Manager) (*Store, error) {
	if lm == nil {
		lm = logger.NewDefault(logger.LogInfo)
	}
	store := &Store{
		entries: make(map[string]*State),
		dirty:   make(map[string]bool),
		ds:      ds,
		logger:  lm,
	}
	if ds != nil {
		kvs, err := ds.GetAll(datastore.TableEntityState)
		if err != nil {
			return nil, err
		}
		for _, kv := range kvs {
			var state State
			if err := json.Unmarshal(kv.Value, &state); err != nil {
				lm.Warning(logType, "discarding corrupt entity state", kv.Key, err.Error())
				continue
			}
			store.entries[kv.Key] = &state
		}
	}
	return store, nil
}

// Get returns a copy of the entity's state, or the default state if the
// entity has never been written.
func (s *Store) Get(entityID string) State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if state, ok := s.entries[entityID]; ok {
		return *state
	}
	return State{}
}

// Known reports whether the entity has an allocated entry.
func (s *Store) Known(entityID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[entityID]
	return ok
}

// Count returns the number of allocated entries.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// update applies a mutation to the entity's entry, allocating it if needed.
func (s *Store) update(entityID string, mutate func(*State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.entries[entityID]
	if !ok {
		state = &State{}
		s.entries[entityID] = state
	}
	mutate(state)
	s.dirty[entityID] = true
}

func (s *Store) Flying(entityID string) bool { return s.Get(entityID).Flying }

func (s *Store) SetFlying(entityID string, flying bool) {
	s.update(entityID, func(state *State) { state.Flying = flying })
}

func (s *Store) CanFly(entityID string) bool { return s.Get(entityID).CanFly }

func (s *Store) SetCanFly(entityID string, canFly bool) {
	s.update(entityID, func(state *State) { state.CanFly = canFly })
}

func (s *Store) FlightCooldown(entityID string) int { return s.Get(entityID).FlightCooldown }

func (s *Store) SetFlightCooldown(entityID string, ticks int) {
	s.update(entityID, func(state *State) { state.FlightCooldown = ticks })
}

func (s *Store) Swimming(entityID string) bool { return s.Get(entityID).Swimming }

func (s *Store) SetSwimming(entityID string, swimming bool) {
	s.update(entityID, func(state *State) { state.Swimming = swimming })
}

func (s *Store) SwimCooldown(entityID string) int { return s.Get(entityID).SwimCooldown }

func (s *Store) SetSwimCooldown(entityID string, ticks int) {
	s.update(entityID, func(state *State) { state.SwimCooldown = ticks })
}

func (s *Store) TamingItem(entityID string) string { return s.Get(entityID).TamingItem }

func (s *Store) SetTamingItem(entityID string, item string) {
	s.update(entityID, func(state *State) { state.TamingItem = item })
}

func (s *Store) Tamed(entityID string) bool { return s.Get(entityID).Tamed }

// SetTamed marks the entity tamed (or wild) and records its owner; taming
// resets loyalty to the base level of 1, untaming clears it.
func (s *Store) SetTamed(entityID string, tamed bool, ownerID string) {
	s.update(entityID, func(state *State) {
		state.Tamed = tamed
		if tamed {
			state.OwnerID = ownerID
			if state.LoyaltyLevel < 1 {
				state.LoyaltyLevel = 1
			}
		} else {
			state.OwnerID = ""
			state.LoyaltyLevel = 0
			state.Following = false
		}
	})
}

func (s *Store) OwnerID(entityID string) string { return s.Get(entityID).OwnerID }

func (s *Store) LoyaltyLevel(entityID string) int { return s.Get(entityID).LoyaltyLevel }

func (s *Store) SetLoyaltyLevel(entityID string, level int) {
	s.update(entityID, func(state *State) { state.LoyaltyLevel = level })
}

func (s *Store) Following(entityID string) bool { return s.Get(entityID).Following }

func (s *Store) SetFollowing(entityID string, following bool) {
	s.update(entityID, func(state *State) { state.Following = following })
}

// Forget evicts the entity's entry; hosts call this on despawn. The
// persisted copy, if any, is deleted as well.
func (s *Store) Forget(entityID string) {
	s.mu.Lock()
	delete(s.entries, entityID)
	delete(s.dirty, entityID)
	s.mu.Unlock()

	if s.ds != nil {
		if err := s.ds.Delete(datastore.TableEntityState, entityID); err != nil {
			s.logger.Warning(logType, "couldn't delete persisted entity state", entityID, err.Error())
		}
	}
}

// Persist writes every entry changed since the last call to the datastore.
// It is a no-op for in-memory stores.
func (s *Store) Persist() error {
	if s.ds == nil {
		return nil
	}

	s.mu.Lock()
	snapshot := make(map[string]State, len(s.dirty))
	for entityID := range s.dirty {
		if state, ok := s.entries[entityID]; ok {
			snapshot[entityID] = *state
		}
	}
	s.dirty = make(map[string]bool)
	s.mu.Unlock()

	var lastErr error
	for entityID, state := range snapshot {
		data, err := json.Marshal(state)
		if err != nil {
			lastErr = err
			continue
		}
		if err := s.ds.Set(datastore.TableEntityState, entityID, data); err != nil {
			lastErr = err
		}
	}
	if lastErr != nil {
		s.logger.Warning(logType, "errors while persisting entity state", lastErr.Error())
	}
	return lastErr
}
