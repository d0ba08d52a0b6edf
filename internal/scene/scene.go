package scene

import (
	"sync"

	"scenequery/internal/bounds"
	"scenequery/internal/profiling"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/go-gl/mathgl/mgl32"
)

// Scene holds the entities of a scene and answers capability queries over
// them.
type Scene struct {
	mu       sync.RWMutex
	entities []*Entity
	index    map[EntityID]int
	nextID   EntityID
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{
		entities: make([]*Entity, 0),
		index:    make(map[EntityID]int),
	}
}

// Spawn creates an entity with a fresh id, a volume around local and the
// given transform.
func (s *Scene) Spawn(local bounds.Box, transform mgl32.Mat4) *Entity {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	for {
		if _, ok := s.index[s.nextID]; !ok {
			break
		}
		s.nextID++
	}

	e := NewEntity(s.nextID, bounds.NewVolume(local))
	e.SetTransform(transform)
	s.index[e.ID] = len(s.entities)
	s.entities = append(s.entities, e)
	return e
}

// Add inserts e. It fails for a nil entity or when an entity with the same
// id is already present.
func (s *Scene) Add(e *Entity) error {
	if e == nil {
		return errors.New("entity is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[e.ID]; ok {
		return errors.New("entity is already added").WithTag("id", e.ID)
	}
	s.index[e.ID] = len(s.entities)
	s.entities = append(s.entities, e)
	return nil
}

// Get returns the entity with the given id.
func (s *Scene) Get(id EntityID) (*Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return nil, errors.New("entity not found").WithTag("id", id)
	}
	return s.entities[i], nil
}

// Remove deletes the entity with the given id, keeping insertion order of
// the remaining entities.
func (s *Scene) Remove(id EntityID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return errors.New("entity not found").WithTag("id", id)
	}
	s.entities = append(s.entities[:i], s.entities[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.entities); j++ {
		s.index[s.entities[j].ID] = j
	}
	return nil
}

// Len returns the number of entities.
func (s *Scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entities)
}

// All returns a copy of the entity list in insertion order.
func (s *Scene) All() []*Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*Entity, len(s.entities))
	copy(result, s.entities)
	return result
}

// WithBounds returns a copy of the entities carrying a bounding volume, in
// insertion order.
func (s *Scene) WithBounds() []*Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*Entity, 0, len(s.entities))
	for _, e := range s.entities {
		if e.volume != nil {
			result = append(result, e)
		}
	}
	return result
}

// UpdateBounds recomputes the world box of every dirty volume from its
// entity's transform and returns how many were recomputed. Must run before
// culling and picking each frame.
func (s *Scene) UpdateBounds() int {
	defer profiling.Track("scene.UpdateBounds")()

	n := 0
	for _, e := range s.WithBounds() {
		if e.volume.Dirty() {
			e.volume.Recompute(e.transform)
			n++
		}
	}
	return n
}
