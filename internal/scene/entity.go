package scene

import (
	"scenequery/internal/bounds"

	"github.com/go-gl/mathgl/mgl32"
)

type EntityID uint32

// Entity is a scene object with a world transform and an optional bounding
// volume. Entities are owned by the update thread; nothing here is locked.
type Entity struct {
	ID   EntityID
	Name string

	transform mgl32.Mat4
	volume    *bounds.Volume
}

// NewEntity creates an entity at the identity transform. A nil volume means
// the entity takes no part in culling or picking.
func NewEntity(id EntityID, volume *bounds.Volume) *Entity {
	return &Entity{ID: id, transform: mgl32.Ident4(), volume: volume}
}

func (e *Entity) Transform() mgl32.Mat4 { return e.transform }

// SetTransform updates the world transform and invalidates the cached world
// box.
func (e *Entity) SetTransform(m mgl32.Mat4) {
	e.transform = m
	if e.volume != nil {
		e.volume.MarkDirty()
	}
}

// Volume returns the bounding volume, or nil.
func (e *Entity) Volume() *bounds.Volume { return e.volume }

// SetVolume attaches v, marking it dirty so the next UpdateBounds picks up
// the current transform.
func (e *Entity) SetVolume(v *bounds.Volume) {
	e.volume = v
	if v != nil {
		v.MarkDirty()
	}
}

// WorldBox returns the entity's world box when it has a volume that is not
// dirty.
func (e *Entity) WorldBox() (bounds.Box, bool) {
	if e.volume == nil {
		return bounds.Empty(), false
	}
	return e.volume.World()
}
