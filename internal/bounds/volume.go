package bounds

import "github.com/go-gl/mathgl/mgl32"

// Volume pairs a local-space box with its cached world-space box.
//
// The world box is derived data and is only meaningful while the volume is
// not dirty. Anything that changes the owner's transform or local geometry
// must call MarkDirty; only Recompute clears the flag.
type Volume struct {
	local   Box
	world   Box
	dirty   bool
	visible bool
}

// NewVolume returns a dirty volume around local.
func NewVolume(local Box) *Volume {
	return &Volume{local: local, world: Empty(), dirty: true}
}

func (v *Volume) Local() Box { return v.local }

// SetLocal replaces the local box and marks the volume dirty.
func (v *Volume) SetLocal(b Box) {
	v.local = b
	v.dirty = true
}

func (v *Volume) MarkDirty() { v.dirty = true }

func (v *Volume) Dirty() bool { return v.dirty }

// Recompute derives the world box from the local box and the owner's world
// matrix and clears the dirty flag. Calling it twice with the same matrix
// yields the same world box.
func (v *Volume) Recompute(world mgl32.Mat4) {
	v.world = v.local.Transform(world)
	v.dirty = false
}

// World returns the world-space box; ok is false while the volume is dirty.
func (v *Volume) World() (b Box, ok bool) {
	if v.dirty {
		return Empty(), false
	}
	return v.world, true
}

// Visible reports the last culling decision for this volume.
func (v *Volume) Visible() bool { return v.visible }

func (v *Volume) SetVisible(visible bool) { v.visible = visible }
