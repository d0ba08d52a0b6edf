package culling

import (
	"scenequery/internal/profiling"
	"scenequery/internal/scene"
)

// Cull classifies every entity with an up-to-date volume, records the
// decision on the volume and returns the entities that are at least partly
// inside the frustum, in input order. Entities whose volume is dirty or
// missing are skipped.
func Cull(f *Frustum, entities []*scene.Entity) []*scene.Entity {
	defer profiling.Track("culling.Cull")()

	var counts [3]int
	visible := make([]*scene.Entity, 0, len(entities))
	for _, e := range entities {
		v := e.Volume()
		if v == nil {
			continue
		}
		box, ok := v.World()
		if !ok {
			v.SetVisible(false)
			continue
		}

		r := f.Classify(box)
		counts[r]++
		v.SetVisible(r != Outside)
		if r != Outside {
			visible = append(visible, e)
		}
	}

	for r, n := range counts {
		if n > 0 {
			classifications.WithLabelValues(Result(r).String()).Add(float64(n))
		}
	}
	return visible
}
