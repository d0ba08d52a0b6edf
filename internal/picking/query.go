package picking

import (
	"sort"

	"scenequery/internal/profiling"
	"scenequery/internal/scene"

	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/go-gl/mathgl/mgl32"
)

// Hit is an entity struck by a ray.
type Hit struct {
	Entity   *scene.Entity
	Distance float32
	Point    mgl32.Vec3
}

// EntitySource yields the entities carrying a bounding volume.
type EntitySource interface {
	WithBounds() []*scene.Entity
}

func missing(src EntitySource) bool {
	if src == nil {
		return true
	}
	s, ok := src.(*scene.Scene)
	return ok && s == nil
}

// QueryAll returns every entity hit by the ray, closest first. Entities whose
// volume is dirty are skipped.
func QueryAll(src EntitySource, origin, direction mgl32.Vec3) []Hit {
	defer profiling.Track("picking.QueryAll")()

	if missing(src) {
		logs.WithTag("query", "all").Debug("ray query without a scene")
		return nil
	}
	queries.WithLabelValues(modeImmediate).Inc()

	var hits []Hit
	for _, e := range src.WithBounds() {
		box, ok := e.WorldBox()
		if !ok {
			continue
		}
		if d, p, ok := IntersectBox(origin, direction, box); ok {
			hits = append(hits, Hit{Entity: e, Distance: d, Point: p})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })

	if len(hits) > 0 {
		queryHits.WithLabelValues(modeImmediate).Inc()
	}
	return hits
}

// QueryClosest returns the nearest entity hit by the ray. On equal distances
// the first entity in scan order wins.
func QueryClosest(src EntitySource, origin, direction mgl32.Vec3) (Hit, bool) {
	defer profiling.Track("picking.QueryClosest")()

	if missing(src) {
		logs.WithTag("query", "closest").Debug("ray query without a scene")
		return Hit{}, false
	}
	queries.WithLabelValues(modeImmediate).Inc()

	hit, ok := closest(src.WithBounds(), origin, direction)
	if ok {
		queryHits.WithLabelValues(modeImmediate).Inc()
	}
	return hit, ok
}

// QueryFromScreen picks the closest entity under a pixel against every entity
// of src. It does not benefit from culling; the deferred Service path only
// tests the visible set.
func QueryFromScreen(screenX, screenY, screenW, screenH float32, src EntitySource, projection, view mgl32.Mat4) (Hit, bool) {
	ray := ScreenRay(screenX, screenY, screenW, screenH, projection, view)
	return QueryClosest(src, ray.Origin, ray.Direction)
}

func closest(entities []*scene.Entity, origin, direction mgl32.Vec3) (Hit, bool) {
	var best Hit
	found := false
	for _, e := range entities {
		box, ok := e.WorldBox()
		if !ok {
			continue
		}
		d, p, ok := IntersectBox(origin, direction, box)
		if !ok {
			continue
		}
		if !found || d < best.Distance {
			best = Hit{Entity: e, Distance: d, Point: p}
			found = true
		}
	}
	return best, found
}
