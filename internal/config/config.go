package config

import "sync"

const (
	DefaultNearPlaneBias float32 = 0.05
	DefaultPlaneEpsilon  float32 = 0.0001
)

// CullSettings holds the culling tuning parameters shared by new frustums.
type CullSettings struct {
	mu            sync.RWMutex
	nearPlaneBias float32
	planeEpsilon  float32
}

var globalCullSettings = &CullSettings{
	nearPlaneBias: DefaultNearPlaneBias,
	planeEpsilon:  DefaultPlaneEpsilon,
}

// GetNearPlaneBias returns the distance added to the near plane test so that
// geometry hugging the camera is not culled.
func GetNearPlaneBias() float32 {
	globalCullSettings.mu.RLock()
	defer globalCullSettings.mu.RUnlock()
	return globalCullSettings.nearPlaneBias
}

// SetNearPlaneBias sets the near plane bias, clamped to [0, 1].
func SetNearPlaneBias(bias float32) {
	globalCullSettings.mu.Lock()
	defer globalCullSettings.mu.Unlock()

	if bias < 0 {
		bias = 0
	}
	if bias > 1 {
		bias = 1
	}

	globalCullSettings.nearPlaneBias = bias
}

// GetPlaneEpsilon returns the normal length under which a frustum plane is
// considered degenerate and left unnormalized.
func GetPlaneEpsilon() float32 {
	globalCullSettings.mu.RLock()
	defer globalCullSettings.mu.RUnlock()
	return globalCullSettings.planeEpsilon
}

// SetPlaneEpsilon sets the degenerate plane threshold, clamped to [1e-8, 1e-1].
func SetPlaneEpsilon(eps float32) {
	globalCullSettings.mu.Lock()
	defer globalCullSettings.mu.Unlock()

	if eps < 1e-8 {
		eps = 1e-8
	}
	if eps > 1e-1 {
		eps = 1e-1
	}

	globalCullSettings.planeEpsilon = eps
}

// Reset restores the default tuning.
func Reset() {
	globalCullSettings.mu.Lock()
	defer globalCullSettings.mu.Unlock()
	globalCullSettings.nearPlaneBias = DefaultNearPlaneBias
	globalCullSettings.planeEpsilon = DefaultPlaneEpsilon
}
