package scene

import "encoding/json"

// SceneConfig is the scene configuration serialized into a project's
// SceneData column: camera pose, lighting, environment preset and grid
// settings. The core treats it as opaque after creation; only the default is
// produced here.
type SceneConfig struct {
	Camera      CameraConfig   `json:"camera"`
	Lighting    LightingConfig `json:"lighting"`
	Environment string         `json:"environment"`
	Grid        GridConfig     `json:"grid"`
}

// CameraConfig holds the camera position and look-at target.
type CameraConfig struct {
	Position []float64 `json:"position"`
	Target   []float64 `json:"target"`
}

// LightingConfig holds the key light intensity and color.
type LightingConfig struct {
	Intensity float64 `json:"intensity"`
	Color     string  `json:"color"`
}

// GridConfig holds the ground grid settings.
type GridConfig struct {
	Visible bool    `json:"visible"`
	Size    float64 `json:"size"`
}

// DefaultSceneConfig returns the canonical scene every new project starts
// with: camera at [5,5,5] looking at the origin, full-intensity white light,
// the studio environment and a visible size-10 grid.
func DefaultSceneConfig() SceneConfig {
	return SceneConfig{
		Camera: CameraConfig{
			Position: []float64{5, 5, 5},
			Target:   []float64{0, 0, 0},
		},
		Lighting: LightingConfig{
			Intensity: 1,
			Color:     "#ffffff",
		},
		Environment: "studio",
		Grid: GridConfig{
			Visible: true,
			Size:    10,
		},
	}
}

func defaultSceneData() string {
	b, _ := json.Marshal(DefaultSceneConfig())
	return string(b)
}
