package scene

import (
	"fmt"
	"sort"

	"github.com/df07/go-pathtracer/pkg/renderer"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Name accepted by Create
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"`
}

type sceneFactory func(overrides []renderer.CameraConfig) (*Scene, error)

type registeredScene struct {
	info   SceneInfo
	create sceneFactory
}

var builtinScenes = map[string]registeredScene{
	"default": {
		info: SceneInfo{ID: "default", DisplayName: "Default Scene", Description: "Diffuse, glass, and metal spheres on a ground sphere"},
		create: func(overrides []renderer.CameraConfig) (*Scene, error) {
			return NewDefaultScene(overrides...), nil
		},
	},
	"random": {
		info: SceneInfo{ID: "random", DisplayName: "Random Spheres", Description: "Field of random spheres with motion blur and depth of field"},
		create: func(overrides []renderer.CameraConfig) (*Scene, error) {
			return NewRandomScene(42, overrides...), nil
		},
	},
	"checker": {
		info: SceneInfo{ID: "checker", DisplayName: "Checkered Spheres", Description: "Two spheres with a procedural checker texture"},
		create: func(overrides []renderer.CameraConfig) (*Scene, error) {
			return NewCheckerScene(overrides...), nil
		},
	},
	"glass": {
		info: SceneInfo{ID: "glass", DisplayName: "Glass", Description: "Dielectrics of increasing refractive index"},
		create: func(overrides []renderer.CameraConfig) (*Scene, error) {
			return NewGlassScene(overrides...), nil
		},
	},
	"earth": {
		info: SceneInfo{ID: "earth", DisplayName: "Earth", Description: "Image-textured globe (needs " + DefaultEarthTexture + ")"},
		create: func(overrides []renderer.CameraConfig) (*Scene, error) {
			return NewEarthScene(DefaultEarthTexture, overrides...)
		},
	},
}

// Create builds the named built-in scene. An optional camera config
// overrides the scene's camera where its fields are non-zero.
func Create(name string, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	entry, ok := builtinScenes[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %v)", name, SceneNames())
	}

	s, err := entry.create(cameraOverrides)
	if err != nil {
		return nil, fmt.Errorf("failed to create scene %s: %w", name, err)
	}
	return s, nil
}

// ListScenes returns every built-in scene sorted by ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, entry := range builtinScenes {
		scenes = append(scenes, entry.info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// SceneNames returns the IDs accepted by Create
func SceneNames() []string {
	scenes := ListScenes()
	names := make([]string, len(scenes))
	for i, info := range scenes {
		names[i] = info.ID
	}
	return names
}
