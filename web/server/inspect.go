package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	UV           [2]float64             `json:"uv"`
	Properties   map[string]interface{} `json:"properties"`
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func colorHex(c core.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", int(c.R*255), int(c.G*255), int(c.B*255))
}

// extractMaterialInfo describes a material; hit supplies the texture lookup point
func (s *Server) extractMaterialInfo(mat material.Material, hit material.HitRecord) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		albedo := m.Albedo.Value(hit.U, hit.V, hit.Point)
		properties["albedo"] = [3]float64{albedo.R, albedo.G, albedo.B}
		properties["color"] = colorHex(albedo)
		properties["texture"] = textureType(m.Albedo)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = [3]float64{m.Albedo.R, m.Albedo.G, m.Albedo.B}
		properties["color"] = colorHex(m.Albedo)
		properties["fuzz"] = m.Fuzz
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = "#ffffff"
		return "dielectric", properties

	case *material.Nothing:
		return "absorber", properties

	default:
		return "unknown", properties
	}
}

func textureType(t material.Texture) string {
	switch t.(type) {
	case *material.SolidColor:
		return "solid"
	case *material.CheckerTexture:
		return "checker"
	case *material.ImageTexture:
		return "image"
	default:
		return "unknown"
	}
}

// InspectResult contains the hit record and the leaf shape that produced it
type InspectResult struct {
	Hit       bool
	HitRecord material.HitRecord
	Shape     geometry.Shape
}

// inspectPixel casts a ray through the center of a pixel at shutter open and
// returns the nearest surface it hits
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) InspectResult {
	config := sceneObj.SamplingConfig
	s := (float64(pixelX) + 0.5) / float64(config.Width)
	t := (float64(config.Height-1-pixelY) + 0.5) / float64(config.Height)

	// Lens sample at the center of the lens
	ray := sceneObj.Camera.GetRay(s, t, centerSampler{})
	ray.Time = sceneObj.CameraConfig.Time0

	shape, hit := findLeaf(sceneObj.World, ray, integrator.ShadowAcneEpsilon, math.Inf(1))
	if !hit.Hit {
		return InspectResult{Hit: false}
	}
	return InspectResult{Hit: true, HitRecord: hit, Shape: shape}
}

// findLeaf returns the nearest leaf shape hit by ray, descending into groups
func findLeaf(shape geometry.Shape, ray core.Ray, tMin, tMax float64) (geometry.Shape, material.HitRecord) {
	group, ok := shape.(*geometry.Group)
	if !ok {
		return shape, shape.Hit(ray, tMin, tMax)
	}

	var closestShape geometry.Shape
	closest := material.Miss()
	for _, child := range group.Shapes() {
		leaf, hit := findLeaf(child, ray, tMin, tMax)
		if hit.Hit && hit.T < closest.T {
			closestShape, closest = leaf, hit
			tMax = hit.T
		}
	}
	return closestShape, closest
}

// centerSampler returns 0.5 for every draw, which puts unit disk samples at the center
type centerSampler struct{}

func (centerSampler) Get1D() float64            { return 0.5 }
func (centerSampler) Get2D() (float64, float64) { return 0.5, 0.5 }
func (centerSampler) Get3D() core.Vec3          { return core.NewVec3(0.5, 0.5, 0.5) }

// extractGeometryInfo extracts detailed geometry information
func (s *Server) extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.MovingSphere:
		properties["center0"] = vecArray(geom.Center0)
		properties["center1"] = vecArray(geom.Center1)
		properties["time0"] = geom.Time0
		properties["time1"] = geom.Time1
		properties["radius"] = geom.Radius
		return "moving_sphere", properties

	default:
		return "unknown", properties
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	inspectReq := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, inspectReq); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}
	if pixelX < 0 || pixelX >= inspectReq.Width || pixelY < 0 || pixelY >= inspectReq.Height {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	sceneObj, err := s.createScene(inspectReq, nil)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	result := inspectPixel(sceneObj, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	hit := result.HitRecord
	materialType, materialProps := s.extractMaterialInfo(hit.Material, hit)
	geometryType, geometryProps := s.extractGeometryInfo(result.Shape)

	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        vecArray(hit.Point),
		Normal:       vecArray(hit.Normal),
		Distance:     hit.T,
		FrontFace:    hit.FrontFace,
		UV:           [2]float64{hit.U, hit.V},
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
