package renderer

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/go-gl/mathgl/mgl64"
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	LookFrom      core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera is looking at
	Up            core.Vec3 // Up direction (usually 0,1,0)
	VFov          float64   // Vertical field of view in degrees
	AspectRatio   float64   // Width / height
	Aperture      float64   // Lens diameter; 0 gives a pinhole camera
	FocusDistance float64   // Distance to the plane of perfect focus (<= 0 means |LookFrom - LookAt|)
	Time0, Time1  float64   // Shutter open and close times
}

// DefaultCameraConfig returns a pinhole camera at the origin looking down -Z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		LookFrom:    core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90.0,
		AspectRatio: 16.0 / 9.0,
	}
}

// Camera generates rays for rendering. It is immutable once built and safe
// to share between workers.
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3
	lensRadius      float64
	time0, time1    float64
	config          CameraConfig
}

// NewCamera builds the view frame for config
func NewCamera(config CameraConfig) *Camera {
	theta := mgl64.DegToRad(config.VFov)
	viewportHeight := 2.0 * math.Tan(theta/2)
	viewportWidth := config.AspectRatio * viewportHeight

	from := toMgl(config.LookFrom)
	at := toMgl(config.LookAt)

	w := from.Sub(at).Normalize()
	u := toMgl(config.Up).Cross(w).Normalize()
	v := w.Cross(u)

	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = from.Sub(at).Len()
	}

	horizontal := u.Mul(viewportWidth * focusDistance)
	vertical := v.Mul(viewportHeight * focusDistance)
	lowerLeftCorner := from.
		Sub(horizontal.Mul(0.5)).
		Sub(vertical.Mul(0.5)).
		Sub(w.Mul(focusDistance))

	return &Camera{
		origin:          config.LookFrom,
		lowerLeftCorner: fromMgl(lowerLeftCorner),
		horizontal:      fromMgl(horizontal),
		vertical:        fromMgl(vertical),
		u:               fromMgl(u),
		v:               fromMgl(v),
		w:               fromMgl(w),
		lensRadius:      config.Aperture / 2,
		time0:           config.Time0,
		time1:           config.Time1,
		config:          config,
	}
}

// GetRay returns the ray through viewport coordinates (s, t) in [0,1]²,
// with (0,0) at the lower-left. The origin is jittered across the lens and
// the ray time is drawn uniformly from the shutter interval.
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	rd := core.RandomInUnitDisk(sampler).Multiply(c.lensRadius)
	offset := c.u.Multiply(rd.X).Add(c.v.Multiply(rd.Y))

	origin := c.origin.Add(offset)
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	time := core.RandomInRange(sampler, c.time0, c.time1)
	return core.NewRayAtTime(origin, direction, time)
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// MergeCameraConfig overlays the non-zero fields of override onto base
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	zero := core.Vec3{}
	if override.LookFrom != zero {
		result.LookFrom = override.LookFrom
	}
	if override.LookAt != zero {
		result.LookAt = override.LookAt
	}
	if override.Up != zero {
		result.Up = override.Up
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.Aperture != 0 {
		result.Aperture = override.Aperture
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}
	if override.Time0 != 0 || override.Time1 != 0 {
		result.Time0 = override.Time0
		result.Time1 = override.Time1
	}
	return result
}

func toMgl(v core.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromMgl(v mgl64.Vec3) core.Vec3 {
	return core.NewVec3(v.X(), v.Y(), v.Z())
}
