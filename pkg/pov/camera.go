// Package pov turns parsed meshes into POV-Ray scene files: an indexed
// mesh2 block plus a camera and lighting rig framing the object.
package pov

import (
	gomath "math"

	"github.com/Faultbox/mesh2pov/pkg/math"
	"github.com/Faultbox/mesh2pov/pkg/mesh"
)

// Framing constants. The half angle is tied to the fixed field of view
// and must move with it.
const (
	// FieldOfView is the camera angle in degrees, fixed for all scenes.
	FieldOfView = 35.0

	fovHalfAngleDeg = FieldOfView / 2
	fitPadding      = 1.2 // 20% extra distance so the object never touches the frame
	lightFactor     = 1.5 // light anchor distance relative to camera fit distance
)

// CameraView selects the default (no-orbit) camera placement.
type CameraView int

const (
	// ViewOverhead looks straight down the vertical axis.
	ViewOverhead CameraView = iota
	// ViewThreeQuarter looks in from the (1, 1, -1) diagonal.
	ViewThreeQuarter
)

// String returns the config/flag name of the view.
func (v CameraView) String() string {
	switch v {
	case ViewOverhead:
		return "overhead"
	case ViewThreeQuarter:
		return "three-quarter"
	default:
		return "unknown"
	}
}

// ParseCameraView parses a view name.
func ParseCameraView(s string) (CameraView, bool) {
	switch s {
	case "overhead":
		return ViewOverhead, true
	case "three-quarter":
		return ViewThreeQuarter, true
	default:
		return ViewOverhead, false
	}
}

// CameraOptions control camera placement relative to the mesh bounds.
// Facing (pitch/yaw/roll) is an emission concern and lives on Config.
type CameraOptions struct {
	View         CameraView
	FlipX        bool    // compute bounds over X-negated positions
	OrbitDegrees float64 // rotation of the camera about the vertical axis
	DistanceMult float64 // camera distance multiplier (0 means 1)
}

// CameraPlan is the derived camera setup for one mesh. It is recomputed
// from the mesh bounds and never persisted.
type CameraPlan struct {
	Position      math.Vec3
	LookAt        math.Vec3
	FOV           float64
	LightDistance float64
}

// fallbackPlan frames an empty scene.
func fallbackPlan() CameraPlan {
	return CameraPlan{
		Position:      math.Vec3{Z: -10},
		LookAt:        math.Vec3{},
		FOV:           FieldOfView,
		LightDistance: 15,
	}
}

// PlanCamera derives a camera pose framing the mesh's bounding volume.
// A mesh with no positions gets the fixed fallback pose.
func PlanCamera(m *mesh.Mesh, opts CameraOptions) CameraPlan {
	if len(m.Positions) == 0 {
		return fallbackPlan()
	}

	mult := opts.DistanceMult
	if mult == 0 {
		mult = 1
	}

	bounds := mesh.NewBounds()
	for _, p := range m.Positions {
		if opts.FlipX {
			p.X = -p.X
		}
		bounds.Extend(p)
	}

	center := bounds.Center()

	// Fit the bounding sphere inside the view cone, with padding.
	distance := (bounds.Diagonal() / 2) / gomath.Tan(math.Radians(fovHalfAngleDeg)) * fitPadding

	var offset math.Vec3
	switch opts.View {
	case ViewThreeQuarter:
		offset = math.Vec3{X: 1, Y: 1, Z: -1}.Normalize().Scale(distance * mult)
	default:
		offset = math.Vec3{Y: distance * mult}
	}

	if opts.OrbitDegrees != 0 {
		offset = offset.RotateY(math.Radians(opts.OrbitDegrees))
	}

	return CameraPlan{
		Position:      center.Add(offset),
		LookAt:        center,
		FOV:           FieldOfView,
		LightDistance: distance * lightFactor,
	}
}

// rotateAboutPoint rotates p about pivot by the facing triple, applied
// in the fixed order pitch (X), roll (Y), yaw (Z). The order matters:
// light rigs are composed against it.
func rotateAboutPoint(p, pivot math.Vec3, pitchDeg, rollDeg, yawDeg float64) math.Vec3 {
	if pitchDeg == 0 && rollDeg == 0 && yawDeg == 0 {
		return p
	}
	offset := p.Sub(pivot)
	offset = offset.RotateX(math.Radians(pitchDeg))
	offset = offset.RotateY(math.Radians(rollDeg))
	offset = offset.RotateZ(math.Radians(yawDeg))
	return pivot.Add(offset)
}
