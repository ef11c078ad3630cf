package viewer

import (
	"github.com/Faultbox/flyview/internal/engine/camera"
	"github.com/Faultbox/flyview/internal/engine/renderer"
	"github.com/Faultbox/flyview/pkg/math"
)

// ComputeTransforms derives one frame's matrices from the camera, the
// projection settings, the viewport size and the object's world position.
func ComputeTransforms(cam *camera.FlyCamera, proj camera.Projection, model math.Vec3, width, height int) renderer.Transforms {
	return renderer.Transforms{
		Model:      math.Translate(model),
		View:       cam.ViewMatrix(),
		Projection: proj.Matrix(width, height),
	}
}
