package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func newTestControls() (*Perspective, *OrbitControls) {
	cam := Default(1)
	ctl := NewOrbitControls(cam, 200, 100)
	ctl.EnableDamping = true
	return cam, ctl
}

func TestControlsIdleUpdate(t *testing.T) {
	cam, ctl := newTestControls()
	start := cam.Position

	if ctl.Update() {
		t.Error("Update() reported motion without input")
	}
	if cam.Position.Sub(start).Len() >= 1e-9 {
		t.Errorf("camera moved from %v to %v", start, cam.Position)
	}
}

func TestControlsDampedRotationConverges(t *testing.T) {
	cam, ctl := newTestControls()
	startTheta := sphericalFromVector(cam.Position).Theta
	dist := cam.Position.Len()

	ctl.RotateLeft(0.5)

	// First update applies only the damping fraction
	ctl.Update()
	first := sphericalFromVector(cam.Position).Theta - startTheta
	if math.Abs(first-(-0.5*DefaultDampingFactor)) > 1e-9 {
		t.Errorf("first step = %f, want %f", first, -0.5*DefaultDampingFactor)
	}

	for i := 0; i < 1000; i++ {
		ctl.Update()
	}
	total := sphericalFromVector(cam.Position).Theta - startTheta
	if math.Abs(total-(-0.5)) > 1e-6 {
		t.Errorf("total rotation = %f, want -0.5", total)
	}
	if math.Abs(cam.Position.Len()-dist) > 1e-9 {
		t.Errorf("distance changed: %f -> %f", dist, cam.Position.Len())
	}
}

func TestControlsPolarClamp(t *testing.T) {
	cam, ctl := newTestControls()
	ctl.EnableDamping = false

	ctl.RotateUp(10)
	ctl.Update()

	phi := sphericalFromVector(cam.Position.Sub(cam.Target)).Phi
	if phi < 0 || phi > math.Pi {
		t.Errorf("phi = %f outside [0, π]", phi)
	}
}

func TestControlsDragRotate(t *testing.T) {
	cam, ctl := newTestControls()
	ctl.EnableDamping = false
	start := cam.Position

	ctl.BeginDrag(DragRotate, 10, 10)
	if ctl.Dragging() != DragRotate {
		t.Fatalf("Dragging() = %v, want DragRotate", ctl.Dragging())
	}
	ctl.Drag(30, 10)
	ctl.EndDrag()

	if !ctl.Update() {
		t.Fatal("drag produced no motion")
	}
	if cam.Position.Sub(start).Len() < 1e-6 {
		t.Error("camera did not rotate")
	}
	if ctl.Dragging() != DragNone {
		t.Error("drag still active after EndDrag")
	}
}

func TestControlsDolly(t *testing.T) {
	cam, ctl := newTestControls()
	before := cam.Position.Len()

	ctl.Dolly(3)
	ctl.Update()
	if cam.Position.Len() >= before {
		t.Errorf("dolly in: distance %f -> %f", before, cam.Position.Len())
	}

	mid := cam.Position.Len()
	ctl.Dolly(-3)
	ctl.Update()
	if math.Abs(cam.Position.Len()-before) > 1e-9 {
		t.Errorf("dolly out: distance %f, want %f (from %f)", cam.Position.Len(), before, mid)
	}
}

func TestControlsPanMovesTarget(t *testing.T) {
	cam, ctl := newTestControls()
	ctl.EnableDamping = false

	ctl.BeginDrag(DragPan, 50, 50)
	ctl.Drag(60, 50)
	ctl.EndDrag()
	ctl.Update()

	if cam.Target.Len() < 1e-9 {
		t.Error("target did not move")
	}
	// Dragging right moves the scene right, so the target shifts toward -X.
	if cam.Target.X() >= 0 {
		t.Errorf("target X = %f, want < 0", cam.Target.X())
	}
}

func TestControlsReset(t *testing.T) {
	cam, ctl := newTestControls()
	ctl.RotateLeft(1)
	ctl.Update()

	ctl.Reset()
	if cam.Position != DefaultPosition || cam.Target != (mgl64.Vec3{}) {
		t.Errorf("Reset() left camera at %v -> %v", cam.Position, cam.Target)
	}
	if ctl.Update() {
		t.Error("pending motion survived Reset")
	}
}
