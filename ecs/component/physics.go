package component

import "github.com/jakecoffman/cp"

// Shape kinds of a PhysicsBody footprint on the floor plane.
const (
	ShapeBox    = "box"
	ShapeCircle = "circle"
)

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// The collider is a footprint on the X/Z plane extruded Height along Y,
// centered on the Transform.
type PhysicsBody struct {
	Body  *cp.Body
	Shape *cp.Shape

	Kind       string
	Width      float64
	Depth      float64
	Radius     float64
	Height     float64
	Mass       float64
	Friction   float64
	Elasticity float64
	Static     bool
	Sensor     bool
	Kinematic  bool
	// FixedRotation stops contacts from spinning the body.
	FixedRotation bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// VerticalMotion integrates the Y axis of a dynamic body that has left the
// floor, e.g. a thrown box.
type VerticalMotion struct {
	Velocity float64
	Gravity  float64
	// Rest is the Y of the body center when resting on the floor.
	Rest     float64
	Airborne bool
}

var VerticalMotionComponent = NewComponent[VerticalMotion]()

// ArenaBounds encloses the floor rectangle [0,Width] x [0,Depth] with walls.
type ArenaBounds struct {
	Width      float64
	Depth      float64
	WallHeight float64
}

var ArenaBoundsComponent = NewComponent[ArenaBounds]()
