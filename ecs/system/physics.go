package system

import (
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/vrlocomotion/common"
	"github.com/milk9111/vrlocomotion/ecs"
	"github.com/milk9111/vrlocomotion/ecs/component"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypePlayer
	collisionTypeBody
	collisionTypeTrigger
)

// Shape filter categories. Raycasts exclude categories through their mask.
const (
	CategoryWorld uint = 1 << iota
	CategoryPlayer
	CategoryPickup
	CategoryTrigger
)

const (
	defaultWallHeight = 3.0
	// floorRetention is the fraction of planar velocity a body resting on
	// the floor keeps after one second of sliding.
	floorRetention = 0.05
	defaultGravity = 9.81
)

// RayHit is the nearest intersection of a ray with the scene. Entity is zero
// when the floor was hit.
type RayHit struct {
	Entity   ecs.Entity
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
}

// Raycaster answers forward ray queries against the physical scene.
type Raycaster interface {
	Raycast(w *ecs.World, origin, dir mgl64.Vec3, maxDist float64, exclude uint) (RayHit, bool)
}

// BodyController is the subset of physics the controllers drive directly.
type BodyController interface {
	SetKinematic(w *ecs.World, e ecs.Entity, kinematic bool)
	SetVelocity(w *ecs.World, e ecs.Entity, v mgl64.Vec3)
	Teleport(w *ecs.World, e ecs.Entity, pos mgl64.Vec3)
}

// PhysicsSystem owns the Chipmunk space. The cp plane is the world floor:
// cp X is world X and cp Y is world Z. Heights live on the Transform.
type PhysicsSystem struct {
	space         *cp.Space
	handlersReady bool

	entities map[ecs.Entity]*bodyInfo
	shapes   map[*cp.Shape]ecs.Entity
	enters   []ecs.TriggerEnterEvent
}

type bodyInfo struct {
	body      *cp.Body
	shapes    []*cp.Shape
	static    bool
	kinematic bool
	// airborne mirrors VerticalMotion.Airborne; floor friction only acts on
	// landed bodies.
	airborne bool
	filter   cp.ShapeFilter
	// bounds walls only
	wallHeight float64
}

func NewPhysicsSystem() *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})
	return &PhysicsSystem{
		space:    space,
		entities: make(map[ecs.Entity]*bodyInfo),
		shapes:   make(map[*cp.Shape]ecs.Entity),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil || ps.space == nil {
		return
	}

	ps.ensureHandlers()
	ps.Sync(w)
	ps.pushKinematic(w)

	dt := w.Clock().FixedDelta()
	if dt <= 0 {
		return
	}
	ps.space.Step(dt)

	ps.syncTransforms(w)
	ps.integrateVertical(w, dt)
	ps.flushEnters(w)
}

// Sync creates cp bodies for new PhysicsBody entities and releases the ones
// whose entity died. Controllers call it before querying freshly spawned
// entities; Update calls it every step.
func (ps *PhysicsSystem) Sync(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	ps.cleanupEntities(w)
	ps.syncWorldBounds(w)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if info := ps.entities[e]; info != nil {
			bodyComp.Body = info.body
			if len(info.shapes) > 0 {
				bodyComp.Shape = info.shapes[0]
			}
			return
		}

		info := ps.createBodyInfo(e, transform, bodyComp, ecs.Has(w, e, component.PlayerTagComponent.Kind()), ecs.Has(w, e, component.PickupTagComponent.Kind()))
		if info == nil {
			return
		}
		if vm, ok := ecs.Get(w, e, component.VerticalMotionComponent.Kind()); ok {
			info.airborne = vm.Airborne
		}
		ps.entities[e] = info
		bodyComp.Body = info.body
		bodyComp.Shape = info.shapes[0]
	})
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}

	for _, other := range []cp.CollisionType{collisionTypeBody, collisionTypePlayer} {
		handler := ps.space.NewCollisionHandler(other, collisionTypeTrigger)
		handler.UserData = ps
		handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
			sys, ok := userData.(*PhysicsSystem)
			if !ok || sys == nil {
				return true
			}
			shapeA, shapeB := arb.Shapes()
			otherEnt, okA := sys.shapes[shapeA]
			triggerEnt, okB := sys.shapes[shapeB]
			if !okA || !okB {
				return true
			}
			sys.enters = append(sys.enters, ecs.TriggerEnterEvent{Trigger: triggerEnt, Other: otherEnt})
			return true
		}
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) createBodyInfo(e ecs.Entity, transform *component.Transform, bodyComp *component.PhysicsBody, isPlayer, isPickup bool) *bodyInfo {
	if ps.space == nil {
		return nil
	}

	kind := bodyComp.Kind
	if kind == "" {
		kind = component.ShapeBox
		if bodyComp.Radius > 0 {
			kind = component.ShapeCircle
		}
	}
	width, depth, radius := bodyComp.Width, bodyComp.Depth, bodyComp.Radius
	if kind == component.ShapeCircle && radius <= 0 {
		radius = 0.5
	}
	if kind == component.ShapeBox && (width <= 0 || depth <= 0) {
		width, depth = 1, 1
	}

	center := cp.Vector{X: transform.Position.X(), Y: transform.Position.Z()}
	angle := -mgl64.DegToRad(common.YawOf(transform.Rotation))

	filter := cp.ShapeFilter{Group: cp.NO_GROUP, Categories: CategoryWorld, Mask: cp.ALL_CATEGORIES}
	collisionType := collisionTypeSolid
	switch {
	case bodyComp.Sensor:
		filter.Categories = CategoryTrigger
		collisionType = collisionTypeTrigger
	case isPlayer:
		filter.Categories = CategoryPlayer
		collisionType = collisionTypePlayer
	case isPickup:
		filter.Categories = CategoryPickup
		collisionType = collisionTypeBody
	case !bodyComp.Static:
		collisionType = collisionTypeBody
	}

	info := &bodyInfo{static: bodyComp.Static}

	if bodyComp.Static {
		var shape *cp.Shape
		if kind == component.ShapeCircle {
			shape = cp.NewCircle(ps.space.StaticBody, radius, center)
		} else {
			bb := cp.BB{L: center.X - width/2, B: center.Y - depth/2, R: center.X + width/2, T: center.Y + depth/2}
			shape = cp.NewBox2(ps.space.StaticBody, bb, 0)
		}
		ps.finishShape(shape, bodyComp, filter, collisionType)
		ps.space.AddShape(shape)
		ps.shapes[shape] = e

		info.body = ps.space.StaticBody
		info.shapes = []*cp.Shape{shape}
		return info
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}

	var moment float64
	if kind == component.ShapeCircle {
		moment = cp.MomentForCircle(mass, 0, radius, cp.Vector{})
	} else {
		moment = cp.MomentForBox(mass, width, depth)
	}
	if bodyComp.FixedRotation {
		moment = math.Inf(1)
	}

	body := cp.NewBody(mass, moment)
	body.SetPosition(center)
	body.SetAngle(angle)

	var shape *cp.Shape
	if kind == component.ShapeCircle {
		shape = cp.NewCircle(body, radius, cp.Vector{})
	} else {
		shape = cp.NewBox(body, width, depth, 0)
	}
	ps.finishShape(shape, bodyComp, filter, collisionType)

	if isPlayer {
		// The player body only moves by the velocity locomotion assigns.
		body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
			cp.BodyUpdateVelocity(body, cp.Vector{}, 1, dt)
		})
	} else {
		body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
			retention := 1.0
			if !info.airborne {
				retention = math.Pow(floorRetention, dt)
			}
			cp.BodyUpdateVelocity(body, cp.Vector{}, retention, dt)
		})
	}

	ps.space.AddBody(body)
	ps.space.AddShape(shape)
	ps.shapes[shape] = e

	info.body = body
	info.shapes = []*cp.Shape{shape}
	info.filter = filter
	if bodyComp.Kinematic {
		ps.applyKinematic(info, true)
	}
	return info
}

func (ps *PhysicsSystem) finishShape(shape *cp.Shape, bodyComp *component.PhysicsBody, filter cp.ShapeFilter, collisionType cp.CollisionType) {
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetSensor(bodyComp.Sensor)
	shape.SetCollisionType(collisionType)
	shape.SetFilter(filter)
}

func (ps *PhysicsSystem) syncWorldBounds(w *ecs.World) {
	boundsEntity, ok := ecs.First(w, component.ArenaBoundsComponent.Kind())
	if !ok {
		return
	}
	if _, exists := ps.entities[boundsEntity]; exists {
		return
	}
	bounds, ok := ecs.Get(w, boundsEntity, component.ArenaBoundsComponent.Kind())
	if !ok || bounds.Width <= 0 || bounds.Depth <= 0 {
		return
	}

	wallHeight := bounds.WallHeight
	if wallHeight <= 0 {
		wallHeight = defaultWallHeight
	}

	worldW, worldD := bounds.Width, bounds.Depth
	thickness := 0.05
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: worldW, Y: 0}},           // south
		{a: cp.Vector{X: 0, Y: worldD}, b: cp.Vector{X: worldW, Y: worldD}}, // north
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: worldD}},           // west
		{a: cp.Vector{X: worldW, Y: 0}, b: cp.Vector{X: worldW, Y: worldD}}, // east
	}

	info := &bodyInfo{static: true, body: ps.space.StaticBody, wallHeight: wallHeight}
	for _, seg := range segments {
		shape := cp.NewSegment(ps.space.StaticBody, seg.a, seg.b, thickness)
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeSolid)
		shape.SetFilter(cp.ShapeFilter{Group: cp.NO_GROUP, Categories: CategoryWorld, Mask: cp.ALL_CATEGORIES})
		ps.space.AddShape(shape)
		ps.shapes[shape] = boundsEntity
		info.shapes = append(info.shapes, shape)
	}

	ps.entities[boundsEntity] = info
	log.Printf("physics: arena bounds %.1fx%.1f", worldW, worldD)
}

// pushKinematic copies controller-driven transforms into kinematic bodies.
func (ps *PhysicsSystem) pushKinematic(w *ecs.World) {
	for e, info := range ps.entities {
		if !info.kinematic || info.body == nil {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		info.body.SetPosition(cp.Vector{X: transform.Position.X(), Y: transform.Position.Z()})
		info.body.SetAngle(-mgl64.DegToRad(common.YawOf(transform.Rotation)))
	}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, info := range ps.entities {
		if info.static || info.kinematic || info.body == nil {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		pos := info.body.Position()
		transform.Position = mgl64.Vec3{pos.X, transform.Position.Y(), pos.Y}
		if !ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
			transform.Rotation = common.YawRotation(-mgl64.RadToDeg(info.body.Angle()))
		}
	}
}

func (ps *PhysicsSystem) integrateVertical(w *ecs.World, dt float64) {
	ecs.ForEach2(w, component.VerticalMotionComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, vm *component.VerticalMotion, transform *component.Transform) {
		info := ps.entities[e]
		if info != nil {
			info.airborne = vm.Airborne
		}
		if !vm.Airborne {
			return
		}
		if info != nil && info.kinematic {
			return
		}
		g := vm.Gravity
		if g <= 0 {
			g = defaultGravity
		}
		vm.Velocity -= g * dt
		y := transform.Position.Y() + vm.Velocity*dt
		if y <= vm.Rest {
			y = vm.Rest
			vm.Velocity = 0
			vm.Airborne = false
			if info != nil {
				info.airborne = false
			}
		}
		transform.Position[1] = y
	})
}

func (ps *PhysicsSystem) flushEnters(w *ecs.World) {
	if len(ps.enters) == 0 {
		return
	}
	for _, evt := range ps.enters {
		if !ecs.IsAlive(w, evt.Trigger) || !ecs.IsAlive(w, evt.Other) {
			continue
		}
		w.Events().Push(ecs.Event{Type: ecs.EventTriggerEnter, Data: evt})
	}
	ps.enters = ps.enters[:0]
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if ecs.IsAlive(w, e) && (ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) || ecs.Has(w, e, component.ArenaBoundsComponent.Kind())) {
			continue
		}

		for _, shape := range info.shapes {
			if shape == nil {
				continue
			}
			ps.space.RemoveShape(shape)
			delete(ps.shapes, shape)
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
	}
}

// SetKinematic suspends (true) or resumes (false) dynamics simulation of e.
func (ps *PhysicsSystem) SetKinematic(w *ecs.World, e ecs.Entity, kinematic bool) {
	if ps == nil {
		return
	}
	info := ps.entities[e]
	if info == nil || info.static || info.body == nil {
		return
	}
	ps.applyKinematic(info, kinematic)
	if bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
		bodyComp.Kinematic = kinematic
	}
}

// applyKinematic switches the body type. Kinematic bodies do not collide with
// the player.
func (ps *PhysicsSystem) applyKinematic(info *bodyInfo, kinematic bool) {
	filter := info.filter
	if kinematic {
		info.body.SetType(cp.BODY_KINEMATIC)
		filter.Mask &^= CategoryPlayer
	} else {
		info.body.SetType(cp.BODY_DYNAMIC)
	}
	for _, shape := range info.shapes {
		shape.SetFilter(filter)
	}
	info.kinematic = kinematic
}

// SetVelocity sets the planar velocity of e's body and, when the entity has
// vertical motion, its vertical velocity.
func (ps *PhysicsSystem) SetVelocity(w *ecs.World, e ecs.Entity, v mgl64.Vec3) {
	if ps == nil {
		return
	}
	info := ps.entities[e]
	if info == nil || info.static || info.body == nil {
		return
	}
	info.body.SetVelocityVector(cp.Vector{X: v.X(), Y: v.Z()})

	vm, ok := ecs.Get(w, e, component.VerticalMotionComponent.Kind())
	if !ok {
		return
	}
	transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	vm.Velocity = v.Y()
	vm.Airborne = vm.Velocity > 0 || transform.Position.Y() > vm.Rest
	info.airborne = vm.Airborne
}

// Teleport moves e and its body to pos without sweeping.
func (ps *PhysicsSystem) Teleport(w *ecs.World, e ecs.Entity, pos mgl64.Vec3) {
	transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	transform.Position = pos
	if ps == nil {
		return
	}
	if info := ps.entities[e]; info != nil && !info.static && info.body != nil {
		info.body.SetPosition(cp.Vector{X: pos.X(), Y: pos.Z()})
	}
}

// Raycast casts a ray from origin along dir against the floor plane and every
// non-sensor body whose category is not excluded. The player category is
// always excluded so a ray starting inside the player's capsule is usable.
func (ps *PhysicsSystem) Raycast(w *ecs.World, origin, dir mgl64.Vec3, maxDist float64, exclude uint) (RayHit, bool) {
	if ps == nil || w == nil || ps.space == nil || maxDist <= 0 {
		return RayHit{}, false
	}
	dir = common.SafeNormalize(dir)
	if dir.Len() == 0 {
		return RayHit{}, false
	}
	exclude |= CategoryPlayer

	best := RayHit{Distance: math.Inf(1)}
	tMax := maxDist
	floorHit := false
	if dir.Y() < -1e-9 {
		if t := (common.FloorY - origin.Y()) / dir.Y(); t >= 0 && t <= maxDist {
			tMax = t
			floorHit = true
		}
	}

	start := cp.Vector{X: origin.X(), Y: origin.Z()}
	end := cp.Vector{X: origin.X() + dir.X()*tMax, Y: origin.Z() + dir.Z()*tMax}
	if start.Distance(end) > 1e-9 {
		filter := cp.ShapeFilter{Group: cp.NO_GROUP, Categories: cp.ALL_CATEGORIES, Mask: cp.ALL_CATEGORIES &^ exclude}
		ps.space.SegmentQuery(start, end, 0, filter, func(shape *cp.Shape, point, normal cp.Vector, alpha float64, data interface{}) {
			if shape.Sensor() {
				return
			}
			e, ok := ps.shapes[shape]
			if !ok {
				return
			}
			bottom, top, ok := ps.verticalExtent(w, e)
			if !ok {
				return
			}
			t := alpha * tMax
			y := origin.Y() + dir.Y()*t
			hitNormal := mgl64.Vec3{normal.X, 0, normal.Y}
			if y > top {
				// Entered the footprint above the body; it can still land on the top face.
				if dir.Y() >= 0 {
					return
				}
				t = (top - origin.Y()) / dir.Y()
				if t < 0 || t > tMax {
					return
				}
				p := origin.Add(dir.Mul(t))
				if shape.PointQuery(cp.Vector{X: p.X(), Y: p.Z()}).Distance > 1e-9 {
					return
				}
				hitNormal = common.Up
			} else if y < bottom {
				return
			}
			if t < best.Distance {
				best = RayHit{Entity: e, Point: origin.Add(dir.Mul(t)), Normal: hitNormal, Distance: t}
			}
		}, nil)
	}

	if best.Entity.Valid() {
		return best, true
	}
	if floorHit {
		p := origin.Add(dir.Mul(tMax))
		p[1] = common.FloorY
		return RayHit{Point: p, Normal: common.Up, Distance: tMax}, true
	}
	return RayHit{}, false
}

func (ps *PhysicsSystem) verticalExtent(w *ecs.World, e ecs.Entity) (float64, float64, bool) {
	if info := ps.entities[e]; info != nil && info.wallHeight > 0 {
		return common.FloorY, common.FloorY + info.wallHeight, true
	}
	transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return 0, 0, false
	}
	bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok {
		return 0, 0, false
	}
	h := bodyComp.Height
	if h <= 0 {
		h = 1
	}
	y := transform.Position.Y()
	return y - h/2, y + h/2, true
}
