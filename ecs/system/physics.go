package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/stealth/collider"
	"github.com/milk9111/stealth/common"
	"github.com/milk9111/stealth/ecs"
	"github.com/milk9111/stealth/ecs/component"
	"github.com/milk9111/stealth/logger"
	"go.uber.org/zap"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypePlayerGround
	collisionTypeSolid
	collisionTypeTrigger
)

const (
	wallNone  = 0
	wallLeft  = 1
	wallRight = 2
)

const groundGraceFrames = 6

type PhysicsSystem struct {
	space         *cp.Space
	handlersReady bool
	log           *zap.Logger

	entities     map[ecs.Entity]*bodyInfo
	playerShapes map[*cp.Shape]ecs.Entity
	groundShapes map[*cp.Shape]ecs.Entity
	playerStates map[ecs.Entity]*playerContactState

	// pending trigger transitions collected during the step
	triggerEvents []ecs.Event
}

type bodyInfo struct {
	body      *cp.Body
	mainShape *cp.Shape
	shapes    []*cp.Shape
	static    bool
}

type playerContactState struct {
	grounded         bool
	groundGrace      int
	wall             int
	wallClimbable    bool
	ceiling          bool
	ceilingClimbable bool
	enemy            bool
}

func newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: common.Gravity})
	return space
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{
		space:        newSpace(),
		log:          logger.Named("physics"),
		entities:     make(map[ecs.Entity]*bodyInfo),
		playerShapes: make(map[*cp.Shape]ecs.Entity),
		groundShapes: make(map[*cp.Shape]ecs.Entity),
		playerStates: make(map[ecs.Entity]*playerContactState),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.space == nil {
		ps.space = newSpace()
		ps.handlersReady = false
	}

	ps.ensureHandlers()
	ps.syncEntities(w)
	ps.syncWorldBounds(w)

	// Physics runs in frame units; time dilation slows the step.
	step := 1.0
	if clock := clockOf(w); clock != nil {
		step = clock.Scale
	}
	if step <= 0 {
		// Frozen: contacts from the last step stay valid until time moves again.
		ps.syncTransforms(w)
		return
	}

	ps.resetPlayerContacts(w)
	ps.space.Step(step)
	ps.syncTransforms(w)
	ps.flushPlayerContacts(w)
	ps.flushTriggerEvents(w)
}

func (ps *PhysicsSystem) playerOf(arb *cp.Arbiter, shapes map[*cp.Shape]ecs.Entity) (ecs.Entity, *cp.Shape, cp.Vector, bool) {
	shapeA, shapeB := arb.Shapes()
	n := arb.Normal()
	if e, ok := shapes[shapeA]; ok {
		return e, shapeB, n, true
	}
	if e, ok := shapes[shapeB]; ok {
		return e, shapeA, n.Neg(), true
	}
	return 0, nil, n, false
}

func (ps *PhysicsSystem) contactState(e ecs.Entity) *playerContactState {
	st := ps.playerStates[e]
	if st == nil {
		st = &playerContactState{}
		ps.playerStates[e] = st
	}
	return st
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}

	solidHandler := ps.space.NewCollisionHandler(collisionTypePlayer, collisionTypeSolid)
	solidHandler.UserData = ps
	solidHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		player, other, n, ok := sys.playerOf(arb, sys.playerShapes)
		if !ok {
			return true
		}
		st := sys.contactState(player)

		if collider.IsEnemy(other) {
			st.enemy = true
			return true
		}
		if !collider.IsGeometry(other) {
			return true
		}

		climbable := false
		if tile, ok := collider.TileMetadata(other); ok {
			climbable = tile.Climbable
		}
		switch {
		case n.X < -0.5:
			st.wall = wallLeft
			st.wallClimbable = climbable
		case n.X > 0.5:
			st.wall = wallRight
			st.wallClimbable = climbable
		case n.Y < -0.5:
			st.ceiling = true
			st.ceilingClimbable = climbable
		}
		return true
	}

	groundHandler := ps.space.NewCollisionHandler(collisionTypePlayerGround, collisionTypeSolid)
	groundHandler.UserData = ps
	groundHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		player, other, n, ok := sys.playerOf(arb, sys.groundShapes)
		if !ok || !collider.IsGeometry(other) {
			return true
		}
		// The contact normal points from the player down into the ground
		// (positive Y in screen-down coordinates).
		if n.Y <= 0.5 {
			return true
		}
		st := sys.contactState(player)
		st.grounded = true
		st.groundGrace = groundGraceFrames
		return true
	}

	triggerHandler := ps.space.NewCollisionHandler(collisionTypePlayer, collisionTypeTrigger)
	triggerHandler.UserData = ps
	triggerHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		if sys, ok := userData.(*PhysicsSystem); ok && sys != nil {
			sys.queueTrigger(arb, ecs.EventTriggerEnter)
		}
		return true
	}
	triggerHandler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		if sys, ok := userData.(*PhysicsSystem); ok && sys != nil {
			sys.queueTrigger(arb, ecs.EventTriggerExit)
		}
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) queueTrigger(arb *cp.Arbiter, typ string) {
	player, other, _, ok := ps.playerOf(arb, ps.playerShapes)
	if !ok {
		return
	}
	owner, ok := collider.Owner(other)
	if !ok {
		return
	}
	trigger, ok := owner.Ref.(ecs.Entity)
	if !ok {
		return
	}
	ps.triggerEvents = append(ps.triggerEvents, ecs.Event{
		Type: typ,
		Data: ecs.TriggerEvent{Entity: player, Trigger: trigger},
	})
}

func (ps *PhysicsSystem) flushTriggerEvents(w *ecs.World) {
	for _, evt := range ps.triggerEvents {
		w.Events().Push(evt)
	}
	ps.triggerEvents = ps.triggerEvents[:0]
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	entities := w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind())
	for _, e := range entities {
		if _, exists := ps.entities[e]; exists {
			continue
		}
		bodyComp, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		transform, _ := ecs.Get(w, e, component.TransformComponent.Kind())

		layer := collider.LayerDefault
		if cl, ok := ecs.Get(w, e, component.CollisionLayerComponent.Kind()); ok {
			layer = cl.Layer
		}
		obj := &collider.Object{Layer: layer, Ref: e}
		if name, ok := ecs.Get(w, e, component.NameComponent.Kind()); ok {
			obj.Name = name.Value
		}
		if td, ok := ecs.Get(w, e, component.TileDataComponent.Kind()); ok {
			obj.Tile = td.Data
		}

		isPlayer := ecs.Has(w, e, component.PlayerTagComponent.Kind())
		info := ps.createBodyInfo(transform, bodyComp, obj, isPlayer)
		if info == nil {
			continue
		}
		ps.entities[e] = info
		if isPlayer {
			ps.playerShapes[info.mainShape] = e
			if len(info.shapes) > 1 {
				ps.groundShapes[info.shapes[1]] = e
			}
		}
		bodyComp.Body = info.body
		bodyComp.Shape = info.mainShape
		ps.log.Debug("body created",
			zap.Stringer("entity", e),
			zap.Stringer("layer", layer),
			zap.Bool("static", bodyComp.Static),
		)
	}
}

// createBodyInfo builds a body whose box is anchored at the transform's
// top-left corner.
func (ps *PhysicsSystem) createBodyInfo(transform *component.Transform, bodyComp *component.PhysicsBody, obj *collider.Object, isPlayer bool) *bodyInfo {
	width := bodyComp.Width
	height := bodyComp.Height
	if width <= 0 || height <= 0 {
		width = 32
		height = 32
	}

	info := &bodyInfo{static: bodyComp.Static}
	collisionType := collisionTypeSolid
	if bodyComp.Sensor {
		collisionType = collisionTypeTrigger
	}

	if bodyComp.Static {
		bb := cp.BB{L: transform.X, T: transform.Y + height, R: transform.X + width, B: transform.Y}
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetFriction(bodyComp.Friction)
		shape.SetElasticity(bodyComp.Elasticity)
		shape.SetCollisionType(collisionType)
		shape.SetSensor(bodyComp.Sensor)
		collider.Attach(shape, obj)
		ps.space.AddShape(shape)

		info.body = ps.space.StaticBody
		info.mainShape = shape
		info.shapes = []*cp.Shape{shape}
		return info
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}

	// Characters never rotate.
	moment := cp.INFINITY
	if !isPlayer {
		moment = cp.MomentForBox(mass, width, height)
	}
	body := cp.NewBody(mass, moment)
	body.SetPosition(cp.Vector{X: transform.X + width/2, Y: transform.Y + height/2})
	if bodyComp.NoGravity {
		body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
			cp.BodyUpdateVelocity(body, cp.Vector{}, damping, dt)
		})
	}

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetCollisionType(collisionType)
	if isPlayer {
		shape.SetCollisionType(collisionTypePlayer)
	}
	collider.Attach(shape, obj)

	ps.space.AddBody(body)
	ps.space.AddShape(shape)

	info.body = body
	info.mainShape = shape
	info.shapes = []*cp.Shape{shape}

	if isPlayer {
		ground := createGroundSensor(body, width, height, obj)
		ps.space.AddShape(ground)
		info.shapes = append(info.shapes, ground)
	}
	return info
}

func createGroundSensor(body *cp.Body, width, height float64, obj *collider.Object) *cp.Shape {
	groundBB := cp.BB{
		L: -width * 0.45,
		B: height / 2.0,
		R: width * 0.45,
		T: height/2.0 + 2,
	}
	ground := cp.NewBox2(body, groundBB, 0)
	ground.SetSensor(true)
	ground.SetCollisionType(collisionTypePlayerGround)
	collider.Attach(ground, obj)
	return ground
}

func (ps *PhysicsSystem) syncWorldBounds(w *ecs.World) {
	boundsEntity, ok := w.First(component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	if _, exists := ps.entities[boundsEntity]; exists {
		return
	}
	bounds, _ := ecs.Get(w, boundsEntity, component.LevelBoundsComponent.Kind())
	worldW := bounds.Width
	worldH := bounds.Height
	if worldW <= 0 || worldH <= 0 {
		return
	}

	obj := &collider.Object{Name: "bounds", Layer: collider.LayerGeometry, Ref: boundsEntity}
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: worldW, Y: 0}},           // top
		{a: cp.Vector{X: 0, Y: worldH}, b: cp.Vector{X: worldW, Y: worldH}}, // bottom
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: worldH}},           // left
		{a: cp.Vector{X: worldW, Y: 0}, b: cp.Vector{X: worldW, Y: worldH}}, // right
	}

	info := &bodyInfo{static: true, body: ps.space.StaticBody}
	for _, seg := range segments {
		shape := cp.NewSegment(ps.space.StaticBody, seg.a, seg.b, 1)
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeSolid)
		collider.Attach(shape, obj)
		ps.space.AddShape(shape)
		info.shapes = append(info.shapes, shape)
	}
	ps.entities[boundsEntity] = info
}

func (ps *PhysicsSystem) resetPlayerContacts(w *ecs.World) {
	players := w.Query(component.PlayerCollisionComponent.Kind())
	seen := make(map[ecs.Entity]struct{}, len(players))
	for _, e := range players {
		seen[e] = struct{}{}
		pc, _ := ecs.Get(w, e, component.PlayerCollisionComponent.Kind())
		st := ps.contactState(e)
		*st = playerContactState{groundGrace: pc.GroundGrace}
		if st.groundGrace > 0 {
			st.groundGrace--
		}
	}

	for e := range ps.playerStates {
		if _, ok := seen[e]; !ok {
			delete(ps.playerStates, e)
		}
	}
}

func (ps *PhysicsSystem) flushPlayerContacts(w *ecs.World) {
	for e, st := range ps.playerStates {
		pc, ok := ecs.Get(w, e, component.PlayerCollisionComponent.Kind())
		if !ok {
			continue
		}
		if st.grounded {
			if player, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok && player.CoyoteFrames > 0 {
				st.groundGrace = player.CoyoteFrames
			}
		}
		pc.Grounded = st.grounded
		pc.GroundGrace = st.groundGrace
		pc.Wall = st.wall
		pc.WallClimbable = st.wallClimbable
		pc.Ceiling = st.ceiling
		pc.CeilingClimbable = st.ceilingClimbable
		pc.Enemy = st.enemy
	}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if bodyComp.Body == nil || bodyComp.Static {
			return
		}
		pos := bodyComp.Body.Position()
		transform.X = pos.X - bodyComp.Width/2.0
		transform.Y = pos.Y - bodyComp.Height/2.0
		transform.Rotation = bodyComp.Body.Angle()
	})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && (ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) || ecs.Has(w, e, component.LevelBoundsComponent.Kind())) {
			continue
		}

		for _, shape := range info.shapes {
			ps.space.RemoveShape(shape)
			delete(ps.playerShapes, shape)
			delete(ps.groundShapes, shape)
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}

		delete(ps.entities, e)
		delete(ps.playerStates, e)
	}
}

func clockOf(w *ecs.World) *component.Clock {
	e, ok := w.First(component.ClockComponent.Kind())
	if !ok {
		return nil
	}
	clock, _ := ecs.Get(w, e, component.ClockComponent.Kind())
	return clock
}
