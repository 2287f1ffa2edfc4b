package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/stealth/collider"
	"github.com/milk9111/stealth/ecs"
	"github.com/milk9111/stealth/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addSolid(t *testing.T, w *ecs.World, x, y, width, height float64, layer collider.Layer, tile *collider.TileData) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}))
	require.NoError(t, ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width: width, Height: height, Static: true, Friction: 0.8,
	}))
	require.NoError(t, ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{Layer: layer}))
	if tile != nil {
		require.NoError(t, ecs.Add(w, e, component.TileDataComponent.Kind(), &component.TileData{Data: tile}))
	}
	return e
}

func addPlayer(t *testing.T, w *ecs.World, x, y float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}))
	require.NoError(t, ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: 20, Height: 36, Mass: 1}))
	require.NoError(t, ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{Layer: collider.LayerCharacterObjects}))
	require.NoError(t, ecs.Add(w, e, component.PlayerCollisionComponent.Kind(), &component.PlayerCollision{}))
	return e
}

func stepWith(ps *PhysicsSystem, w *ecs.World, player ecs.Entity, frames int, vel func() cp.Vector) {
	for i := 0; i < frames; i++ {
		if vel != nil {
			if body, ok := ecs.Get(w, player, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
				body.Body.SetVelocityVector(vel())
			}
		}
		ps.Update(w)
	}
}

func TestPhysicsLandsOnGround(t *testing.T) {
	w := ecs.NewWorld()
	addSolid(t, w, 0, 300, 400, 40, collider.LayerGeometry, nil)
	player := addPlayer(t, w, 100, 200)

	ps := NewPhysicsSystem()
	stepWith(ps, w, player, 120, nil)

	pc, _ := ecs.Get(w, player, component.PlayerCollisionComponent.Kind())
	assert.True(t, pc.Grounded)
	assert.Positive(t, pc.GroundGrace)
	assert.Equal(t, wallNone, pc.Wall)
	assert.False(t, pc.Ceiling)

	transform, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	assert.InDelta(t, 300-36, transform.Y, 1.5)
}

func TestPhysicsClassifiesWallContact(t *testing.T) {
	cases := []struct {
		name      string
		tile      *collider.TileData
		climbable bool
	}{
		{"climbable_metal", &collider.TileData{Surface: collider.SurfaceMetal, Climbable: true}, true},
		{"plain_wall", &collider.TileData{Surface: collider.SurfaceDefault}, false},
		{"no_tile_data", nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			addSolid(t, w, 0, 300, 400, 40, collider.LayerGeometry, nil)
			addSolid(t, w, 0, 0, 40, 300, collider.LayerGeometry, tc.tile)
			player := addPlayer(t, w, 60, 264)

			ps := NewPhysicsSystem()
			ps.Update(w)
			stepWith(ps, w, player, 30, func() cp.Vector { return cp.Vector{X: -2, Y: 0} })

			pc, _ := ecs.Get(w, player, component.PlayerCollisionComponent.Kind())
			assert.Equal(t, wallLeft, pc.Wall)
			assert.Equal(t, tc.climbable, pc.WallClimbable)
		})
	}
}

func TestPhysicsClassifiesCeilingContact(t *testing.T) {
	w := ecs.NewWorld()
	addSolid(t, w, 0, 100, 400, 20, collider.LayerGeometry, &collider.TileData{Surface: collider.SurfaceVent, Climbable: true})
	player := addPlayer(t, w, 100, 130)

	ps := NewPhysicsSystem()
	ps.Update(w)
	stepWith(ps, w, player, 20, func() cp.Vector { return cp.Vector{X: 0, Y: -3} })

	pc, _ := ecs.Get(w, player, component.PlayerCollisionComponent.Kind())
	assert.True(t, pc.Ceiling)
	assert.True(t, pc.CeilingClimbable)
	assert.False(t, pc.Grounded)
}

func TestPhysicsFlagsEnemyContact(t *testing.T) {
	w := ecs.NewWorld()
	addSolid(t, w, 0, 300, 400, 40, collider.LayerGeometry, nil)
	player := addPlayer(t, w, 100, 264)

	enemy := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, enemy, component.TransformComponent.Kind(), &component.Transform{X: 130, Y: 252}))
	require.NoError(t, ecs.Add(w, enemy, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: 24, Height: 48, Mass: 4}))
	require.NoError(t, ecs.Add(w, enemy, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{Layer: collider.LayerEnemy}))

	ps := NewPhysicsSystem()
	ps.Update(w)
	stepWith(ps, w, player, 30, func() cp.Vector { return cp.Vector{X: 2, Y: 0} })

	pc, _ := ecs.Get(w, player, component.PlayerCollisionComponent.Kind())
	assert.True(t, pc.Enemy)
	assert.Equal(t, wallNone, pc.Wall)
}

func TestPhysicsTriggerEnterEvent(t *testing.T) {
	w := ecs.NewWorld()
	player := addPlayer(t, w, 100, 100)

	cue := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, cue, component.TransformComponent.Kind(), &component.Transform{X: 80, Y: 80}))
	require.NoError(t, ecs.Add(w, cue, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: 80, Height: 80, Static: true, Sensor: true}))
	require.NoError(t, ecs.Add(w, cue, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{Layer: collider.LayerTrigger}))

	ps := NewPhysicsSystem()
	ps.Update(w)
	ps.Update(w)

	events := w.Events().Take(ecs.EventTriggerEnter)
	require.Len(t, events, 1)
	te, ok := events[0].Data.(ecs.TriggerEvent)
	require.True(t, ok)
	assert.Equal(t, player, te.Entity)
	assert.Equal(t, cue, te.Trigger)
}

func TestPhysicsAttachesClassification(t *testing.T) {
	w := ecs.NewWorld()
	floor := addSolid(t, w, 0, 300, 400, 40, collider.LayerGeometry, &collider.TileData{Surface: collider.SurfaceGlass})
	player := addPlayer(t, w, 100, 200)

	ps := NewPhysicsSystem()
	ps.Update(w)

	playerBody, _ := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
	require.NotNil(t, playerBody.Shape)
	assert.True(t, collider.IsPlayer(playerBody.Shape))

	floorBody, _ := ecs.Get(w, floor, component.PhysicsBodyComponent.Kind())
	require.NotNil(t, floorBody.Shape)
	assert.True(t, collider.IsGeometry(floorBody.Shape))
	tile, ok := collider.TileMetadata(floorBody.Shape)
	require.True(t, ok)
	assert.Equal(t, collider.SurfaceGlass, tile.Surface)

	owner, ok := collider.Owner(floorBody.Shape)
	require.True(t, ok)
	assert.Equal(t, floor, owner.Ref)
}

func TestPhysicsPausedClockHoldsBodies(t *testing.T) {
	w := ecs.NewWorld()
	player := addPlayer(t, w, 100, 100)
	clock := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, clock, component.ClockComponent.Kind(), &component.Clock{Delta: 1.0 / 60, Scale: 0}))

	ps := NewPhysicsSystem()
	for i := 0; i < 10; i++ {
		ps.Update(w)
	}
	transform, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	assert.InDelta(t, 100, transform.Y, 1e-9)
}

func TestPhysicsCleansUpDestroyedEntities(t *testing.T) {
	w := ecs.NewWorld()
	player := addPlayer(t, w, 100, 100)

	ps := NewPhysicsSystem()
	ps.Update(w)
	require.Len(t, ps.entities, 1)
	require.Len(t, ps.playerShapes, 1)

	require.True(t, w.DestroyEntity(player))
	ps.Update(w)
	assert.Empty(t, ps.entities)
	assert.Empty(t, ps.playerShapes)
	assert.Empty(t, ps.groundShapes)
	assert.Empty(t, ps.playerStates)
}
