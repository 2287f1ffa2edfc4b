package component

import "github.com/milk9111/stealth/collider"

// CollisionLayer assigns the gameplay layer of an entity's colliders. The
// physics system turns it into a shape filter and tags every shape with it.
type CollisionLayer struct {
	Layer collider.Layer
}

var CollisionLayerComponent = NewComponent[CollisionLayer]()
