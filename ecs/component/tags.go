package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

type FocalPointTag struct{}

var FocalPointTagComponent = NewComponent[FocalPointTag]()

type EnemyTag struct{}

var EnemyTagComponent = NewComponent[EnemyTag]()

// Name labels an entity so specs and scripts can refer to it.
type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()
