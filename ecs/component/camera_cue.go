package component

// CameraCue runs a script against the focal point when a character enters
// or leaves its trigger area.
type CameraCue struct {
	Name   string
	Script string
	Inside bool
}

var CameraCueComponent = NewComponent[CameraCue]()
