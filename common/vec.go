package common

// Vec2 is a plain 2D float pair.
type Vec2 struct {
	X float64
	Y float64
}

// Vec3 is a plain 3D float triple. Z is used as a draw depth only.
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

func (v Vec3) XY() Vec2 {
	return Vec2{X: v.X, Y: v.Y}
}
