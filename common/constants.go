package common

const (
	BaseWidth  = 1280
	BaseHeight = 720
)

// FloorY is the height of the arena floor.
const FloorY = 0.0
