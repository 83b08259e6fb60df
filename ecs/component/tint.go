package component

import "image/color"

// Tint is the display color of an entity.
type Tint struct {
	Color color.NRGBA
}

var TintComponent = NewComponent[Tint]()
