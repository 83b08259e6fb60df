package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// PickupTag marks an entity as belonging to the pickup category: it can be
// carried, it is excluded from teleport raycasts, and it scores in drop areas.
type PickupTag struct{}

var PickupTagComponent = NewComponent[PickupTag]()
