package component

// Name is the scene-authored name of an entity. The player is always "Player".
type Name struct {
	Value string
}

const PlayerName = "Player"

var NameComponent = NewComponent[Name]()
