package component

// SpawnArea fills a floor rectangle centered on its Transform with pickup
// boxes when the scene starts.
type SpawnArea struct {
	Width  float64
	Depth  float64
	Count  int
	Prefab string
	Done   bool
}

var SpawnAreaComponent = NewComponent[SpawnArea]()

// Billboard keeps an entity facing the camera.
type Billboard struct{}

var BillboardComponent = NewComponent[Billboard]()
