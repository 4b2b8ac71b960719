package domain

// MapMode says how a client should render experiences on a map.
type MapMode string

const (
	// MapInteractive means the map widget credential is configured.
	MapInteractive MapMode = "interactive"
	// MapFallback means no credential: draw markers at X/Y on a plain canvas.
	MapFallback MapMode = "fallback"
)

// Bounds is a latitude/longitude bounding box.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLng float64 `json:"max_lng"`
}

// Contains reports whether the point lies inside the box, edges included.
func (b Bounds) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lng >= b.MinLng && lng <= b.MaxLng
}

// Normalize projects a point to percentage coordinates within the box:
// x grows eastward from 0 to 100, y grows southward from 0 to 100.
func (b Bounds) Normalize(lat, lng float64) (x, y float64) {
	x = (lng - b.MinLng) / (b.MaxLng - b.MinLng) * 100
	y = 100 - (lat-b.MinLat)/(b.MaxLat-b.MinLat)*100
	return x, y
}

// CityBounds is the San Francisco box every catalog entry must fall in.
var CityBounds = Bounds{MinLat: 37.7, MaxLat: 37.85, MinLng: -122.55, MaxLng: -122.35}

// CityCenter is the default map center.
var CityCenter = [2]float64{37.7749, -122.4194}

// MapMarker is one experience positioned for display.
type MapMarker struct {
	ExperienceID string         `json:"experience_id"`
	Name         string         `json:"name"`
	Type         ExperienceType `json:"type"`
	Lat          float64        `json:"lat"`
	Lng          float64        `json:"lng"`
	X            *float64       `json:"x,omitempty"`
	Y            *float64       `json:"y,omitempty"`
	Selected     bool           `json:"selected"`
}

// MapView is everything a client needs to draw the experience map.
type MapView struct {
	Mode    MapMode     `json:"mode"`
	Token   string      `json:"token,omitempty"`
	Center  [2]float64  `json:"center"`
	Bounds  Bounds      `json:"bounds"`
	Markers []MapMarker `json:"markers"`
}
