package models

// Location — точка на карте из статического справочника.
type Location struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Locations возвращает статический справочник локаций.
func Locations() []Location {
	return []Location{
		{ID: 1, Name: "Central Park SOLE", Latitude: 40.785091, Longitude: -73.968285},
		{ID: 2, Name: "Times Square", Latitude: 40.758896, Longitude: -73.98513},
		{ID: 3, Name: "Empire State Building", Latitude: 40.748817, Longitude: -73.985428},
	}
}
