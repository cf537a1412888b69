package entity

// GeoLocation is a resolved capture location. Coordinates may be nil when only
// a coarse city/country hint is known.
type GeoLocation struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	City      string   `json:"city"`
	Country   string   `json:"country"`
}

// Merge fills the zero fields of the receiver from other, preferring values
// already present. Used to layer scan-provided location over IP-derived
// location over the fallback.
func (l GeoLocation) Merge(other GeoLocation) GeoLocation {
	merged := l
	if merged.Latitude == nil {
		merged.Latitude = other.Latitude
	}
	if merged.Longitude == nil {
		merged.Longitude = other.Longitude
	}
	if merged.City == "" {
		merged.City = other.City
	}
	if merged.Country == "" {
		merged.Country = other.Country
	}

	return merged
}

// IsZero reports whether no location information is present at all.
func (l GeoLocation) IsZero() bool {
	return l.Latitude == nil && l.Longitude == nil && l.City == "" && l.Country == ""
}
