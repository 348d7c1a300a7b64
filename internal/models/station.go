package models

// Station is a single stop on the commuter network. Only stations the
// upstream marks enabled (fg_enable = 1) and outside area-grouping rows
// (group_wil = 0) are ever exposed to callers. Coordinates are
// approximate; stations missing from the coordinate table carry the
// city-center fallback point.
type Station struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	GroupWil int     `json:"groupWil"`
	FgEnable int     `json:"fgEnable"`
}
