package models

// RouteMapEntry points at a printable network map for an area.
type RouteMapEntry struct {
	Area      int    `json:"area"`
	Permalink string `json:"permalink"`
}
