package krl

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Coordinate is an approximate station location in degrees.
type Coordinate struct {
	Lat float64 `toml:"lat"`
	Lon float64 `toml:"lon"`
}

// CoordinateTable is the read-only station code to coordinate mapping
// supplied at startup. The upstream station endpoint carries no
// coordinates, so enrichment happens from this table; unknown codes get
// the fallback point.
type CoordinateTable struct {
	Fallback Coordinate            `toml:"fallback"`
	Stations map[string]Coordinate `toml:"stations"`
}

func (t CoordinateTable) Lookup(stationID string) Coordinate {
	if coord, ok := t.Stations[stationID]; ok {
		return coord
	}
	return t.Fallback
}

// LoadCoordinateTable reads a coordinate table from a TOML file.
func LoadCoordinateTable(path string) (CoordinateTable, error) {
	var table CoordinateTable
	if _, err := toml.DecodeFile(path, &table); err != nil {
		return CoordinateTable{}, fmt.Errorf("loading coordinate table %s: %w", path, err)
	}
	if table.Fallback == (Coordinate{}) {
		table.Fallback = defaultFallbackCoordinate
	}
	return table, nil
}

// defaultFallbackCoordinate is a central Jakarta point used for any
// station the table does not know.
var defaultFallbackCoordinate = Coordinate{Lat: -6.2088, Lon: 106.8456}

// DefaultCoordinateTable returns the built-in table covering the
// best-known stations on the network.
func DefaultCoordinateTable() CoordinateTable {
	return CoordinateTable{
		Fallback: defaultFallbackCoordinate,
		Stations: map[string]Coordinate{
			"JAK":  {Lat: -6.1376, Lon: 106.8146},
			"JAKK": {Lat: -6.1376, Lon: 106.8146},
			"MRI":  {Lat: -6.2099, Lon: 106.8503},
			"AC":   {Lat: -6.1250, Lon: 106.8400},
			"TPK":  {Lat: -6.1050, Lon: 106.8800},
			"CKI":  {Lat: -6.1983, Lon: 106.8407},
			"GDD":  {Lat: -6.1862, Lon: 106.8329},
			"JUA":  {Lat: -6.1666, Lon: 106.8306},
			"SW":   {Lat: -6.1557, Lon: 106.8277},
			"MGB":  {Lat: -6.1491, Lon: 106.8247},
			"JAY":  {Lat: -6.1413, Lon: 106.8200},
			"CSK":  {Lat: -6.3369, Lon: 106.5497},
			"RK":   {Lat: -6.5558, Lon: 106.2489},
			"THB":  {Lat: -6.1862, Lon: 106.8140},
			"PRP":  {Lat: -6.3369, Lon: 106.6333},
			"TGS":  {Lat: -6.2833, Lon: 106.6167},
			"SRP":  {Lat: -6.2833, Lon: 106.6667},
			"BKS":  {Lat: -6.2383, Lon: 106.9756},
			"BUA":  {Lat: -6.1950, Lon: 106.8950},
			"DPK":  {Lat: -6.4025, Lon: 106.8192},
			"PLM":  {Lat: -6.2074, Lon: 106.8456},
			"SDM":  {Lat: -6.1950, Lon: 106.9100},
		},
	}
}
