package models

// TrainRouteStop is one stop in a train's full stopping pattern, in
// travel order. Transit lists the line colors a rider can interchange
// to at this stop; the upstream serves it as either a scalar or a list,
// normalized to a slice at the wire boundary.
type TrainRouteStop struct {
	TrainID        string   `json:"trainId"`
	KaName         string   `json:"kaName"`
	StationID      string   `json:"stationId"`
	StationName    string   `json:"stationName"`
	TimeEst        string   `json:"timeEst"`
	TransitStation bool     `json:"transitStation"`
	Color          string   `json:"color"`
	Transit        []string `json:"transit"`
}
