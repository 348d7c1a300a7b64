package krl

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Upstream wire shapes. These are private translation inputs: decoding
// happens here at the boundary, producing either typed rows or an
// error, and nothing upstream-shaped leaks past this package.

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type stationRow struct {
	StaID    string `json:"sta_id"`
	StaName  string `json:"sta_name"`
	GroupWil int    `json:"group_wil"`
	FgEnable int    `json:"fg_enable"`
}

type scheduleRow struct {
	TrainID   string `json:"train_id"`
	KaName    string `json:"ka_name"`
	RouteName string `json:"route_name"`
	Dest      string `json:"dest"`
	TimeEst   string `json:"time_est"`
	Color     string `json:"color"`
	DestTime  string `json:"dest_time"`
}

type trainRouteRow struct {
	TrainID        string     `json:"train_id"`
	KaName         string     `json:"ka_name"`
	StationID      string     `json:"station_id"`
	StationName    string     `json:"station_name"`
	TimeEst        string     `json:"time_est"`
	TransitStation bool       `json:"transit_station"`
	Color          string     `json:"color"`
	Transit        stringList `json:"transit"`
}

type fareRow struct {
	StaCodeFrom string `json:"sta_code_from"`
	StaNameFrom string `json:"sta_name_from"`
	StaCodeTo   string `json:"sta_code_to"`
	StaNameTo   string `json:"sta_name_to"`
	Fare        int    `json:"fare"`
	Distance    string `json:"distance"`
}

type routeMapRow struct {
	Area      int    `json:"area"`
	Permalink string `json:"permalink"`
}

// stringList decodes a field the upstream serves inconsistently: either
// a single string or a list of strings. A scalar becomes a one-element
// list so every consumer sees the same derived shape.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*l = list
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	if single == "" {
		*l = nil
		return nil
	}
	*l = stringList{single}
	return nil
}

// decodeEnvelope validates the {status, message, data} wrapper and
// unmarshals data into typed rows.
func decodeEnvelope[T any](path string, body []byte) ([]T, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decoding %s envelope: %w", path, err)
	}
	if env.Status != http.StatusOK {
		return nil, fmt.Errorf("%s: upstream status %d: %s", path, env.Status, env.Message)
	}

	var rows []T
	if err := json.Unmarshal(env.Data, &rows); err != nil {
		return nil, fmt.Errorf("decoding %s data: %w", path, err)
	}
	return rows, nil
}
