package models

// FareDetail is the fare for an ordered station pair. Distance is a
// pre-formatted upstream string and treated opaquely.
type FareDetail struct {
	StaCodeFrom string `json:"staCodeFrom"`
	StaNameFrom string `json:"staNameFrom"`
	StaCodeTo   string `json:"staCodeTo"`
	StaNameTo   string `json:"staNameTo"`
	Fare        int    `json:"fare"`
	Distance    string `json:"distance"`
}
