package domain

import "time"

type StayRequest struct {
	Checkin      time.Time
	Checkout     time.Time
	NightlyPrice float64
	Guests       int
}

// Stay is derived from a StayRequest. Nights is never below 1.
type Stay struct {
	Nights int     `json:"nights"`
	Total  float64 `json:"total"`
}
