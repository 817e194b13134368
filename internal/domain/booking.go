package domain

import "time"

// Booking is created once at submission and never edited; only an admin
// removal deletes it.
type Booking struct {
	ID        string    `json:"id"`
	HotelID   string    `json:"hotelId"`
	HotelName string    `json:"hotelName"`
	RoomType  string    `json:"roomType"`
	Checkin   string    `json:"checkin"`
	Checkout  string    `json:"checkout"`
	Guests    int       `json:"guests"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Total     float64   `json:"total"`
	CreatedAt time.Time `json:"createdAt"`
}
