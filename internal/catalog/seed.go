package catalog

import "triply/internal/domain"

// Seed returns the built-in demo catalog.
func Seed() Catalog {
	return New(seedHotels()...)
}

func seedHotels() []domain.Hotel {
	return []domain.Hotel{
		{
			ID:          "H001",
			Name:        "Beachside Resort",
			Location:    "Bali, Indonesia",
			Destination: "Bali",
			Rating:      4.7,
			Reviews: []domain.Review{
				{User: "Adi", Rating: 5, Comment: "Liburan terbaik! Suasana pantai luar biasa dan kamarnya nyaman."},
				{User: "Sarah", Rating: 4, Comment: "Staf sangat ramah tetapi sarapannya bisa lebih bervariasi."},
			},
			Price:       120,
			Images:      []string{"hero.png", "dest_mountain.png", "dest_city.png"},
			Description: "Resor tepi pantai mewah di jantung Bali dengan kolam renang infinity, spa dan akses langsung ke pantai pasir putih.",
			Rooms: []domain.Room{
				{Type: "Deluxe Room", Price: 120, Availability: 5},
				{Type: "Suite", Price: 200, Availability: 2},
				{Type: "Family Villa", Price: 320, Availability: 1},
			},
			Amenities:  []string{"Wi‑Fi Gratis", "Kolam Renang", "Spa", "Sarapan Termasuk", "Layanan Antar‑jemput Bandara"},
			Facilities: []string{"Pool", "Spa", "Fitness Center", "Restaurant", "Bar"},
			Map:        domain.Coords{Lat: -8.4095, Lng: 115.1889},
		},
		{
			ID:          "H002",
			Name:        "Mountain Lodge",
			Location:    "Bandung, Indonesia",
			Destination: "Bandung",
			Rating:      4.5,
			Reviews: []domain.Review{
				{User: "Budi", Rating: 5, Comment: "Pemandangan gunungnya sangat menakjubkan!"},
				{User: "Mia", Rating: 4, Comment: "Suasana hangat dan staf membantu."},
			},
			Price:       95,
			Images:      []string{"dest_mountain.png", "hero.png", "dest_interior.png"},
			Description: "Lodge pegunungan yang indah dengan arsitektur kayu klasik, terletak di kaki gunung dengan udara sejuk dan pemandangan danau.",
			Rooms: []domain.Room{
				{Type: "Standard", Price: 95, Availability: 8},
				{Type: "Chalet", Price: 140, Availability: 4},
			},
			Amenities:  []string{"Api Unggun", "Kolam Air Panas", "Wi‑Fi Gratis", "Restoran", "Parkir Gratis"},
			Facilities: []string{"Restaurant", "Hot Springs", "Hiking Trails"},
			Map:        domain.Coords{Lat: -6.9147, Lng: 107.6098},
		},
		{
			ID:          "H003",
			Name:        "Urban Boutique Hotel",
			Location:    "Jakarta, Indonesia",
			Destination: "Jakarta",
			Rating:      4.3,
			Reviews: []domain.Review{
				{User: "Rina", Rating: 4, Comment: "Lokasi strategis dan kamar modern."},
				{User: "Kevin", Rating: 5, Comment: "Dekat pusat perbelanjaan, pelayanan bagus."},
			},
			Price:       80,
			Images:      []string{"dest_city.png", "dest_interior.png", "dest_mountain.png"},
			Description: "Hotel butik di pusat kota dengan desain kontemporer, cocok untuk pebisnis dan pelancong kota.",
			Rooms: []domain.Room{
				{Type: "Superior", Price: 80, Availability: 10},
				{Type: "Executive", Price: 150, Availability: 5},
			},
			Amenities:  []string{"Gym", "Wi‑Fi Gratis", "Restoran", "Laundry"},
			Facilities: []string{"Fitness Center", "Business Center", "Coffee Shop"},
			Map:        domain.Coords{Lat: -6.2088, Lng: 106.8456},
		},
		{
			ID:          "H004",
			Name:        "Tropical Villa",
			Location:    "Lombok, Indonesia",
			Destination: "Lombok",
			Rating:      4.8,
			Reviews: []domain.Review{
				{User: "Dewi", Rating: 5, Comment: "Villa pribadi yang tenang dengan kolam renang."},
				{User: "Alif", Rating: 4, Comment: "Sarapan enak, suasana tropis menenangkan."},
			},
			Price:       180,
			Images:      []string{"hero.png", "dest_interior.png", "dest_city.png"},
			Description: "Villa tropis yang dikelilingi kebun hijau, menawarkan privasi dan kenyamanan dengan kolam renang pribadi.",
			Rooms: []domain.Room{
				{Type: "Private Villa", Price: 180, Availability: 3},
				{Type: "Royal Villa", Price: 250, Availability: 2},
			},
			Amenities:  []string{"Kolam Renang Pribadi", "AC", "Dapur", "Wi‑Fi"},
			Facilities: []string{"Private Pool", "Kitchen", "Garden"},
			Map:        domain.Coords{Lat: -8.7062, Lng: 116.0708},
		},
		{
			ID:          "H005",
			Name:        "City Harbor Hotel",
			Location:    "Surabaya, Indonesia",
			Destination: "Surabaya",
			Rating:      4.1,
			Reviews: []domain.Review{
				{User: "Lia", Rating: 4, Comment: "Pelayanan cepat dan ramah."},
				{User: "Yusuf", Rating: 4, Comment: "Kamar bersih, dekat pelabuhan."},
			},
			Price:       70,
			Images:      []string{"dest_city.png", "dest_mountain.png", "dest_interior.png"},
			Description: "Hotel tepi pelabuhan dengan pemandangan kota Surabaya yang indah, ideal untuk perjalanan bisnis dan wisata.",
			Rooms: []domain.Room{
				{Type: "Standard", Price: 70, Availability: 15},
				{Type: "Deluxe", Price: 120, Availability: 7},
			},
			Amenities:  []string{"Wi‑Fi", "Sarapan", "Parkir", "Restoran"},
			Facilities: []string{"Restaurant", "Parking", "Laundry"},
			Map:        domain.Coords{Lat: -7.250445, Lng: 112.768845},
		},
	}
}
