package domain

import "time"

// Villages (kelurahan) of Tanjungpinang covered by the map.
var Villages = []string{
	"Dompak",
	"Sei Jang",
	"Tanjung Ayun Sakti",
	"Tanjungpinang Timur",
	"Tanjung Unggat",
	"Bukit Cermin",
	"Kampung Baru",
	"Kemboja",
	"Tanjungpinang Barat",
	"Kampung Bugis",
	"Penyengat",
	"Senggarang",
	"Tanjungpinang Kota",
	"Air Raja",
	"Batu IX",
	"Kampung Bulang",
	"Melayu Kota Piring",
	"Pinang Kencana",
}

// ValidVillage reports whether name is one of the covered villages.
func ValidVillage(name string) bool {
	for _, v := range Villages {
		if v == name {
			return true
		}
	}
	return false
}

const DefaultMarkerColor = "#FF5733"

// Location is a drug-prone map marker.
type Location struct {
	LocationID  string    `json:"id" dynamodbav:"location_id"`
	Latitude    float64   `json:"latitude" dynamodbav:"latitude"`
	Longitude   float64   `json:"longitude" dynamodbav:"longitude"`
	Village     string    `json:"kelurahan" dynamodbav:"village"`
	Address     string    `json:"address" dynamodbav:"address"`
	Description string    `json:"description" dynamodbav:"description"`
	Cases       int       `json:"cases" dynamodbav:"cases"`
	Color       string    `json:"color" dynamodbav:"color"`
	CreatedAt   time.Time `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" dynamodbav:"updated_at"`
}

type LocationInput struct {
	Latitude    *float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude   *float64 `json:"longitude" validate:"required,min=-180,max=180"`
	Village     string   `json:"kelurahan" validate:"required"`
	Address     string   `json:"address"`
	Description string   `json:"description"`
	Cases       int      `json:"cases" validate:"omitempty,min=1"`
	Color       string   `json:"color"`
}

// VillageStats is the per-village aggregate for the public statistics view.
type VillageStats struct {
	Village string `json:"kelurahan"`
	Total   int    `json:"total"`
	Count   int    `json:"count"`
	Color   string `json:"color"`
}
