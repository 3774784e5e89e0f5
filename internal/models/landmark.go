package models

import (
	"strconv"
	"time"
)

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Rounded returns the coordinates rounded to 6 decimal places.
func (c Coordinates) Rounded() Coordinates {
	return Coordinates{
		Lat: roundTo(c.Lat, 6),
		Lng: roundTo(c.Lng, 6),
	}
}

func roundTo(v float64, places int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	return r
}

type Landmark struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	AddedAt     string      `json:"addedAt"`
	Rating      int         `json:"rating"`
	Location    string      `json:"location"`
	Coordinates Coordinates `json:"coordinates"`
	Photo       string      `json:"photo"`
	IsChecked   bool        `json:"isChecked"`
}

// LandmarkRecord is the persisted form of a Landmark. Seq keeps insertion
// order and lets several rows share the same LandmarkID.
type LandmarkRecord struct {
	Seq         uint64    `gorm:"primaryKey;autoIncrement"`
	LandmarkID  string    `gorm:"type:varchar(255);not null;index"`
	Name        string    `gorm:"type:text;not null"`
	Description string    `gorm:"type:text;not null"`
	AddedAt     string    `gorm:"type:text;not null"`
	Rating      int       `gorm:"not null"`
	Location    string    `gorm:"type:text;not null"`
	Lat         float64   `gorm:"type:double precision;not null"`
	Lng         float64   `gorm:"type:double precision;not null"`
	Photo       string    `gorm:"type:text;not null"`
	IsChecked   bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (LandmarkRecord) TableName() string {
	return "landmarks"
}

func NewLandmarkRecord(l Landmark) *LandmarkRecord {
	return &LandmarkRecord{
		LandmarkID:  l.ID,
		Name:        l.Name,
		Description: l.Description,
		AddedAt:     l.AddedAt,
		Rating:      l.Rating,
		Location:    l.Location,
		Lat:         l.Coordinates.Lat,
		Lng:         l.Coordinates.Lng,
		Photo:       l.Photo,
		IsChecked:   l.IsChecked,
	}
}

func (r *LandmarkRecord) ToLandmark() Landmark {
	return Landmark{
		ID:          r.LandmarkID,
		Name:        r.Name,
		Description: r.Description,
		AddedAt:     r.AddedAt,
		Rating:      r.Rating,
		Location:    r.Location,
		Coordinates: Coordinates{Lat: r.Lat, Lng: r.Lng},
		Photo:       r.Photo,
		IsChecked:   r.IsChecked,
	}
}
