package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/zuriwear/zuri-backend/pkg/enums"
	"github.com/zuriwear/zuri-backend/pkg/types"
)

// CommuteDestination is one saved stop on a user's commute map. Route data
// is cached from the directions provider and refreshed only when the place
// or travel mode changes.
type CommuteDestination struct {
	ID           uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID       uuid.UUID        `gorm:"column:user_id;type:uuid;not null;index"`
	PlaceID      string           `gorm:"column:place_id;not null"`
	Label        string           `gorm:"column:label;not null"`
	Lat          float64          `gorm:"column:lat;type:numeric(9,6);not null"`
	Lng          float64          `gorm:"column:lng;type:numeric(9,6);not null"`
	TravelMode   enums.TravelMode `gorm:"column:travel_mode;type:text;not null;default:'drive'"`
	MarkerLetter string           `gorm:"column:marker_letter;not null"`
	Position     int              `gorm:"column:position;not null"`

	EncodedPolyline string              `gorm:"column:encoded_polyline;not null;default:''"`
	DistanceMeters  int                 `gorm:"column:distance_meters;not null;default:0"`
	DurationSeconds int                 `gorm:"column:duration_seconds;not null;default:0"`
	Active          bool                `gorm:"column:active;not null;default:false"`
	StrokeColor     string              `gorm:"column:stroke_color;not null;default:''"`
	Bounds          *types.LatLngBounds `gorm:"column:bounds;type:jsonb;serializer:json"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
