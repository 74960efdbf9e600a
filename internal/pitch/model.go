package pitch

import (
	"time"

	"github.com/lib/pq"
)

type Pitch struct {
	ID           int            `db:"id" json:"id"`
	OwnerID      int            `db:"owner_id" json:"owner_id"`
	Name         string         `db:"name" json:"name"`
	Location     string         `db:"location" json:"location"`
	PricePerHour float64        `db:"price_per_hour" json:"price_per_hour"`
	Description  *string        `db:"description" json:"description,omitempty"`
	Amenities    pq.StringArray `db:"amenities" json:"amenities" swaggertype:"array,string"`
	Rules        pq.StringArray `db:"rules" json:"rules" swaggertype:"array,string"`
	Photos       pq.StringArray `db:"photos" json:"photos" swaggertype:"array,string"`
	IsActive     bool           `db:"is_active" json:"is_active"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// CreatePitchRequest is the body of POST /api/pitches and POST /v1/pitches.
type CreatePitchRequest struct {
	Name         string   `json:"name" binding:"required,max=200"`
	Description  *string  `json:"description"`
	Location     string   `json:"location" binding:"required,max=300"`
	PricePerHour float64  `json:"price_per_hour" binding:"required,gt=0"`
	Amenities    []string `json:"amenities"`
	Rules        []string `json:"rules"`
	Photos       []string `json:"photos" binding:"omitempty,dive,url"`
	IsActive     *bool    `json:"is_active" binding:"required"`
}

// UpdatePitchRequest is a merge patch: nil fields are left untouched.
type UpdatePitchRequest struct {
	Name         *string   `json:"name" binding:"omitempty,max=200"`
	Description  *string   `json:"description"`
	Location     *string   `json:"location" binding:"omitempty,max=300"`
	PricePerHour *float64  `json:"price_per_hour" binding:"omitempty,gt=0"`
	Amenities    *[]string `json:"amenities"`
	Rules        *[]string `json:"rules"`
	Photos       *[]string `json:"photos"`
	IsActive     *bool     `json:"is_active"`
}

func (r UpdatePitchRequest) empty() bool {
	return r.Name == nil && r.Description == nil && r.Location == nil && r.PricePerHour == nil &&
		r.Amenities == nil && r.Rules == nil && r.Photos == nil && r.IsActive == nil
}

func stringArray(v []string) pq.StringArray {
	if v == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(v)
}
