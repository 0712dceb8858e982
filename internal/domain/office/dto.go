package office

import (
	"github.com/kriyahr/hrms-backend-go/internal/pkg/geo"
	"github.com/kriyahr/hrms-backend-go/internal/pkg/validator"
)

type CreateRequest struct {
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters float64 `json:"radius_meters"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if !geo.ValidCoordinates(r.Latitude, r.Longitude) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "coordinates are out of range"})
	}
	if r.RadiusMeters < 0 {
		errs = append(errs, validator.ValidationError{Field: "radius_meters", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateRequest struct {
	ID           string   `json:"-"`
	Name         *string  `json:"name,omitempty"`
	Address      *string  `json:"address,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	RadiusMeters *float64 `json:"radius_meters,omitempty"`
	IsActive     *bool    `json:"is_active,omitempty"`
}

func (r *UpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude and longitude must be provided together"})
	}
	if r.Latitude != nil && r.Longitude != nil && !geo.ValidCoordinates(*r.Latitude, *r.Longitude) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "coordinates are out of range"})
	}
	if r.RadiusMeters != nil && *r.RadiusMeters < 0 {
		errs = append(errs, validator.ValidationError{Field: "radius_meters", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Response struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Address      string  `json:"address,omitempty"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters float64 `json:"radius_meters"`
	IsActive     bool    `json:"is_active"`
}
