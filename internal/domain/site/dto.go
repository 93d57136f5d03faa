package site

import (
	"time"

	"github.com/agritrack/attendance-backend-go/internal/pkg/validator"
)

type CreateSiteRequest struct {
	Name          string  `json:"name"`
	Latitude      float64 `json:"gps_lat"`
	Longitude     float64 `json:"gps_lon"`
	RadiusM       float64 `json:"radius_m"`
	CheckinStart  *string `json:"checkin_start,omitempty"`
	CheckinEnd    *string `json:"checkin_end,omitempty"`
	CheckoutStart *string `json:"checkout_start,omitempty"`
	CheckoutEnd   *string `json:"checkout_end,omitempty"`
}

func (r CreateSiteRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{Field: "gps_lat", Message: "latitude must be between -90 and 90"})
	}
	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{Field: "gps_lon", Message: "longitude must be between -180 and 180"})
	}
	if r.RadiusM <= 0 {
		errs = append(errs, validator.ValidationError{Field: "radius_m", Message: "radius must be greater than zero"})
	}
	errs = append(errs, validateWindow("checkin_start", r.CheckinStart)...)
	errs = append(errs, validateWindow("checkin_end", r.CheckinEnd)...)
	errs = append(errs, validateWindow("checkout_start", r.CheckoutStart)...)
	errs = append(errs, validateWindow("checkout_end", r.CheckoutEnd)...)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateSiteRequest is a whitelisted update: only the fields below may
// change. Organization ownership is never updatable through this path.
type UpdateSiteRequest struct {
	ID            string   `json:"-"`
	Name          *string  `json:"name,omitempty"`
	Latitude      *float64 `json:"gps_lat,omitempty"`
	Longitude     *float64 `json:"gps_lon,omitempty"`
	RadiusM       *float64 `json:"radius_m,omitempty"`
	CheckinStart  *string  `json:"checkin_start,omitempty"`
	CheckinEnd    *string  `json:"checkin_end,omitempty"`
	CheckoutStart *string  `json:"checkout_start,omitempty"`
	CheckoutEnd   *string  `json:"checkout_end,omitempty"`
}

func (r UpdateSiteRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not be empty"})
	}
	if r.Latitude != nil && !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{Field: "gps_lat", Message: "latitude must be between -90 and 90"})
	}
	if r.Longitude != nil && !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{Field: "gps_lon", Message: "longitude must be between -180 and 180"})
	}
	if r.RadiusM != nil && *r.RadiusM <= 0 {
		errs = append(errs, validator.ValidationError{Field: "radius_m", Message: "radius must be greater than zero"})
	}
	errs = append(errs, validateWindow("checkin_start", r.CheckinStart)...)
	errs = append(errs, validateWindow("checkin_end", r.CheckinEnd)...)
	errs = append(errs, validateWindow("checkout_start", r.CheckoutStart)...)
	errs = append(errs, validateWindow("checkout_end", r.CheckoutEnd)...)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateWindow(field string, value *string) validator.ValidationErrors {
	if value == nil {
		return nil
	}
	if _, ok := validator.IsValidTimeOfDay(*value); !ok {
		return validator.ValidationErrors{{Field: field, Message: "must be a time of day in HH:MM:SS format"}}
	}
	return nil
}

// ParseWindow converts an HH:MM:SS string into the time-of-day representation
// stored on the entity.
func ParseWindow(value *string) *time.Time {
	if value == nil {
		return nil
	}
	t, err := time.Parse("15:04:05", *value)
	if err != nil {
		return nil
	}
	return &t
}

type SiteResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Latitude      float64 `json:"gps_lat"`
	Longitude     float64 `json:"gps_lon"`
	RadiusM       float64 `json:"radius_m"`
	CheckinStart  *string `json:"checkin_start"`
	CheckinEnd    *string `json:"checkin_end"`
	CheckoutStart *string `json:"checkout_start"`
	CheckoutEnd   *string `json:"checkout_end"`
	CreatedAt     string  `json:"created_at"`
}

// FormatWindow renders a stored time-of-day back to HH:MM:SS.
func FormatWindow(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("15:04:05")
	return &s
}
