package worker

import (
	"github.com/agritrack/attendance-backend-go/internal/pkg/validator"
)

type CreateWorkerRequest struct {
	Name         string  `json:"name"`
	Phone        *string `json:"phone,omitempty"`
	EmployeeCode *string `json:"employee_code,omitempty"`
	SiteID       *string `json:"site_id,omitempty"`
}

func (r CreateWorkerRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if r.Phone != nil && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{Field: "phone", Message: "invalid phone number"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateWorkerRequest is a whitelisted update struct. Organization ownership
// is not updatable; site reassignment only changes the default site.
type UpdateWorkerRequest struct {
	ID           string  `json:"-"`
	Name         *string `json:"name,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	EmployeeCode *string `json:"employee_code,omitempty"`
	SiteID       *string `json:"site_id,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

func (r UpdateWorkerRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not be empty"})
	}
	if r.Phone != nil && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{Field: "phone", Message: "invalid phone number"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type WorkerResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Phone        *string `json:"phone"`
	EmployeeCode *string `json:"employee_code"`
	SiteID       *string `json:"site_id"`
	SiteName     *string `json:"site_name"`
	IsActive     bool    `json:"is_active"`
	CreatedAt    string  `json:"created_at"`
}
