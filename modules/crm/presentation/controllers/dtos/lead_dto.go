package dtos

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/inmovista/inmovista/pkg/constants"
)

// SubmitLeadDTO is the public form payload. Website is the honeypot field:
// the form hides it, so any value means a bot filled the form.
type SubmitLeadDTO struct {
	ListingID int64  `json:"listingId" validate:"required,gt=0"`
	Name      string `json:"name" validate:"required,max=255"`
	Phone     string `json:"phone" validate:"omitempty,max=64"`
	Email     string `json:"email" validate:"omitempty,email,max=255"`
	Message   string `json:"message" validate:"omitempty,max=4000"`
	Channel   string `json:"channel" validate:"omitempty,max=64"`
	Website   string `json:"website"`
}

func (d *SubmitLeadDTO) Ok() (map[string]string, bool) {
	d.Name = strings.TrimSpace(d.Name)
	if d.Website != "" {
		// Bots must never see a validation error; skip the rest.
		return map[string]string{}, true
	}
	return check(d)
}

type UpdateLeadDTO struct {
	State              string  `json:"state" validate:"omitempty,oneof=new contacted closed discarded"`
	Notes              *string `json:"notes" validate:"omitempty"`
	AssignedOperatorID *int64  `json:"assignedOperatorId" validate:"omitempty,gt=0"`
	ClearAssignment    bool    `json:"clearAssignment"`
}

func (d *UpdateLeadDTO) Ok() (map[string]string, bool) {
	return check(d)
}

func check(dto any) (map[string]string, bool) {
	errs := constants.Validate.Struct(dto)
	if errs == nil {
		return map[string]string{}, true
	}
	out := map[string]string{}
	for _, fieldErr := range errs.(validator.ValidationErrors) {
		out[fieldErr.Field()] = "is invalid"
	}
	return out, false
}
