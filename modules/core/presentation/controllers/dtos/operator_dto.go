package dtos

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/inmovista/inmovista/pkg/constants"
)

type LoginDTO struct {
	Handle   string `json:"handle" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CreateOperatorDTO struct {
	Handle   string `json:"handle" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=admin agent"`
	Name     string `json:"name" validate:"omitempty"`
	Surname  string `json:"surname" validate:"omitempty"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"omitempty"`
}

type UpdateOperatorDTO struct {
	Handle   string `json:"handle" validate:"omitempty"`
	Password string `json:"password" validate:"omitempty,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=admin agent"`
	Active   *bool  `json:"active" validate:"omitempty"`
	Name     string `json:"name" validate:"omitempty"`
	Surname  string `json:"surname" validate:"omitempty"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"omitempty"`
}

func (d *LoginDTO) Ok() (map[string]string, bool) {
	d.Handle = strings.TrimSpace(d.Handle)
	return check(d)
}

func (d *CreateOperatorDTO) Normalize() {
	d.Handle = strings.TrimSpace(d.Handle)
	d.Name = strings.TrimSpace(d.Name)
	d.Surname = strings.TrimSpace(d.Surname)
	d.Email = strings.TrimSpace(d.Email)
	d.Phone = strings.TrimSpace(d.Phone)
}

func (d *CreateOperatorDTO) Ok() (map[string]string, bool) {
	d.Normalize()
	return check(d)
}

func (d *UpdateOperatorDTO) Ok() (map[string]string, bool) {
	d.Handle = strings.TrimSpace(d.Handle)
	d.Email = strings.TrimSpace(d.Email)
	return check(d)
}

// check runs tag validation and flattens the result to field -> message.
func check(dto any) (map[string]string, bool) {
	errs := constants.Validate.Struct(dto)
	if errs == nil {
		return map[string]string{}, true
	}
	out := map[string]string{}
	for _, fieldErr := range errs.(validator.ValidationErrors) {
		out[fieldErr.Field()] = fieldMessage(fieldErr)
	}
	return out, false
}

func fieldMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return "is too short"
	case "oneof":
		return "has an unknown value"
	case "max":
		return "is too long"
	case "gt", "gte":
		return "is out of range"
	default:
		return "is invalid"
	}
}
