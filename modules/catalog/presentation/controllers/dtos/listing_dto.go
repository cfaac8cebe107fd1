package dtos

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/inmovista/inmovista/pkg/constants"
)

type ListingDTO struct {
	Title       string  `json:"title" validate:"omitempty,max=255"`
	Description string  `json:"description" validate:"omitempty"`
	Category    string  `json:"category" validate:"omitempty,max=64"`
	Condition   string  `json:"condition" validate:"omitempty,max=64"`
	PriceAmount int64   `json:"priceAmount" validate:"omitempty,gte=0"`
	Currency    string  `json:"currency" validate:"omitempty,len=3"`
	RegionID    *int64  `json:"regionId" validate:"omitempty,gt=0"`
	Area        float64 `json:"area" validate:"omitempty,gte=0"`
	Rooms       int     `json:"rooms" validate:"omitempty,gte=0"`
	Bathrooms   int     `json:"bathrooms" validate:"omitempty,gte=0"`
	State       string  `json:"state" validate:"omitempty,oneof=draft published"`
	Visible     *bool   `json:"visible"`
	Featured    *bool   `json:"featured"`
	OperatorID  *int64  `json:"operatorId" validate:"omitempty,gt=0"`
}

func (d *ListingDTO) Ok() (map[string]string, bool) {
	d.Title = strings.TrimSpace(d.Title)
	d.Currency = strings.ToUpper(strings.TrimSpace(d.Currency))
	return check(d)
}

type ReorderDTO struct {
	Entries []ReorderEntryDTO `json:"entries" validate:"required,min=1,dive"`
}

type ReorderEntryDTO struct {
	PhotoID int64 `json:"photoId" validate:"required,gt=0"`
	Order   int   `json:"order" validate:"required,gt=0"`
}

func (d *ReorderDTO) Ok() (map[string]string, bool) {
	return check(d)
}

type AltTextDTO struct {
	Text string `json:"text"`
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
