package controllers

import (
	"github.com/inmovista/inmovista/modules/catalog/domain/aggregates/listing"
	"github.com/inmovista/inmovista/modules/catalog/domain/entities/photo"
	"github.com/inmovista/inmovista/modules/catalog/domain/entities/region"
)

func listingToMap(l listing.Listing) map[string]any {
	return map[string]any{
		"id":          l.ID(),
		"title":       l.Title(),
		"description": l.Description(),
		"category":    l.Category(),
		"condition":   l.Condition(),
		"price": map[string]any{
			"amount":   l.Price().Amount(),
			"currency": l.Price().Currency().Code,
			"display":  l.Price().Display(),
		},
		"regionId":   l.RegionID(),
		"area":       l.Area(),
		"rooms":      l.Rooms(),
		"bathrooms":  l.Bathrooms(),
		"state":      string(l.State()),
		"visible":    l.Visible(),
		"featured":   l.Featured(),
		"operatorId": l.OperatorID(),
		"createdAt":  l.CreatedAt(),
	}
}

func photoToMap(p photo.Photo) map[string]any {
	return map[string]any{
		"id":          p.ID(),
		"url":         p.URL(),
		"isPrincipal": p.Principal(),
		"order":       p.SortOrder(),
		"altText":     p.AltText(),
	}
}

func photosToMaps(photos []photo.Photo) []map[string]any {
	out := make([]map[string]any, 0, len(photos))
	for _, p := range photos {
		out = append(out, photoToMap(p))
	}
	return out
}

func regionToMap(r region.Region) map[string]any {
	return map[string]any{
		"id":   r.ID(),
		"name": r.Name(),
	}
}
