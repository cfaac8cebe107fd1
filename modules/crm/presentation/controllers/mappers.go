package controllers

import (
	"time"

	"github.com/inmovista/inmovista/modules/crm/domain/aggregates/lead"
)

func leadToMap(l lead.Lead) map[string]any {
	var createdAt any
	if !l.CreatedAt().IsZero() {
		createdAt = l.CreatedAt().Format(time.RFC3339)
	}
	return map[string]any{
		"id":                 l.ID(),
		"listingId":          l.ListingID(),
		"name":               l.Name(),
		"phone":              l.Phone(),
		"email":              l.Email(),
		"message":            l.Message(),
		"channel":            l.Channel(),
		"state":              string(l.State()),
		"notes":              l.Notes(),
		"assignedOperatorId": l.AssignedOperatorID(),
		"createdAt":          createdAt,
	}
}

func leadsToMaps(items []lead.Lead) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, l := range items {
		out = append(out, leadToMap(l))
	}
	return out
}
