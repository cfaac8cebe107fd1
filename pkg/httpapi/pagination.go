package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/inmovista/inmovista/pkg/configuration"
)

// Pagination reads limit/offset query parameters, clamped to the configured
// page sizes.
func Pagination(r *http.Request) (limit, offset int) {
	conf := configuration.Use()
	limit = conf.PageSize
	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > conf.MaxPageSize {
		limit = conf.MaxPageSize
	}
	if v := strings.TrimSpace(r.URL.Query().Get("offset")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			offset = parsed
		}
	}
	return limit, offset
}
