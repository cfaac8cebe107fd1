package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/inmovista/inmovista/modules/catalog/domain/aggregates/listing"
	"github.com/inmovista/inmovista/modules/catalog/services"
	"github.com/inmovista/inmovista/pkg/application"
	"github.com/inmovista/inmovista/pkg/httpapi"
)

// CatalogController is the public, unauthenticated read API.
type CatalogController struct {
	app      application.Application
	listings *services.ListingService
	regions  *services.RegionService
	basePath string
}

func NewCatalogController(app application.Application) application.Controller {
	return &CatalogController{
		app:      app,
		listings: app.Service(services.ListingService{}).(*services.ListingService),
		regions:  app.Service(services.RegionService{}).(*services.RegionService),
		basePath: "/api",
	}
}

func (c *CatalogController) Key() string {
	return c.basePath
}

func (c *CatalogController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/listings", c.List).Methods(http.MethodGet)
	router.HandleFunc("/listings/{id:[0-9]+}", c.GetByID).Methods(http.MethodGet)
	router.HandleFunc("/regions", c.Regions).Methods(http.MethodGet)
}

func (c *CatalogController) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := httpapi.Pagination(r)
	params := &listing.FindParams{
		Limit:      limit,
		Offset:     offset,
		Search:     strings.TrimSpace(r.URL.Query().Get("q")),
		PublicOnly: true,
	}
	if v := r.URL.Query().Get("region"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "CATALOG_INVALID_REGION", "region must be an integer", nil)
			return
		}
		params.RegionID = &id
	}
	if v := r.URL.Query().Get("maxPrice"); v != "" {
		max, err := strconv.ParseInt(v, 10, 64)
		if err != nil || max < 0 {
			_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "CATALOG_INVALID_MAX_PRICE", "maxPrice must be a non-negative integer", nil)
			return
		}
		params.MaxPrice = max
	}

	items, total, err := c.listings.GetPaginated(r.Context(), params)
	if err != nil {
		_ = httpapi.WriteDomainError(w, r, err)
		return
	}

	out := make([]map[string]any, 0, len(items))
	for _, l := range items {
		entry := listingToMap(l)
		photos, err := c.listings.PublicPhotos(r.Context(), l.ID())
		if err != nil {
			_ = httpapi.WriteDomainError(w, r, err)
			return
		}
		if len(photos) > 0 {
			entry["coverUrl"] = photos[0].URL()
		}
		out = append(out, entry)
	}

	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"items": out,
		"total": total,
	})
}

func (c *CatalogController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	l, err := c.listings.GetPublicByID(r.Context(), id)
	if err != nil {
		_ = httpapi.WriteDomainError(w, r, err)
		return
	}
	photos, err := c.listings.PublicPhotos(r.Context(), id)
	if err != nil {
		_ = httpapi.WriteDomainError(w, r, err)
		return
	}

	out := listingToMap(l)
	out["photos"] = photosToMaps(photos)
	_ = httpapi.WriteJSON(w, http.StatusOK, out)
}

func (c *CatalogController) Regions(w http.ResponseWriter, r *http.Request) {
	regions, err := c.regions.GetAll(r.Context())
	if err != nil {
		_ = httpapi.WriteDomainError(w, r, err)
		return
	}
	out := make([]map[string]any, 0, len(regions))
	for _, reg := range regions {
		out = append(out, regionToMap(reg))
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{"items": out})
}
