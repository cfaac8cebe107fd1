package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/inmovista/inmovista/modules/catalog/domain/aggregates/listing"
	"github.com/inmovista/inmovista/modules/catalog/presentation/controllers/dtos"
	"github.com/inmovista/inmovista/modules/catalog/services"
	"github.com/inmovista/inmovista/pkg/application"
	"github.com/inmovista/inmovista/pkg/composables"
	"github.com/inmovista/inmovista/pkg/configuration"
	"github.com/inmovista/inmovista/pkg/httpapi"
	"github.com/inmovista/inmovista/pkg/middleware"
)

type ListingsAdminController struct {
	app      application.Application
	listings *services.ListingService
	photos   *services.PhotoService
	basePath string
}

func NewListingsAdminController(app application.Application) application.Controller {
	return &ListingsAdminController{
		app:      app,
		listings: app.Service(services.ListingService{}).(*services.ListingService),
		photos:   app.Service(services.PhotoService{}).(*services.PhotoService),
		basePath: "/admin/api/listings",
	}
}

func (c *ListingsAdminController) Key() string {
	return c.basePath
}

func (c *ListingsAdminController) Register(r *mux.Router) {
	conf := configuration.Use()
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.RequireOperator(conf.JWTSecret))

	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id:[0-9]+}", c.GetByID).Methods(http.MethodGet)
	router.HandleFunc("/{id:[0-9]+}", c.Update).Methods(http.MethodPut)
	router.HandleFunc("/{id:[0-9]+}", c.Delete).Methods(http.MethodDelete)

	router.HandleFunc("/{id:[0-9]+}/photos", c.UploadPhotos).Methods(http.MethodPost)
	router.HandleFunc("/{id:[0-9]+}/photos/order", c.ReorderPhotos).Methods(http.MethodPut)
	router.HandleFunc("/{id:[0-9]+}/photos/{photoID:[0-9]+}", c.DeletePhoto).Methods(http.MethodDelete)
	router.HandleFunc("/{id:[0-9]+}/photos/{photoID:[0-9]+}/principal", c.SetPrincipalPhoto).Methods(http.MethodPut)
	router.HandleFunc("/{id:[0-9]+}/photos/{photoID:[0-9]+}/alt-text", c.SetPhotoAltText).Methods(http.MethodPut)
}

func pathID(r *http.Request, name string) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	return id
}

func (c *ListingsAdminController) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := httpapi.Pagination(r)
	params := &listing.FindParams{
		Limit:  limit,
		Offset: offset,
		Search: strings.TrimSpace(r.URL.Query().Get("q")),
	}
	items, total, err := c.listings.GetPaginated(r.Context(), params)
	if err != nil {
		_ = httpapi.WriteDomainError(w, r, err)
		return
	}
	out := make([]map[string]any, 0, len(items))
	for _, l := range items {
		out = append(out, listingToMap(l))
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"items": out,
		"total": total,
	})
}

func (c *ListingsAdminController) GetByID(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	l, err := c.listings.GetByID(r.Context(), id)
	if err != nil {
		_ = httpapi.WriteDomainError(w, r, err)
		return
	}
	photos, err := c.photos.GetByListing(r.Context(), id)
	if err != nil {
		_ = httpapi.WriteDomainError(w, r, err)
		return
	}
	out := listingToMap(l)
	out["photos"] = photosToMaps(photos)
	_ = httpapi.WriteJSON(w, http.StatusOK, out)
}

func (c *ListingsAdminController) decodeListing(w http.ResponseWriter, r *http.Request) (*dtos.ListingDTO, bool) {
	var dto dtos.ListingDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "LISTING_INVALID_JSON", "invalid json", nil)
		return nil, false
	}
	if fields, ok := dto.Ok(); !ok {
		_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "LISTING_VALIDATION_FAILED", "validation failed", fields)
		return nil, false
	}
	return &dto, true
}

func listingParams(dto *dtos.ListingDTO) services.ListingParams {
	return services.ListingParams{
		Title:       dto.Title,
		Description: dto.Description,
		Category:    dto.Category,
		Condition:   dto.Condition,
		PriceAmount: dto.PriceAmount,
		Currency:    dto.Currency,
		RegionID:    dto.RegionID,
		Area:        dto.Area,
		Rooms:       dto.Rooms,
		Bathrooms:   dto.Bathrooms,
		State:       listing.State(dto.State),
		Visible:     dto.Visible,
		Featured:    dto.Featured,
		OperatorID:  dto.OperatorID,
	}
}

func (c *ListingsAdminController) Create(w http.ResponseWriter, r *http.Request) {
	dto, ok := c.decodeListing(w, r)
	if !ok {
		return
	}
	params := listingParams(dto)
	if params.OperatorID == nil {
		// New listings default to the creating operator.
		if id := composables.UseOperatorID(r.Context()); id > 0 {
			params.OperatorID = &id
		}
	}
	created, err := c.listings.Create(r.Context(), params)
	if err != nil {
		_ = httpapi.WriteDomainError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, listingToMap(created))
}

func (c *ListingsAdminController) Update(w http.ResponseWriter, r *http.Request) {
	dto, ok := c.decodeListing(w, r)
	if !ok {
		return
	}
	updated, err := c.listings.Update(r.Context(), pathID(r, "id"), listingParams(dto))
	if err != nil {
		_ = httpapi.WriteDomainError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, listingToMap(updated))
}

func (c *ListingsAdminController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.listings.Delete(r.Context(), pathID(r, "id")); err != nil {
		_ = httpapi.WriteDomainError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusNoContent, nil)
}

func (c *ListingsAdminController) UploadPhotos(w http.ResponseWriter, r *http.Request) {
	conf := configuration.Use()
	r.Body = http.MaxBytesReader(w, r.Body, conf.MaxUploadSize)
	if err := r.ParseMultipartForm(conf.MaxUploadSize); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "PHOTO_INVALID_MULTIPART", "invalid multipart payload", nil)
		return
	}

	parts := r.MultipartForm.File["photos"]
	files := make([]services.UploadFile, 0, len(parts))
	for _, part := range parts {
		f, err := part.Open()
		if err != nil {
			_ = httpapi.WriteError(w, http.StatusBadRequest, "PHOTO_INVALID_MULTIPART", "invalid multipart payload", nil)
			return
		}
		body, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			_ = httpapi.WriteError(w, http.StatusBadRequest, "PHOTO_INVALID_MULTIPART", "invalid multipart payload", nil)
			return
		}
		files = append(files, services.UploadFile{Filename: part.Filename, Body: body})
	}

	urls, err := c.photos.Upload(r.Context(), pathID(r, "id"), files)
	if err != nil {
		_ = httpapi.WriteDomainError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, map[string]any{"urls": urls})
}

func (c *ListingsAdminController) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	if err := c.photos.Delete(r.Context(), pathID(r, "id"), pathID(r, "photoID")); err != nil {
		_ = httpapi.WriteDomainError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusNoContent, nil)
}

func (c *ListingsAdminController) SetPrincipalPhoto(w http.ResponseWriter, r *http.Request) {
	if err := c.photos.SetPrincipal(r.Context(), pathID(r, "id"), pathID(r, "photoID")); err != nil {
		_ = httpapi.WriteDomainError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (c *ListingsAdminController) ReorderPhotos(w http.ResponseWriter, r *http.Request) {
	var dto dtos.ReorderDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "PHOTO_INVALID_JSON", "invalid json", nil)
		return
	}
	if fields, ok := dto.Ok(); !ok {
		_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "PHOTO_VALIDATION_FAILED", "validation failed", fields)
		return
	}
	entries := make([]services.OrderEntry, 0, len(dto.Entries))
	for _, e := range dto.Entries {
		entries = append(entries, services.OrderEntry{PhotoID: e.PhotoID, Order: e.Order})
	}
	if err := c.photos.Reorder(r.Context(), pathID(r, "id"), entries); err != nil {
		_ = httpapi.WriteDomainError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (c *ListingsAdminController) SetPhotoAltText(w http.ResponseWriter, r *http.Request) {
	var dto dtos.AltTextDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "PHOTO_INVALID_JSON", "invalid json", nil)
		return
	}
	if err := c.photos.SetAltText(r.Context(), pathID(r, "id"), pathID(r, "photoID"), dto.Text); err != nil {
		_ = httpapi.WriteDomainError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{"ok": true})
}
