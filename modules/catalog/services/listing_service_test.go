package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inmovista/inmovista/modules/catalog/domain/aggregates/listing"
	"github.com/inmovista/inmovista/modules/catalog/services"
	"github.com/inmovista/inmovista/pkg/serrors"
)

func newListingFixture() (*services.ListingService, *listingRepo, *photoRepo) {
	listings := newListingRepo()
	photos := newPhotoRepo()
	svc := services.NewListingService(listings, photos, quietBus())
	return svc, listings, photos
}

func TestListingCreate(t *testing.T) {
	svc, _, _ := newListingFixture()

	created, err := svc.Create(testCtx(), services.ListingParams{
		Title:       "Departamento en Las Condes",
		PriceAmount: 98000000,
		State:       listing.StatePublished,
		Rooms:       3,
		Bathrooms:   2,
		Area:        87.5,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID())
	require.Equal(t, int64(98000000), created.Price().Amount())
	require.Equal(t, "CLP", created.Price().Currency().Code)
	require.True(t, created.Public())
}

func TestListingCreate_Validation(t *testing.T) {
	svc, _, _ := newListingFixture()

	_, err := svc.Create(testCtx(), services.ListingParams{PriceAmount: 100})
	require.True(t, serrors.Is(err, serrors.KindValidation))

	_, err = svc.Create(testCtx(), services.ListingParams{Title: "x", PriceAmount: -1})
	require.True(t, serrors.Is(err, serrors.KindValidation))

	_, err = svc.Create(testCtx(), services.ListingParams{Title: "x", Currency: "???"})
	require.True(t, serrors.Is(err, serrors.KindValidation))

	_, err = svc.Create(testCtx(), services.ListingParams{Title: "x", State: "archived"})
	require.True(t, serrors.Is(err, serrors.KindValidation))
}

func TestGetPublicByID_HiddenIsNotFound(t *testing.T) {
	svc, listings, _ := newListingFixture()
	draft := listings.seed(false)
	public := listings.seed(true)

	_, err := svc.GetPublicByID(testCtx(), draft.ID())
	require.True(t, serrors.Is(err, serrors.KindNotFound))

	_, err = svc.GetPublicByID(testCtx(), public.ID())
	require.NoError(t, err)

	_, err = svc.GetPublicByID(testCtx(), 404)
	require.True(t, serrors.Is(err, serrors.KindNotFound))
}

func TestPublicPhotos_PrincipalFirst(t *testing.T) {
	listings := newListingRepo()
	photos := newPhotoRepo()
	listingSvc := services.NewListingService(listings, photos, quietBus())
	photoSvc := services.NewPhotoService(photos, listings, &fakeStorage{}, quietBus())

	l := listings.seed(true)
	files := []services.UploadFile{{Body: []byte{1}}, {Body: []byte{2}}, {Body: []byte{3}}}
	_, err := photoSvc.Upload(testCtx(), l.ID(), files)
	require.NoError(t, err)

	all, err := photoSvc.GetByListing(testCtx(), l.ID())
	require.NoError(t, err)
	require.NoError(t, photoSvc.SetPrincipal(testCtx(), l.ID(), all[2].ID()))

	ordered, err := listingSvc.PublicPhotos(testCtx(), l.ID())
	require.NoError(t, err)
	require.Len(t, ordered, 3)
	require.True(t, ordered[0].Principal())
	require.Equal(t, all[2].ID(), ordered[0].ID())
	require.Equal(t, all[0].ID(), ordered[1].ID())
	require.Equal(t, all[1].ID(), ordered[2].ID())
}

func TestListingUpdate_PartialFields(t *testing.T) {
	svc, listings, _ := newListingFixture()
	l := listings.seed(true)

	updated, err := svc.Update(testCtx(), l.ID(), services.ListingParams{
		Description: "Amplia casa con patio",
		Featured:    boolPtr(true),
	})
	require.NoError(t, err)
	require.Equal(t, l.Title(), updated.Title())
	require.Equal(t, "Amplia casa con patio", updated.Description())
	require.True(t, updated.Featured())
	require.Equal(t, l.Price().Amount(), updated.Price().Amount())
}

func TestListingDelete(t *testing.T) {
	svc, listings, _ := newListingFixture()
	l := listings.seed(true)

	require.NoError(t, svc.Delete(testCtx(), l.ID()))
	err := svc.Delete(testCtx(), l.ID())
	require.True(t, serrors.Is(err, serrors.KindNotFound))
}

func boolPtr(v bool) *bool { return &v }
