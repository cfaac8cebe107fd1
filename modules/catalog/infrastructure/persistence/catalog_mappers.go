package persistence

import (
	"database/sql"

	"github.com/Rhymond/go-money"

	"github.com/inmovista/inmovista/modules/catalog/domain/aggregates/listing"
	"github.com/inmovista/inmovista/modules/catalog/domain/entities/photo"
	"github.com/inmovista/inmovista/modules/catalog/domain/entities/region"
	"github.com/inmovista/inmovista/modules/catalog/infrastructure/persistence/models"
)

func toDomainListing(row *models.Listing) listing.Listing {
	return listing.Hydrate(
		row.ID,
		row.Title,
		row.Description.String,
		row.Category.String,
		row.Condition.String,
		money.New(row.PriceAmount, row.PriceCurrency),
		nullableID(row.RegionID),
		row.Area,
		row.Rooms,
		row.Bathrooms,
		listing.State(row.State),
		row.Visible,
		row.Featured,
		nullableID(row.OperatorID),
		row.CreatedAt,
	)
}

func toDomainPhoto(row *models.Photo) photo.Photo {
	return photo.Hydrate(
		row.ID,
		row.ListingID,
		row.URL,
		row.Principal,
		row.SortOrder,
		row.AltText.String,
		row.CreatedAt,
	)
}

func toDomainRegion(row *models.Region) region.Region {
	return region.Hydrate(row.ID, row.Name)
}

func nullableID(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	id := v.Int64
	return &id
}

func nullID(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullText(v string) sql.NullString {
	if v == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}
