package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"

	"github.com/inmovista/inmovista/modules/catalog/domain/aggregates/listing"
	"github.com/inmovista/inmovista/modules/catalog/infrastructure/persistence/models"
	"github.com/inmovista/inmovista/pkg/composables"
	"github.com/inmovista/inmovista/pkg/repo"
)

const (
	listingFindQuery = `
		SELECT
			l.id,
			l.title,
			l.description,
			l.category,
			l.condition,
			l.price_amount,
			l.price_currency,
			l.region_id,
			l.area,
			l.rooms,
			l.bathrooms,
			l.state,
			l.visible,
			l.featured,
			l.operator_id,
			l.created_at
		FROM listings l`

	listingCountQuery = `SELECT COUNT(l.id) FROM listings l`

	listingDeleteQuery = `DELETE FROM listings WHERE id = $1`
)

var listingFields = []string{
	"title",
	"description",
	"category",
	"condition",
	"price_amount",
	"price_currency",
	"region_id",
	"area",
	"rooms",
	"bathrooms",
	"state",
	"visible",
	"featured",
	"operator_id",
}

type PgListingRepository struct{}

func NewListingRepository() listing.Repository {
	return &PgListingRepository{}
}

func listingArgs(l listing.Listing) []interface{} {
	return []interface{}{
		l.Title(),
		nullText(l.Description()),
		nullText(l.Category()),
		nullText(l.Condition()),
		l.Price().Amount(),
		l.Price().Currency().Code,
		nullID(l.RegionID()),
		l.Area(),
		l.Rooms(),
		l.Bathrooms(),
		string(l.State()),
		l.Visible(),
		l.Featured(),
		nullID(l.OperatorID()),
	}
}

func (g *PgListingRepository) queryListings(ctx context.Context, query string, args ...interface{}) ([]listing.Listing, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query listings")
	}
	defer rows.Close()

	out := make([]listing.Listing, 0)
	for rows.Next() {
		var row models.Listing
		if err := rows.Scan(
			&row.ID,
			&row.Title,
			&row.Description,
			&row.Category,
			&row.Condition,
			&row.PriceAmount,
			&row.PriceCurrency,
			&row.RegionID,
			&row.Area,
			&row.Rooms,
			&row.Bathrooms,
			&row.State,
			&row.Visible,
			&row.Featured,
			&row.OperatorID,
			&row.CreatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan listing")
		}
		out = append(out, toDomainListing(&row))
	}
	return out, rows.Err()
}

func buildListingFilters(params *listing.FindParams) ([]string, []interface{}) {
	where := []string{}
	args := []interface{}{}
	if params.PublicOnly {
		where = append(where, "l.visible = TRUE", fmt.Sprintf("l.state = $%d", len(args)+1))
		args = append(args, string(listing.StatePublished))
	}
	if params.Search != "" {
		where = append(where, fmt.Sprintf("(l.title ILIKE $%d OR l.description ILIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+params.Search+"%")
	}
	if params.RegionID != nil {
		where = append(where, fmt.Sprintf("l.region_id = $%d", len(args)+1))
		args = append(args, *params.RegionID)
	}
	if params.MaxPrice > 0 {
		where = append(where, fmt.Sprintf("l.price_amount <= $%d", len(args)+1))
		args = append(args, params.MaxPrice)
	}
	if params.Featured != nil {
		where = append(where, fmt.Sprintf("l.featured = $%d", len(args)+1))
		args = append(args, *params.Featured)
	}
	return where, args
}

func (g *PgListingRepository) GetPaginated(ctx context.Context, params *listing.FindParams) ([]listing.Listing, int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, 0, err
	}
	where, args := buildListingFilters(params)

	var total int64
	countQuery := repo.Join(listingCountQuery, repo.JoinWhere(where...))
	if err := tx.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, "failed to count listings")
	}

	query := repo.Join(
		listingFindQuery,
		repo.JoinWhere(where...),
		"ORDER BY l.featured DESC, l.created_at DESC, l.id DESC",
		repo.FormatLimitOffset(params.Limit, params.Offset),
	)
	items, err := g.queryListings(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (g *PgListingRepository) GetByID(ctx context.Context, id int64) (listing.Listing, error) {
	items, err := g.queryListings(ctx, repo.Join(listingFindQuery, "WHERE l.id = $1"), id)
	if err != nil {
		return listing.Listing{}, err
	}
	if len(items) == 0 {
		return listing.Listing{}, listing.ErrNotFound
	}
	return items[0], nil
}

func (g *PgListingRepository) Create(ctx context.Context, l listing.Listing) (listing.Listing, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return listing.Listing{}, err
	}
	var id int64
	err = tx.QueryRow(ctx, repo.Insert("listings", listingFields, "id"), listingArgs(l)...).Scan(&id)
	if err != nil {
		return listing.Listing{}, errors.Wrap(err, "failed to insert listing")
	}
	return g.GetByID(ctx, id)
}

func (g *PgListingRepository) Update(ctx context.Context, l listing.Listing) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	args := append(listingArgs(l), l.ID())
	query := repo.Update("listings", listingFields, fmt.Sprintf("id = $%d", len(args)))
	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "failed to update listing")
	}
	if tag.RowsAffected() == 0 {
		return listing.ErrNotFound
	}
	return nil
}

func (g *PgListingRepository) Delete(ctx context.Context, id int64) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, listingDeleteQuery, id)
	if err != nil {
		return errors.Wrap(err, "failed to delete listing")
	}
	if tag.RowsAffected() == 0 {
		return listing.ErrNotFound
	}
	return nil
}
