package persistence

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/inmovista/inmovista/modules/catalog/domain/entities/photo"
	"github.com/inmovista/inmovista/modules/catalog/infrastructure/persistence/models"
	"github.com/inmovista/inmovista/pkg/composables"
	"github.com/inmovista/inmovista/pkg/repo"
)

const (
	photoFindQuery = `
		SELECT
			p.id,
			p.listing_id,
			p.url,
			p.is_principal,
			p.sort_order,
			p.alt_text,
			p.created_at
		FROM listing_photos p`

	photoMaxOrderQuery = `
		SELECT COALESCE(MAX(sort_order), 0) FROM listing_photos WHERE listing_id = $1`

	photoCountPrincipalQuery = `
		SELECT COUNT(*) FROM listing_photos WHERE listing_id = $1 AND is_principal = TRUE`

	photoClearPrincipalQuery = `
		UPDATE listing_photos SET is_principal = FALSE WHERE listing_id = $1`

	photoMarkPrincipalQuery = `
		UPDATE listing_photos SET is_principal = TRUE WHERE listing_id = $1 AND id = $2`

	photoSetOrderQuery = `
		UPDATE listing_photos SET sort_order = $3 WHERE listing_id = $1 AND id = $2`

	photoSetAltTextQuery = `
		UPDATE listing_photos SET alt_text = $3 WHERE listing_id = $1 AND id = $2`

	photoDeleteQuery = `
		DELETE FROM listing_photos WHERE listing_id = $1 AND id = $2`

	// Window renumbering keeps the relative order stable while closing gaps.
	photoResequenceQuery = `
		UPDATE listing_photos p
		SET sort_order = ranked.rn
		FROM (
			SELECT id, ROW_NUMBER() OVER (ORDER BY sort_order, id) AS rn
			FROM listing_photos
			WHERE listing_id = $1
		) ranked
		WHERE p.id = ranked.id`
)

var photoFields = []string{"listing_id", "url", "is_principal", "sort_order", "alt_text"}

type PgPhotoRepository struct{}

func NewPhotoRepository() photo.Repository {
	return &PgPhotoRepository{}
}

func (g *PgPhotoRepository) GetByListing(ctx context.Context, listingID int64) ([]photo.Photo, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	query := repo.Join(photoFindQuery, "WHERE p.listing_id = $1 ORDER BY p.sort_order, p.id")
	rows, err := tx.Query(ctx, query, listingID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query photos")
	}
	defer rows.Close()

	out := make([]photo.Photo, 0)
	for rows.Next() {
		var row models.Photo
		if err := rows.Scan(
			&row.ID,
			&row.ListingID,
			&row.URL,
			&row.Principal,
			&row.SortOrder,
			&row.AltText,
			&row.CreatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan photo")
		}
		out = append(out, toDomainPhoto(&row))
	}
	return out, rows.Err()
}

func (g *PgPhotoRepository) GetByID(ctx context.Context, listingID, photoID int64) (photo.Photo, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return photo.Photo{}, err
	}
	query := repo.Join(photoFindQuery, "WHERE p.listing_id = $1 AND p.id = $2")
	var row models.Photo
	err = tx.QueryRow(ctx, query, listingID, photoID).Scan(
		&row.ID,
		&row.ListingID,
		&row.URL,
		&row.Principal,
		&row.SortOrder,
		&row.AltText,
		&row.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return photo.Photo{}, photo.ErrNotFound
		}
		return photo.Photo{}, errors.Wrap(err, "failed to query photo")
	}
	return toDomainPhoto(&row), nil
}

func (g *PgPhotoRepository) Create(ctx context.Context, p photo.Photo) (photo.Photo, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return photo.Photo{}, err
	}
	var id int64
	err = tx.QueryRow(
		ctx,
		repo.Insert("listing_photos", photoFields, "id"),
		p.ListingID(),
		p.URL(),
		p.Principal(),
		p.SortOrder(),
		nullText(p.AltText()),
	).Scan(&id)
	if err != nil {
		return photo.Photo{}, errors.Wrap(err, "failed to insert photo")
	}
	return g.GetByID(ctx, p.ListingID(), id)
}

func (g *PgPhotoRepository) Delete(ctx context.Context, listingID, photoID int64) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, photoDeleteQuery, listingID, photoID)
	if err != nil {
		return errors.Wrap(err, "failed to delete photo")
	}
	if tag.RowsAffected() == 0 {
		return photo.ErrNotFound
	}
	return nil
}

func (g *PgPhotoRepository) MaxOrder(ctx context.Context, listingID int64) (int, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	var max int
	if err := tx.QueryRow(ctx, photoMaxOrderQuery, listingID).Scan(&max); err != nil {
		return 0, errors.Wrap(err, "failed to read max sort order")
	}
	return max, nil
}

func (g *PgPhotoRepository) CountPrincipal(ctx context.Context, listingID int64) (int, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	var count int
	if err := tx.QueryRow(ctx, photoCountPrincipalQuery, listingID).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count principal photos")
	}
	return count, nil
}

func (g *PgPhotoRepository) ClearPrincipal(ctx context.Context, listingID int64) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, photoClearPrincipalQuery, listingID); err != nil {
		return errors.Wrap(err, "failed to clear principal flags")
	}
	return nil
}

func (g *PgPhotoRepository) MarkPrincipal(ctx context.Context, listingID, photoID int64) (bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, err
	}
	tag, err := tx.Exec(ctx, photoMarkPrincipalQuery, listingID, photoID)
	if err != nil {
		return false, errors.Wrap(err, "failed to mark principal photo")
	}
	return tag.RowsAffected() > 0, nil
}

func (g *PgPhotoRepository) SetOrder(ctx context.Context, listingID, photoID int64, order int) (bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, err
	}
	tag, err := tx.Exec(ctx, photoSetOrderQuery, listingID, photoID, order)
	if err != nil {
		return false, errors.Wrap(err, "failed to set photo order")
	}
	return tag.RowsAffected() > 0, nil
}

func (g *PgPhotoRepository) Resequence(ctx context.Context, listingID int64) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, photoResequenceQuery, listingID); err != nil {
		return errors.Wrap(err, "failed to resequence photos")
	}
	return nil
}

func (g *PgPhotoRepository) SetAltText(ctx context.Context, listingID, photoID int64, text string) (bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, err
	}
	tag, err := tx.Exec(ctx, photoSetAltTextQuery, listingID, photoID, nullText(text))
	if err != nil {
		return false, errors.Wrap(err, "failed to set photo alt text")
	}
	return tag.RowsAffected() > 0, nil
}
