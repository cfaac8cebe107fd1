package persistence

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/inmovista/inmovista/modules/catalog/domain/entities/region"
	"github.com/inmovista/inmovista/modules/catalog/infrastructure/persistence/models"
	"github.com/inmovista/inmovista/pkg/composables"
)

const (
	regionFindQuery = `SELECT r.id, r.name FROM regions r ORDER BY r.name`

	regionByIDQuery = `SELECT r.id, r.name FROM regions r WHERE r.id = $1`
)

type PgRegionRepository struct{}

func NewRegionRepository() region.Repository {
	return &PgRegionRepository{}
}

func (g *PgRegionRepository) GetAll(ctx context.Context) ([]region.Region, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, regionFindQuery)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query regions")
	}
	defer rows.Close()

	out := make([]region.Region, 0)
	for rows.Next() {
		var row models.Region
		if err := rows.Scan(&row.ID, &row.Name); err != nil {
			return nil, errors.Wrap(err, "failed to scan region")
		}
		out = append(out, toDomainRegion(&row))
	}
	return out, rows.Err()
}

func (g *PgRegionRepository) GetByID(ctx context.Context, id int64) (region.Region, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return region.Region{}, err
	}
	var row models.Region
	if err := tx.QueryRow(ctx, regionByIDQuery, id).Scan(&row.ID, &row.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return region.Region{}, region.ErrNotFound
		}
		return region.Region{}, errors.Wrap(err, "failed to query region")
	}
	return toDomainRegion(&row), nil
}
