package services

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/inmovista/inmovista/modules/catalog/domain/entities/region"
	"github.com/inmovista/inmovista/pkg/serrors"
)

type RegionService struct {
	regions region.Repository
}

func NewRegionService(regions region.Repository) *RegionService {
	return &RegionService{regions: regions}
}

func (s *RegionService) GetAll(ctx context.Context) ([]region.Region, error) {
	return s.regions.GetAll(ctx)
}

func (s *RegionService) GetByID(ctx context.Context, id int64) (region.Region, error) {
	r, err := s.regions.GetByID(ctx, id)
	if errors.Is(err, region.ErrNotFound) {
		return region.Region{}, serrors.NotFound("REGION_NOT_FOUND", "region not found")
	}
	return r, err
}
