package services

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"github.com/inmovista/inmovista/modules/catalog/domain/aggregates/listing"
	"github.com/inmovista/inmovista/modules/crm/domain/aggregates/lead"
	"github.com/inmovista/inmovista/pkg/capabilities"
	"github.com/inmovista/inmovista/pkg/composables"
	"github.com/inmovista/inmovista/pkg/eventbus"
	"github.com/inmovista/inmovista/pkg/ratelimit"
	"github.com/inmovista/inmovista/pkg/serrors"
)

type LeadCreatedEvent struct {
	Result lead.Lead
}

type LeadUpdatedEvent struct {
	Result lead.Lead
}

// SubmitLeadParams is the public intake payload. Honeypot carries the value
// of a form field hidden from humans; bots fill it in.
type SubmitLeadParams struct {
	ListingID int64
	Name      string
	Phone     string
	Email     string
	Message   string
	Channel   string
	Honeypot  string
}

type UpdateLeadParams struct {
	State              lead.State
	Notes              *string
	AssignedOperatorID *int64
	ClearAssignment    bool
}

type LeadService struct {
	leads     lead.Repository
	listings  listing.Repository
	limiter   ratelimit.Store
	caps      *capabilities.Registry
	publisher eventbus.EventBus
}

func NewLeadService(
	leads lead.Repository,
	listings listing.Repository,
	limiter ratelimit.Store,
	caps *capabilities.Registry,
	publisher eventbus.EventBus,
) *LeadService {
	return &LeadService{
		leads:     leads,
		listings:  listings,
		limiter:   limiter,
		caps:      caps,
		publisher: publisher,
	}
}

func (s *LeadService) GetPaginated(ctx context.Context, params *lead.FindParams) ([]lead.Lead, int64, error) {
	return s.leads.GetPaginated(ctx, params)
}

func (s *LeadService) GetByID(ctx context.Context, id int64) (lead.Lead, error) {
	l, err := s.leads.GetByID(ctx, id)
	if errors.Is(err, lead.ErrNotFound) {
		return lead.Lead{}, serrors.NotFound("LEAD_NOT_FOUND", "lead not found")
	}
	return l, err
}

// Submit runs the public intake gate. The returned id is zero when the
// honeypot tripped: the caller still answers success so the bot learns
// nothing, but no row exists.
func (s *LeadService) Submit(ctx context.Context, params *SubmitLeadParams) (int64, error) {
	if strings.TrimSpace(params.Honeypot) != "" {
		composables.UseLogger(ctx).Info("lead intake honeypot tripped")
		return 0, nil
	}

	if err := validateSubmit(params); err != nil {
		return 0, err
	}

	if ip, ok := composables.UseIP(ctx); ok {
		allowed, err := s.limiter.CheckAndIncrement(ctx, ip)
		if err != nil {
			return 0, errors.Wrap(err, "failed to check lead rate limit")
		}
		if !allowed {
			return 0, serrors.RateLimited("LEAD_RATE_LIMITED", "too many submissions, try again later")
		}
	}

	var created lead.Lead
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		target, err := s.listings.GetByID(txCtx, params.ListingID)
		if errors.Is(err, listing.ErrNotFound) {
			return serrors.NotFound("LEAD_LISTING_NOT_FOUND", "listing not found")
		}
		if err != nil {
			return err
		}
		if !target.Public() {
			return serrors.NotFound("LEAD_LISTING_NOT_FOUND", "listing not found")
		}

		entity := lead.New(
			params.ListingID,
			params.Name,
			params.Phone,
			params.Email,
			params.Message,
			params.Channel,
		)
		if ip, ok := composables.UseIP(txCtx); ok {
			ua, _ := composables.UseUserAgent(txCtx)
			entity = entity.WithRequestMeta(ip, ua)
		}
		if s.caps.Has(txCtx, capabilities.LeadAssignment) && target.OperatorID() != nil {
			entity = entity.WithAssignedOperator(target.OperatorID())
		}

		created, err = s.leads.Create(txCtx, entity)
		return err
	})
	if err != nil {
		return 0, err
	}

	composables.UseLogger(ctx).WithFields(logrus.Fields{
		"lead_id":    created.ID(),
		"listing_id": created.ListingID(),
	}).Info("lead accepted")
	s.publisher.Publish(LeadCreatedEvent{Result: created})
	return created.ID(), nil
}

func validateSubmit(params *SubmitLeadParams) error {
	if params.ListingID <= 0 {
		return serrors.Validation("LEAD_LISTING_REQUIRED", "listing id is required")
	}
	if strings.TrimSpace(params.Name) == "" {
		return serrors.Validation("LEAD_NAME_REQUIRED", "name is required")
	}
	if strings.TrimSpace(params.Phone) == "" && strings.TrimSpace(params.Email) == "" {
		return serrors.Validation("LEAD_CONTACT_REQUIRED", "phone or email is required")
	}
	return nil
}

func (s *LeadService) Update(ctx context.Context, id int64, params *UpdateLeadParams) (lead.Lead, error) {
	if params.State != "" && !params.State.Valid() {
		return lead.Lead{}, serrors.Validation("LEAD_INVALID_STATE", "unknown lead state")
	}

	var updated lead.Lead
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		entity, err := s.leads.GetByID(txCtx, id)
		if errors.Is(err, lead.ErrNotFound) {
			return serrors.NotFound("LEAD_NOT_FOUND", "lead not found")
		}
		if err != nil {
			return err
		}

		if params.State != "" {
			entity = entity.WithState(params.State)
		}
		if params.Notes != nil {
			entity = entity.WithNotes(*params.Notes)
		}
		if params.ClearAssignment {
			entity = entity.WithAssignedOperator(nil)
		} else if params.AssignedOperatorID != nil {
			entity = entity.WithAssignedOperator(params.AssignedOperatorID)
		}

		if err := s.leads.Update(txCtx, entity); err != nil {
			return err
		}
		updated = entity
		return nil
	})
	if err != nil {
		return lead.Lead{}, err
	}
	s.publisher.Publish(LeadUpdatedEvent{Result: updated})
	return updated, nil
}
