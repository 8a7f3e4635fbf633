package gifts

import (
	"context"
	"errors"

	"github.com/angelmondragon/wishlist-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/wishlist-backend/pkg/errors"
	"github.com/angelmondragon/wishlist-backend/pkg/logger"
	"github.com/angelmondragon/wishlist-backend/pkg/metrics"
)

// ServiceParams groups dependencies for the gift service.
type ServiceParams struct {
	Repo Repository
	// MaxImageChars caps the image field length. Zero selects the default.
	MaxImageChars int
	Metrics       *metrics.GiftMetrics
	Logger        *logger.Logger
}

// Service exposes the gift record lifecycle: create, toggle, delete.
type Service interface {
	List(ctx context.Context) ([]Gift, error)
	Create(ctx context.Context, input CreateInput) (int64, error)
	ToggleDone(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo          Repository
	maxImageChars int
	metrics       *metrics.GiftMetrics
	logg          *logger.Logger
}

// NewService builds a gift service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, errors.New("gift repo is required")
	}
	maxChars := params.MaxImageChars
	if maxChars <= 0 {
		maxChars = config.DefaultMaxImageChars
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		repo:          params.Repo,
		maxImageChars: maxChars,
		metrics:       params.Metrics,
		logg:          logg,
	}, nil
}

func (s *service) List(ctx context.Context) ([]Gift, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "list gifts")
	}
	out := make([]Gift, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromModel(row))
	}
	return out, nil
}

// Create persists a new gift with done=false. The image is stored verbatim;
// an image longer than the ceiling is rejected without touching the store.
// Length is counted in bytes, the same unit the request body limit uses.
func (s *service) Create(ctx context.Context, input CreateInput) (int64, error) {
	if n := len(input.Image); n > s.maxImageChars {
		s.metrics.IncRejected(metrics.RejectReasonImageTooLarge)
		return 0, pkgerrors.New(pkgerrors.CodePayloadTooLarge, "image exceeds the size limit").
			WithDetails(map[string]int{"image_chars": n, "max_chars": s.maxImageChars})
	}

	model := input.toModel()
	id, err := s.repo.Create(ctx, &model)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "create gift")
	}
	s.metrics.IncCreated()
	s.logg.Info(s.logg.WithGiftID(ctx, id), "gift.created")
	return id, nil
}

func (s *service) ToggleDone(ctx context.Context, id int64) error {
	if err := s.repo.ToggleDone(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "toggle gift")
	}
	s.metrics.IncToggled()
	return nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "delete gift")
	}
	s.metrics.IncDeleted()
	s.logg.Info(s.logg.WithGiftID(ctx, id), "gift.deleted")
	return nil
}
