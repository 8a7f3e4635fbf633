package gifts

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/wishlist-backend/pkg/db/dbtest"
	"github.com/angelmondragon/wishlist-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/wishlist-backend/pkg/errors"
	"github.com/angelmondragon/wishlist-backend/pkg/metrics"
)

type stubRepo struct {
	err     error
	created int
}

func (s *stubRepo) List(ctx context.Context) ([]models.Gift, error) { return nil, s.err }
func (s *stubRepo) Create(ctx context.Context, gift *models.Gift) (int64, error) {
	s.created++
	return 0, s.err
}
func (s *stubRepo) ToggleDone(ctx context.Context, id int64) error { return s.err }
func (s *stubRepo) Delete(ctx context.Context, id int64) error     { return s.err }
func (s *stubRepo) Count(ctx context.Context) (int64, error)       { return 0, s.err }

func TestNewServiceRequiresRepo(t *testing.T) {
	_, err := NewService(ServiceParams{})
	require.Error(t, err)
}

func TestServiceCreateRejectsOversizeImageWithoutWriting(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(dbtest.Open(t))
	reg := prometheus.NewRegistry()
	svc, err := NewService(ServiceParams{Repo: repo, MaxImageChars: 10, Metrics: metrics.NewGiftMetrics(reg)})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateInput{Name: "Livro", Image: strings.Repeat("x", 11)})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodePayloadTooLarge))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	id, err := svc.Create(ctx, CreateInput{Name: "Livro", Image: strings.Repeat("x", 10)})
	require.NoError(t, err)
	assert.Positive(t, id)

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestServiceCreateCountsImageBytes(t *testing.T) {
	repo := &stubRepo{}
	svc, err := NewService(ServiceParams{Repo: repo, MaxImageChars: 10})
	require.NoError(t, err)

	// six runes, twelve bytes
	_, err = svc.Create(context.Background(), CreateInput{Name: "Livro", Image: strings.Repeat("é", 6)})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodePayloadTooLarge))
	assert.Zero(t, repo.created)
}

func TestServiceCreateDefaultsCeiling(t *testing.T) {
	svc, err := NewService(ServiceParams{Repo: &stubRepo{}})
	require.NoError(t, err)
	assert.Equal(t, 4_500_000, svc.(*service).maxImageChars)
}

func TestServiceStoresImageVerbatim(t *testing.T) {
	ctx := context.Background()
	svc, err := NewService(ServiceParams{Repo: NewRepository(dbtest.Open(t))})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateInput{Name: "Livro", Price: "R$ 19,99", Category: "casa"})
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, Gift{ID: list[0].ID, Name: "Livro", Price: "R$ 19,99", Image: "", Category: "casa", Done: false}, list[0])
}

func TestServiceMapsStorageErrors(t *testing.T) {
	ctx := context.Background()
	svc, err := NewService(ServiceParams{Repo: &stubRepo{err: errors.New("disk full")}})
	require.NoError(t, err)

	_, err = svc.List(ctx)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStorage))
	_, err = svc.Create(ctx, CreateInput{Name: "Livro"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStorage))
	assert.True(t, pkgerrors.IsCode(svc.ToggleDone(ctx, 1), pkgerrors.CodeStorage))
	assert.True(t, pkgerrors.IsCode(svc.Delete(ctx, 1), pkgerrors.CodeStorage))
}

func TestServiceCountsMutations(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	m := metrics.NewGiftMetrics(reg)
	svc, err := NewService(ServiceParams{Repo: NewRepository(dbtest.Open(t)), Metrics: m, MaxImageChars: 4})
	require.NoError(t, err)

	id, err := svc.Create(ctx, CreateInput{Name: "Livro"})
	require.NoError(t, err)
	require.NoError(t, svc.ToggleDone(ctx, id))
	require.NoError(t, svc.Delete(ctx, id))
	_, _ = svc.Create(ctx, CreateInput{Name: "Foto", Image: "data:"})

	mfs, err := reg.Gather()
	require.NoError(t, err)
	values := map[string]float64{}
	for _, mf := range mfs {
		for _, metric := range mf.GetMetric() {
			values[mf.GetName()] += metric.GetCounter().GetValue()
		}
	}
	assert.Equal(t, 1.0, values["wishlist_gifts_created_total"])
	assert.Equal(t, 1.0, values["wishlist_gifts_toggled_total"])
	assert.Equal(t, 1.0, values["wishlist_gifts_deleted_total"])
	assert.Equal(t, 1.0, values["wishlist_gifts_rejected_total"])
}
