package client

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/wishlist-backend/api/routes"
	"github.com/angelmondragon/wishlist-backend/internal/gifts"
	"github.com/angelmondragon/wishlist-backend/internal/render"
	"github.com/angelmondragon/wishlist-backend/pkg/config"
	"github.com/angelmondragon/wishlist-backend/pkg/db/dbtest"
	"github.com/angelmondragon/wishlist-backend/pkg/logger"
	"github.com/angelmondragon/wishlist-backend/pkg/metrics"
)

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func newLiveAPI(t *testing.T, maxImageChars int) *API {
	t.Helper()
	cfg := &config.Config{
		App:      config.AppConfig{Env: "test", APIPrefix: "/api", CORSOrigins: []string{"*"}},
		Redis:    config.RedisConfig{IdempotencyTTL: time.Hour},
		Gifts:    config.GiftsConfig{MaxImageChars: maxImageChars, PlaceholderURL: config.DefaultPlaceholderURL},
		Together: config.TogetherConfig{Start: "2025-09-13"},
	}
	reg := prometheus.NewRegistry()
	svc, err := gifts.NewService(gifts.ServiceParams{
		Repo:          gifts.NewRepository(dbtest.Open(t)),
		MaxImageChars: maxImageChars,
		Metrics:       metrics.NewGiftMetrics(reg),
	})
	require.NoError(t, err)

	logg := logger.New(logger.Options{ServiceName: "test", Level: "debug", Output: io.Discard})
	srv := httptest.NewServer(routes.NewRouter(cfg, logg, okPinger{}, nil, svc, reg))
	t.Cleanup(srv.Close)
	return NewAPI(srv.URL+"/api", srv.Client())
}

func TestControllerAgainstServer(t *testing.T) {
	ctx := context.Background()
	api := newLiveAPI(t, config.DefaultMaxImageChars)
	c := NewController(api, Options{})

	d := c.NewDraft()
	d.Name = "Livro"
	d.Price = "R$ 19,99"
	id, err := c.SubmitDraft(ctx, d)
	require.NoError(t, err)
	assert.Positive(t, id)

	list, err := api.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Livro", list[0].Name)
	assert.Equal(t, config.DefaultPlaceholderURL, list[0].Image)
	assert.Equal(t, "casa", list[0].Category)
	assert.False(t, list[0].Done)

	require.NoError(t, c.Toggle(ctx, id))
	assert.True(t, c.State().Gifts[0].Done)

	reveal := render.NewReveal()
	reveal.ObserveAll(id)
	cards := c.Cards(reveal)
	require.Len(t, cards, 1)
	assert.Equal(t, "gift-item hidden show done", cards[0].Classes)

	disp := NewDispatcher(c)
	disp.Bind(cards)
	require.NoError(t, disp.Dispatch(ctx, render.ActionDelete, id))
	require.NoError(t, c.ConfirmDelete(ctx))
	assert.Empty(t, c.State().Gifts)
}

func TestControllerServerRejectsOversizeImage(t *testing.T) {
	ctx := context.Background()
	api := newLiveAPI(t, 32)
	// the client ceiling is higher than the server's so the request is sent
	c := NewController(api, Options{MaxImageChars: 1000})

	_, err := c.SubmitDraft(ctx, Draft{Name: "Foto", Image: "data:image/jpeg;base64," + strings.Repeat("A", 64)})
	require.ErrorIs(t, err, ErrPayloadTooLarge)
	assert.Equal(t, []string{MsgImageTooLarge}, c.Messages())

	list, err := api.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTogetherOverHTTP(t *testing.T) {
	info, err := newLiveAPI(t, config.DefaultMaxImageChars).Together(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2025-09-13", info.Since)
	assert.NotEmpty(t, info.Label)
}
