package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/angelmondragon/wishlist-backend/internal/gifts"
	"github.com/angelmondragon/wishlist-backend/internal/photo"
	"github.com/angelmondragon/wishlist-backend/internal/render"
	"github.com/angelmondragon/wishlist-backend/pkg/config"
	"github.com/angelmondragon/wishlist-backend/pkg/logger"
)

// User-facing alerts.
const (
	MsgNameRequired  = "Digite o nome do presente!"
	MsgImageTooLarge = "Imagem muito grande, tente outra foto."
	MsgPhotoFailed   = "Erro ao carregar a imagem. Tente outra."
	MsgSaveFailed    = "Erro ao salvar. Verifique se o servidor está rodando."
	MsgDeleteFailed  = "Erro ao tentar deletar."
	MsgToggleFailed  = "Erro ao atualizar status."
	MsgFetchFailed   = "Erro ao conectar com o servidor."
)

// Backend is the server surface the controller needs. *API implements it.
type Backend interface {
	List(ctx context.Context) ([]gifts.Gift, error)
	Create(ctx context.Context, input gifts.CreateInput, idempotencyKey string) (int64, error)
	ToggleDone(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// Options configures a Controller. Zero values select the defaults shared
// with the server config.
type Options struct {
	MaxImageChars  int
	PlaceholderURL string
	Pipeline       photo.Pipeline
	Logger         *logger.Logger
}

// Controller owns the client state and reconciles it with the server. Every
// successful mutation is followed by a full Refresh.
type Controller struct {
	api      Backend
	pipeline photo.Pipeline
	validate *validator.Validate
	logg     *logger.Logger

	maxImageChars int
	placeholder   string

	mu       sync.Mutex
	state    State
	messages []string
	// applied is the generation of the list currently in state.
	applied uint64

	issued     atomic.Uint64
	submitting atomic.Bool
}

func NewController(api Backend, opts Options) *Controller {
	if opts.MaxImageChars <= 0 {
		opts.MaxImageChars = config.DefaultMaxImageChars
	}
	if opts.PlaceholderURL == "" {
		opts.PlaceholderURL = config.DefaultPlaceholderURL
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	return &Controller{
		api:           api,
		pipeline:      opts.Pipeline,
		validate:      validator.New(),
		logg:          opts.Logger,
		maxImageChars: opts.MaxImageChars,
		placeholder:   opts.PlaceholderURL,
		state:         State{Filter: render.FilterAll, Gifts: []gifts.Gift{}},
	}
}

// Refresh replaces the cached list with the server's. A response older than
// the one already applied is dropped.
func (c *Controller) Refresh(ctx context.Context) error {
	gen := c.issued.Add(1)
	list, err := c.api.List(ctx)
	if err != nil {
		c.alert(MsgFetchFailed)
		c.logg.Error(ctx, "client.refresh_failed", err)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen < c.applied {
		c.logg.Debug(c.logg.WithField(ctx, "generation", gen), "client.refresh_stale")
		return nil
	}
	c.applied = gen
	c.state.Gifts = list
	return nil
}

// NewDraft opens a blank form.
func (c *Controller) NewDraft() Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.EditingID = nil
	c.state.PendingImage = ""
	return Draft{Category: DefaultCategory}
}

// BeginEdit opens the form pre-filled from a cached gift. Submitting it
// creates a new gift; there is no update in place.
func (c *Controller) BeginEdit(id int64) (Draft, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	g, ok := c.state.find(id)
	if !ok {
		return Draft{}, fmt.Errorf("%w: %d", ErrUnknownGift, id)
	}
	editing := id
	c.state.EditingID = &editing
	c.state.PendingImage = g.Image
	return Draft{Name: g.Name, Price: g.Price, Category: g.Category, Image: g.Image}, nil
}

// AttachPhoto compresses r in the background. On success the result becomes
// the pending image, the last completion winning. On failure the previous
// pending image is kept and an alert is recorded.
func (c *Controller) AttachPhoto(ctx context.Context, r io.Reader) *photo.Task {
	return c.pipeline.CompressThen(ctx, r, func(res photo.Result, err error) {
		if err != nil {
			c.alert(MsgPhotoFailed)
			c.logg.Warn(c.logg.WithField(ctx, "error", err.Error()), "client.photo_failed")
			return
		}
		c.mu.Lock()
		c.state.PendingImage = res.DataURI
		c.mu.Unlock()
	})
}

// SubmitDraft validates and posts the draft, then refreshes. Only one
// submission runs at a time; a second one fails with ErrSubmitInFlight.
func (c *Controller) SubmitDraft(ctx context.Context, d Draft) (int64, error) {
	if !c.submitting.CompareAndSwap(false, true) {
		return 0, ErrSubmitInFlight
	}
	defer c.submitting.Store(false)

	if err := c.validate.Struct(d); err != nil {
		c.alert(MsgNameRequired)
		return 0, fmt.Errorf("%w: name is required", ErrValidation)
	}

	c.mu.Lock()
	image := d.Image
	if image == "" {
		image = c.state.PendingImage
	}
	editing := c.state.EditingID != nil
	c.mu.Unlock()

	// bytes, matching the server's check and its body limit
	if n := len(image); n > c.maxImageChars {
		c.alert(MsgImageTooLarge)
		return 0, fmt.Errorf("%w: image has %d bytes, limit %d", ErrValidation, n, c.maxImageChars)
	}
	if image == "" && !editing {
		image = c.placeholder
	}

	input := gifts.CreateInput{Name: d.Name, Price: d.Price, Image: image, Category: d.Category}
	id, err := c.api.Create(ctx, input, uuid.NewString())
	if err != nil {
		if errors.Is(err, ErrPayloadTooLarge) {
			c.alert(MsgImageTooLarge)
		} else {
			c.alert(MsgSaveFailed)
		}
		c.logg.Error(ctx, "client.submit_failed", err)
		return 0, err
	}

	c.mu.Lock()
	c.state.EditingID = nil
	c.state.PendingImage = ""
	c.mu.Unlock()

	if err := c.Refresh(ctx); err != nil {
		return id, err
	}
	return id, nil
}

// Toggle flips done on the server and refreshes.
func (c *Controller) Toggle(ctx context.Context, id int64) error {
	if err := c.api.ToggleDone(ctx, id); err != nil {
		c.alert(MsgToggleFailed)
		return err
	}
	return c.Refresh(ctx)
}

// RequestDelete remembers id until ConfirmDelete or CancelDelete.
func (c *Controller) RequestDelete(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	pending := id
	c.state.IDToDelete = &pending
}

func (c *Controller) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.IDToDelete = nil
}

// ConfirmDelete deletes the requested gift and refreshes. Without a pending
// request it does nothing.
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	pending := c.state.IDToDelete
	c.mu.Unlock()
	if pending == nil {
		return nil
	}

	if err := c.api.Delete(ctx, *pending); err != nil {
		c.alert(MsgDeleteFailed)
		return err
	}

	c.mu.Lock()
	c.state.IDToDelete = nil
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// SetFilter selects a category, or render.FilterAll.
func (c *Controller) SetFilter(filter string) {
	if filter == "" {
		filter = render.FilterAll
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Filter = filter
}

// View is the filtered, ordered list to show.
func (c *Controller) View() []gifts.Gift {
	c.mu.Lock()
	defer c.mu.Unlock()
	return render.ComputeView(c.state.Gifts, c.state.Filter)
}

// Cards renders the current view.
func (c *Controller) Cards(reveal *render.Reveal) []render.Card {
	return render.Cards(c.View(), reveal, c.placeholder)
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Messages returns the alerts recorded since the last call and clears them.
func (c *Controller) Messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.messages
	c.messages = nil
	return out
}

func (c *Controller) alert(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msg)
}
