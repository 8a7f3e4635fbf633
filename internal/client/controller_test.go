package client

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/wishlist-backend/internal/gifts"
	"github.com/angelmondragon/wishlist-backend/internal/photo"
	"github.com/angelmondragon/wishlist-backend/internal/render"
	"github.com/angelmondragon/wishlist-backend/pkg/config"
)

type fakeBackend struct {
	mu      sync.Mutex
	gifts   []gifts.Gift
	nextID  int64
	keys    []string
	inputs  []gifts.CreateInput
	listErr error

	createErr     error
	createStarted chan struct{}
	createRelease chan struct{}
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{nextID: 1}
}

func (f *fakeBackend) List(ctx context.Context) ([]gifts.Gift, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]gifts.Gift(nil), f.gifts...), nil
}

func (f *fakeBackend) Create(ctx context.Context, input gifts.CreateInput, key string) (int64, error) {
	if f.createStarted != nil {
		f.createStarted <- struct{}{}
	}
	if f.createRelease != nil {
		<-f.createRelease
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = append(f.keys, key)
	f.inputs = append(f.inputs, input)
	if f.createErr != nil {
		return 0, f.createErr
	}
	id := f.nextID
	f.nextID++
	f.gifts = append(f.gifts, gifts.Gift{ID: id, Name: input.Name, Price: input.Price, Image: input.Image, Category: input.Category})
	return id, nil
}

func (f *fakeBackend) ToggleDone(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.gifts {
		if f.gifts[i].ID == id {
			f.gifts[i].Done = !f.gifts[i].Done
		}
	}
	return nil
}

func (f *fakeBackend) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.gifts[:0]
	for _, g := range f.gifts {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	f.gifts = kept
	return nil
}

func TestNewDraftDefaults(t *testing.T) {
	c := NewController(newFakeBackend(), Options{})
	d := c.NewDraft()
	assert.Equal(t, DefaultCategory, d.Category)
	assert.Empty(t, d.Name)
	assert.Equal(t, render.FilterAll, c.State().Filter)
}

func TestSubmitDraftValidatesWithoutNetwork(t *testing.T) {
	backend := newFakeBackend()
	c := NewController(backend, Options{MaxImageChars: 10})

	_, err := c.SubmitDraft(context.Background(), Draft{Category: "casa"})
	require.ErrorIs(t, err, ErrValidation)

	_, err = c.SubmitDraft(context.Background(), Draft{Name: "Livro", Image: strings.Repeat("x", 11)})
	require.ErrorIs(t, err, ErrValidation)

	assert.Empty(t, backend.inputs)
	assert.Equal(t, []string{MsgNameRequired, MsgImageTooLarge}, c.Messages())
	assert.Empty(t, c.Messages())
}

func TestSubmitDraftCountsImageBytes(t *testing.T) {
	backend := newFakeBackend()
	c := NewController(backend, Options{MaxImageChars: 10})

	_, err := c.SubmitDraft(context.Background(), Draft{Name: "Livro", Image: strings.Repeat("é", 6)})
	require.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, backend.inputs)
	assert.Equal(t, []string{MsgImageTooLarge}, c.Messages())
}

func TestSubmitDraftSubstitutesPlaceholder(t *testing.T) {
	backend := newFakeBackend()
	c := NewController(backend, Options{})

	d := c.NewDraft()
	d.Name = "Livro"
	id, err := c.SubmitDraft(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	require.Len(t, backend.inputs, 1)
	assert.Equal(t, config.DefaultPlaceholderURL, backend.inputs[0].Image)
	assert.Equal(t, "casa", backend.inputs[0].Category)

	st := c.State()
	require.Len(t, st.Gifts, 1)
	assert.False(t, st.Gifts[0].Done)
}

func TestEditIsPrefilledCreate(t *testing.T) {
	backend := newFakeBackend()
	backend.gifts = []gifts.Gift{{ID: 1, Name: "Livro", Price: "R$ 10,00", Category: "casa"}}
	backend.nextID = 2
	c := NewController(backend, Options{})
	require.NoError(t, c.Refresh(context.Background()))

	d, err := c.BeginEdit(1)
	require.NoError(t, err)
	assert.Equal(t, "Livro", d.Name)
	require.NotNil(t, c.State().EditingID)

	d.Name = "Livro novo"
	id, err := c.SubmitDraft(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, int64(2), id)

	// editing keeps the empty image instead of the placeholder
	assert.Equal(t, "", backend.inputs[0].Image)
	assert.Nil(t, c.State().EditingID)
	assert.Len(t, c.State().Gifts, 2)

	_, err = c.BeginEdit(99)
	assert.ErrorIs(t, err, ErrUnknownGift)
}

func TestSubmitDraftUsesFreshIdempotencyKeys(t *testing.T) {
	backend := newFakeBackend()
	c := NewController(backend, Options{})
	for i := 0; i < 2; i++ {
		_, err := c.SubmitDraft(context.Background(), Draft{Name: "Livro"})
		require.NoError(t, err)
	}
	require.Len(t, backend.keys, 2)
	assert.NotEmpty(t, backend.keys[0])
	assert.NotEqual(t, backend.keys[0], backend.keys[1])
}

func TestSubmitDraftRejectsDoubleSubmit(t *testing.T) {
	backend := newFakeBackend()
	backend.createStarted = make(chan struct{}, 1)
	backend.createRelease = make(chan struct{})
	c := NewController(backend, Options{})

	errc := make(chan error, 1)
	go func() {
		_, err := c.SubmitDraft(context.Background(), Draft{Name: "Livro"})
		errc <- err
	}()
	<-backend.createStarted

	_, err := c.SubmitDraft(context.Background(), Draft{Name: "Livro"})
	require.ErrorIs(t, err, ErrSubmitInFlight)

	close(backend.createRelease)
	require.NoError(t, <-errc)

	backend.createStarted = nil
	_, err = c.SubmitDraft(context.Background(), Draft{Name: "Caneca"})
	require.NoError(t, err)
	assert.Len(t, backend.inputs, 2)
}

func TestSubmitFlagReleasedAfterFailure(t *testing.T) {
	backend := newFakeBackend()
	backend.createErr = &StatusError{Status: 413}
	c := NewController(backend, Options{})

	_, err := c.SubmitDraft(context.Background(), Draft{Name: "Livro"})
	require.ErrorIs(t, err, ErrPayloadTooLarge)
	assert.Equal(t, []string{MsgImageTooLarge}, c.Messages())

	backend.createErr = &StatusError{Status: 500}
	_, err = c.SubmitDraft(context.Background(), Draft{Name: "Livro"})
	require.ErrorIs(t, err, ErrServer)
	assert.Equal(t, []string{MsgSaveFailed}, c.Messages())
}

type scriptedBackend struct {
	*fakeBackend
	mu      sync.Mutex
	calls   int
	release chan struct{}
	first   []gifts.Gift
	second  []gifts.Gift
}

func (s *scriptedBackend) List(ctx context.Context) ([]gifts.Gift, error) {
	s.mu.Lock()
	s.calls++
	call := s.calls
	s.mu.Unlock()
	if call == 1 {
		<-s.release
		return s.first, nil
	}
	return s.second, nil
}

func TestRefreshDropsStaleResponses(t *testing.T) {
	backend := &scriptedBackend{
		fakeBackend: newFakeBackend(),
		release:     make(chan struct{}),
		first:       []gifts.Gift{{ID: 1, Name: "old"}},
		second:      []gifts.Gift{{ID: 1, Name: "new"}, {ID: 2, Name: "newer"}},
	}
	c := NewController(backend, Options{})

	done := make(chan error, 1)
	go func() { done <- c.Refresh(context.Background()) }()

	require.Eventually(t, func() bool {
		backend.mu.Lock()
		defer backend.mu.Unlock()
		return backend.calls == 1
	}, time.Second, time.Millisecond)

	require.NoError(t, c.Refresh(context.Background()))
	close(backend.release)
	require.NoError(t, <-done)

	st := c.State()
	require.Len(t, st.Gifts, 2)
	assert.Equal(t, "new", st.Gifts[0].Name)
}

func TestRefreshFailureKeepsState(t *testing.T) {
	backend := newFakeBackend()
	backend.gifts = []gifts.Gift{{ID: 1, Name: "Livro"}}
	c := NewController(backend, Options{})
	require.NoError(t, c.Refresh(context.Background()))

	backend.listErr = errors.New("offline")
	require.Error(t, c.Refresh(context.Background()))
	assert.Len(t, c.State().Gifts, 1)
	assert.Equal(t, []string{MsgFetchFailed}, c.Messages())
}

func TestToggleAndDeleteRefresh(t *testing.T) {
	ctx := context.Background()
	backend := newFakeBackend()
	backend.gifts = []gifts.Gift{{ID: 1, Name: "Livro", Category: "casa"}, {ID: 2, Name: "Caneca", Category: "casa"}}
	c := NewController(backend, Options{})
	require.NoError(t, c.Refresh(ctx))

	require.NoError(t, c.Toggle(ctx, 1))
	assert.Equal(t, []int64{2, 1}, viewIDs(c.View()))

	require.NoError(t, c.ConfirmDelete(ctx))
	assert.Len(t, c.State().Gifts, 2)

	c.RequestDelete(2)
	c.CancelDelete()
	require.NoError(t, c.ConfirmDelete(ctx))
	assert.Len(t, c.State().Gifts, 2)

	c.RequestDelete(2)
	require.NoError(t, c.ConfirmDelete(ctx))
	assert.Nil(t, c.State().IDToDelete)
	assert.Equal(t, []int64{1}, viewIDs(c.View()))
}

func TestSetFilter(t *testing.T) {
	backend := newFakeBackend()
	backend.gifts = []gifts.Gift{
		{ID: 1, Category: "casa"},
		{ID: 2, Category: "casa", Done: true},
		{ID: 3, Category: "musica"},
	}
	c := NewController(backend, Options{})
	require.NoError(t, c.Refresh(context.Background()))

	assert.Equal(t, []int64{1, 3, 2}, viewIDs(c.View()))
	c.SetFilter("casa")
	assert.Equal(t, []int64{1, 2}, viewIDs(c.View()))
	c.SetFilter("")
	assert.Equal(t, render.FilterAll, c.State().Filter)
}

func TestAttachPhoto(t *testing.T) {
	c := NewController(newFakeBackend(), Options{Pipeline: photo.Pipeline{MaxWidth: 50}})

	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 200, 100))
	img.Set(0, 0, color.Black)
	require.NoError(t, png.Encode(&buf, img))

	res, err := c.AttachPhoto(context.Background(), &buf).Wait()
	require.NoError(t, err)
	assert.Equal(t, 50, res.Width)
	pending := c.State().PendingImage
	assert.True(t, strings.HasPrefix(pending, "data:image/jpeg;base64,"))

	_, err = c.AttachPhoto(context.Background(), strings.NewReader("nope")).Wait()
	require.ErrorIs(t, err, photo.ErrImageDecode)
	assert.Equal(t, pending, c.State().PendingImage)
	assert.Equal(t, []string{MsgPhotoFailed}, c.Messages())
}

func TestPendingPhotoIsSubmitted(t *testing.T) {
	backend := newFakeBackend()
	c := NewController(backend, Options{})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 10, 10))))
	_, err := c.AttachPhoto(context.Background(), &buf).Wait()
	require.NoError(t, err)

	_, err = c.SubmitDraft(context.Background(), Draft{Name: "Foto"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(backend.inputs[0].Image, "data:image/jpeg;base64,"))
	assert.Empty(t, c.State().PendingImage)
}

func viewIDs(list []gifts.Gift) []int64 {
	out := make([]int64, 0, len(list))
	for _, g := range list {
		out = append(out, g.ID)
	}
	return out
}
