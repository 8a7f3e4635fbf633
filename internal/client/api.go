package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/angelmondragon/wishlist-backend/internal/gifts"
	"github.com/angelmondragon/wishlist-backend/internal/together"
	"github.com/angelmondragon/wishlist-backend/pkg/types"
)

const idempotencyHeader = "Idempotency-Key"

// API talks to the gift routes under baseURL (for example
// "http://localhost:5000/api").
type API struct {
	baseURL string
	http    *http.Client
}

// NewAPI builds an API client. A nil hc gets a client with a 30s timeout.
func NewAPI(baseURL string, hc *http.Client) *API {
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	return &API{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// TogetherInfo is the body of GET /together.
type TogetherInfo struct {
	together.Counter
	Label string `json:"label"`
	Since string `json:"since"`
}

func (a *API) List(ctx context.Context) ([]gifts.Gift, error) {
	var out []gifts.Gift
	if err := a.do(ctx, http.MethodGet, "/gifts", nil, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []gifts.Gift{}
	}
	return out, nil
}

// Create posts a new gift. idempotencyKey is sent when non-empty.
func (a *API) Create(ctx context.Context, input gifts.CreateInput, idempotencyKey string) (int64, error) {
	var headers map[string]string
	if idempotencyKey != "" {
		headers = map[string]string{idempotencyHeader: idempotencyKey}
	}
	var out types.CreatedResponse
	if err := a.do(ctx, http.MethodPost, "/gifts", input, headers, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (a *API) ToggleDone(ctx context.Context, id int64) error {
	return a.do(ctx, http.MethodPut, "/gifts/"+strconv.FormatInt(id, 10)+"/done", nil, nil, nil)
}

func (a *API) Delete(ctx context.Context, id int64) error {
	return a.do(ctx, http.MethodDelete, "/gifts/"+strconv.FormatInt(id, 10), nil, nil, nil)
}

func (a *API) Together(ctx context.Context) (TogetherInfo, error) {
	var out TogetherInfo
	err := a.do(ctx, http.MethodGet, "/together", nil, nil, &out)
	return out, err
}

func (a *API) do(ctx context.Context, method, path string, body any, headers map[string]string, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeStatusError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func decodeStatusError(resp *http.Response) error {
	se := &StatusError{Status: resp.StatusCode}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	var env types.ErrorEnvelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Error.Code != "" {
		se.Code = env.Error.Code
		se.Message = env.Error.Message
	} else {
		se.Message = strings.TrimSpace(string(raw))
	}
	return se
}
