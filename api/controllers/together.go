package controllers

import (
	"net/http"
	"time"

	"github.com/angelmondragon/wishlist-backend/api/responses"
	"github.com/angelmondragon/wishlist-backend/internal/together"
	"github.com/angelmondragon/wishlist-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/wishlist-backend/pkg/errors"
	"github.com/angelmondragon/wishlist-backend/pkg/logger"
)

type togetherResponse struct {
	together.Counter
	Label string `json:"label"`
	Since string `json:"since"`
}

// Together reports the relationship counter relative to the configured start.
func Together(cfg config.TogetherConfig, now func() time.Time, logg *logger.Logger) http.HandlerFunc {
	if now == nil {
		now = time.Now
	}
	return func(w http.ResponseWriter, r *http.Request) {
		start, err := cfg.StartDate()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "invalid start date"))
			return
		}
		counter := together.Since(start, now())
		responses.WriteSuccess(w, togetherResponse{
			Counter: counter,
			Label:   counter.Label(),
			Since:   start.Format(time.DateOnly),
		})
	}
}
