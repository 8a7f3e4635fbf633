package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/angelmondragon/wishlist-backend/pkg/errors"
	"github.com/go-chi/chi/v5"
)

// ParseIDParam reads an integer route parameter. Any integer is accepted;
// ids that match no row are a no-op further down.
func ParseIDParam(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	if raw == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, name+" is required").WithDetails(map[string]string{name: "is required"})
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, name+" must be numeric").WithDetails(map[string]string{name: "must be numeric"})
	}
	return id, nil
}
