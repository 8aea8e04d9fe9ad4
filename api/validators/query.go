package validators

import (
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/denizaltun/quickpos-backend/pkg/errors"
)

const queryDateLayout = "2006-01-02"

// ParseQueryDate reads an optional YYYY-MM-DD query parameter. A blank
// parameter returns nil.
func ParseQueryDate(r *http.Request, key string) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	value, err := time.Parse(queryDateLayout, raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be a YYYY-MM-DD date").
			WithDetails(map[string]any{"field": key})
	}
	return &value, nil
}
