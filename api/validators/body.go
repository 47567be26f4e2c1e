package validators

import (
	"encoding/json"
	"io"
	"net/http"

	pkgerrors "github.com/itprodirect/surplus-backend/pkg/errors"
)

// DecodeJSONBody decodes a request body into dest. Unknown fields are
// tolerated on purpose: the public forms have shipped several payload
// generations and the services normalize aliases themselves. Field
// level validation also lives in the services, which own the site's
// historical error strings.
func DecodeJSONBody(r *http.Request, dest any) error {
	defer func() {
		io.Copy(io.Discard, r.Body)
	}()
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Validation failed").
			WithDetails([]string{"Request body must be valid JSON"})
	}
	return nil
}
