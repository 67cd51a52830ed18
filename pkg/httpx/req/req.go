package req

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"valuebet/pkg/errcodes"
)

var (
	json     = jsoniter.ConfigCompatibleWithStandardLibrary         //nolint:gochecknoglobals // skip
	validate = validator.New(validator.WithRequiredStructEnabled()) //nolint:gochecknoglobals // skip
)

// badRequestError satisfies the coder interface reply.Error maps to
// HTTP statuses.
type badRequestError struct {
	message string
	cause   error
}

func (e *badRequestError) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}

	return e.message
}

func (e *badRequestError) Unwrap() error {
	return e.cause
}

func (e *badRequestError) ErrorCode() errcodes.ErrorCode {
	return errcodes.ValidationError
}

func Read(r *http.Request, dest any) error {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return &badRequestError{message: "invalid JSON", cause: fmt.Errorf("json.Decode: %w", err)}
	}

	if err := validate.StructCtx(r.Context(), dest); err != nil {
		return &badRequestError{message: "validation error", cause: err}
	}

	return nil
}
