package reply

import (
	"context"
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"valuebet/pkg/contextx"
	"valuebet/pkg/errcodes"
	"valuebet/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// coder is implemented by errors carrying a machine-readable code,
// e.g. domain.AppError.
type coder interface {
	error
	ErrorCode() errcodes.ErrorCode
}

type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	SupportID string `json:"supportId"`
}

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

func OK(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
}

func Created(w http.ResponseWriter) {
	w.WriteHeader(http.StatusCreated)
}

func JSON(ctx context.Context, w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger(ctx).Error("json.Encode", logx.Error(err))
	}
}

func Error(ctx context.Context, w http.ResponseWriter, err error) {
	logger(ctx).Error("error", logx.Error(err))

	code := errcodes.InternalServerError

	var coded coder
	if errors.As(err, &coded) {
		code = coded.ErrorCode()
	}

	response := errorResponse{
		Code:      code.String(),
		Message:   err.Error(),
		SupportID: supportID(ctx),
	}

	JSON(ctx, w, statusFromCode(code), response)
}

func statusFromCode(code errcodes.ErrorCode) int {
	switch code {
	case errcodes.ValidationError, errcodes.InvalidOdds, errcodes.InvalidSelection, errcodes.InvalidResult:
		return http.StatusBadRequest
	case errcodes.NotFound, errcodes.BetNotFound:
		return http.StatusNotFound
	case errcodes.Forbidden:
		return http.StatusForbidden
	case errcodes.DuplicateBet, errcodes.StaleState:
		return http.StatusConflict
	case errcodes.Unresolvable, errcodes.InsufficientData:
		return http.StatusUnprocessableEntity
	case errcodes.TimeoutExceeded:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func supportID(ctx context.Context) string {
	traceID, err := contextx.TraceIDFromContext(ctx)
	if err != nil {
		return "unsupported"
	}

	return traceID.String()
}
