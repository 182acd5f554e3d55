// Package respond writes JSON responses and maps ledger errors to HTTP statuses.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/chris/hive-timebank/pkg/api"
	"github.com/chris/hive-timebank/pkg/timebank"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// StatusOf returns the HTTP status reported for an error kind.
func StatusOf(kind timebank.Kind) int {
	switch kind {
	case timebank.KindInvalidParticipants, timebank.KindInvalidDuration, timebank.KindInvalidRequest:
		return http.StatusBadRequest
	case timebank.KindNotFound:
		return http.StatusNotFound
	case timebank.KindAlreadyExists, timebank.KindInvalidState, timebank.KindConflict:
		return http.StatusConflict
	case timebank.KindInsufficientBalance, timebank.KindProviderAtCapacity:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(r.Context(), "failed to write response", "error", err)
	}
}

// Error writes a ledger error as {kind, message}. Internal errors are logged
// and reported without their details.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	kind := timebank.KindOf(err)
	message := err.Error()
	if kind == timebank.KindInternal {
		slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		message = "internal error"
	}
	JSON(w, r, StatusOf(kind), api.Error{Kind: string(kind), Message: message})
}

// Invalid writes an InvalidRequest error for a malformed or invalid request.
func Invalid(w http.ResponseWriter, r *http.Request, err error) {
	message := err.Error()
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		message = fmt.Sprintf("invalid request: %s", verrs.Error())
	}
	JSON(w, r, http.StatusBadRequest, api.Error{Kind: string(timebank.KindInvalidRequest), Message: message})
}

// ParamError reports path and query parameters the router could not bind.
func ParamError(w http.ResponseWriter, r *http.Request, err error) {
	Invalid(w, r, err)
}

// Decode reads a JSON request body into v.
func Decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
