package timebank

import (
	"context"
	"errors"

	"github.com/chris/hive-timebank/pkg/storage"
)

// Kind classifies an error returned by the ledger. API layers report it to callers.
type Kind string

const (
	KindAlreadyExists       Kind = "AlreadyExists"
	KindInvalidParticipants Kind = "InvalidParticipants"
	KindInvalidDuration     Kind = "InvalidDuration"
	KindInvalidState        Kind = "InvalidState"
	KindInsufficientBalance Kind = "InsufficientBalance"
	KindProviderAtCapacity  Kind = "ProviderAtCapacity"
	KindNotFound            Kind = "NotFound"

	// KindConflict is reported when concurrent writers kept invalidating an
	// operation until its retries ran out. Callers may retry.
	KindConflict Kind = "Conflict"
	// KindInvalidRequest is reported by transports for malformed requests.
	KindInvalidRequest Kind = "InvalidRequest"
	KindInternal       Kind = "Internal"
)

var (
	// ErrAlreadyExists is returned when opening an account that is already open.
	ErrAlreadyExists = storage.ErrAlreadyExists

	// ErrNotFound is returned when a member or engagement does not exist.
	ErrNotFound = storage.ErrNotFound

	// ErrInvalidParticipants is returned when an engagement names the same member
	// on both sides, or a member ID or party is missing or unknown.
	ErrInvalidParticipants = errors.New("invalid participants")

	// ErrInvalidDuration is returned when hours are not a positive multiple of half an hour
	// within the balance ceiling.
	ErrInvalidDuration = errors.New("invalid duration")

	// ErrInvalidState is returned when an operation is not allowed in the engagement's current state.
	ErrInvalidState = errors.New("invalid state")

	// ErrInsufficientBalance is returned when a reservation would take the requester below zero.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrProviderAtCapacity is returned when settling a reservation could take the provider
	// above the maximum balance.
	ErrProviderAtCapacity = errors.New("provider at capacity")
)

// KindOf maps an error returned by the ledger to its kind.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAlreadyExists):
		return KindAlreadyExists
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidParticipants):
		return KindInvalidParticipants
	case errors.Is(err, ErrInvalidDuration):
		return KindInvalidDuration
	case errors.Is(err, ErrInvalidState):
		return KindInvalidState
	case errors.Is(err, ErrInsufficientBalance):
		return KindInsufficientBalance
	case errors.Is(err, ErrProviderAtCapacity):
		return KindProviderAtCapacity
	case errors.Is(err, storage.ErrConflict):
		return KindConflict
	default:
		return KindInternal
	}
}

// rejected reports whether err is a rule violation rather than a failure.
func rejected(err error) bool {
	switch KindOf(err) {
	case KindInternal, KindConflict:
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}
