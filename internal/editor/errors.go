package editor

import (
	"errors"
	"fmt"
)

// EditError reports an invalid editing request.
//
// These originate from user-driven flows (split, merge, move, key
// reselection) and must degrade gracefully in the UI, so they are returned
// as structured results, never panics. Validation always runs before any
// mutation: an operation either returns fully-updated copies or leaves
// every input untouched.
type EditError struct {
	// Code identifies the failure category.
	Code EditErrorCode

	// Message is a human-readable reason.
	Message string

	// EventID identifies the affected event, when one applies.
	EventID string

	// AssetID identifies the affected asset, when one applies.
	AssetID string
}

// EditErrorCode categorizes editing failures.
type EditErrorCode string

const (
	// ErrCodeTooFewAssets indicates a split on an event with fewer than two assets.
	ErrCodeTooFewAssets EditErrorCode = "TOO_FEW_ASSETS"

	// ErrCodeTooFewGroups indicates a split into fewer than two groups.
	ErrCodeTooFewGroups EditErrorCode = "TOO_FEW_GROUPS"

	// ErrCodeUnpartitioned indicates split groups that are not an exact
	// partition of the event's assets (empty group, missing asset,
	// duplicate, or unknown id).
	ErrCodeUnpartitioned EditErrorCode = "UNPARTITIONED_SPLIT"

	// ErrCodeTooFewEvents indicates a merge of fewer than two events.
	ErrCodeTooFewEvents EditErrorCode = "TOO_FEW_EVENTS"

	// ErrCodeMixedOwners indicates a merge across different owners.
	ErrCodeMixedOwners EditErrorCode = "MIXED_OWNERS"

	// ErrCodeMixedContexts indicates a merge or move across different contexts.
	ErrCodeMixedContexts EditErrorCode = "MIXED_CONTEXTS"

	// ErrCodeSameEvent indicates a move whose source and target are the same event.
	ErrCodeSameEvent EditErrorCode = "SAME_EVENT"

	// ErrCodeAssetNotInEvent indicates a referenced asset the event does not own.
	ErrCodeAssetNotInEvent EditErrorCode = "ASSET_NOT_IN_EVENT"

	// ErrCodeWouldEmptySource indicates a move that would leave the source
	// event without assets.
	ErrCodeWouldEmptySource EditErrorCode = "WOULD_EMPTY_SOURCE"

	// ErrCodeNotFound indicates a referenced event that does not exist.
	ErrCodeNotFound EditErrorCode = "NOT_FOUND"
)

// Error implements the error interface.
func (e *EditError) Error() string {
	switch {
	case e.EventID != "" && e.AssetID != "":
		return fmt.Sprintf("%s: %s (event=%s, asset=%s)", e.Code, e.Message, e.EventID, e.AssetID)
	case e.EventID != "":
		return fmt.Sprintf("%s: %s (event=%s)", e.Code, e.Message, e.EventID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// CodeOf extracts the edit error code from an error chain, or "" if the
// error is not an EditError.
func CodeOf(err error) EditErrorCode {
	var ee *EditError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return ""
}

// IsNotFound reports whether the error is a not-found outcome.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	return CodeOf(err) == ErrCodeNotFound
}
