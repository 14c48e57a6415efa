package wintarget

import (
	"errors"

	"github.com/rpdg/wintarget/window"
)

var (
	// ErrNoTarget implies no target window has been adopted yet.
	ErrNoTarget = errors.New("no target window set")

	// ErrWindowGone implies the adopted window handle is no longer valid.
	ErrWindowGone = errors.New("target window is gone or invalid")

	// ErrFacilitiesUnavailable implies the OS input or capture entry
	// points could not be resolved; the controller cannot be built.
	ErrFacilitiesUnavailable = errors.New("required OS input/capture facilities unavailable")

	// ErrPostMessageFailed implies the PostMessageW call returned 0.
	ErrPostMessageFailed = window.ErrPostMessageFailed
)
