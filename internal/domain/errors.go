package domain

import "errors"

var (
	ErrInvalidSetting    = errors.New("invalid setting")
	ErrMissingID         = errors.New("registration id is required")
	ErrNoTracker         = errors.New("shortcut tracker accessed outside an active tracker context")
	ErrOverrideNotFound  = errors.New("shortcut override not found")
	ErrTrackerActive     = errors.New("shortcut tracker already active")
	ErrTrackerClosed     = errors.New("shortcut tracker torn down")
	ErrUnknownShortcutID = errors.New("unknown shortcut id")
)
