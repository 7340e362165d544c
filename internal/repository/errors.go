package repository

import "errors"

var (
	// ErrProjectNotFound indicates the project id or short id resolved to
	// no row.
	ErrProjectNotFound = errors.New("project not found")

	// ErrScheduleNotFound indicates no schedule has been generated (or
	// saved) for the project yet.
	ErrScheduleNotFound = errors.New("schedule not found")

	// ErrLineItemNotFound indicates the estimate line id resolved to no row.
	ErrLineItemNotFound = errors.New("estimate line item not found")
)
