package services

import "errors"

var (
	ErrShopDisabled       = errors.New("shop is disabled")
	ErrEmptyOrder         = errors.New("order must contain at least one item")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrProductNotFound    = errors.New("product not found")
	ErrProductUnavailable = errors.New("product is not available")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderCancelled     = errors.New("order is cancelled")
	ErrInvalidStatus      = errors.New("invalid status")

	ErrEventNotFound        = errors.New("event not found")
	ErrRegistrationClosed   = errors.New("registration is closed for this event")
	ErrDeadlinePassed       = errors.New("registration deadline has passed")
	ErrAlreadyRegistered    = errors.New("email already registered for this event")
	ErrEventFull            = errors.New("event is full")
	ErrInvalidEmail         = errors.New("invalid email address")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrInvalidPass          = errors.New("invalid pass")
	ErrRegistrationRejected = errors.New("registration was rejected")
	ErrAlreadyCheckedIn     = errors.New("registration already checked in")
)
