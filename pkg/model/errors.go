package model

import "errors"

var (
	// ErrDeviceNotConfigured means an operation requires a field (name,
	// MAC, counts) the device has not yet discovered.
	ErrDeviceNotConfigured = errors.New("model: device not configured")

	// ErrChannelNotFound means no channel with the given direction/number exists.
	ErrChannelNotFound = errors.New("model: channel not found")

	// ErrSubscriptionNotFound means no subscription matched the filter.
	ErrSubscriptionNotFound = errors.New("model: subscription not found")

	// ErrServiceNotFound means no service endpoint with the given name exists.
	ErrServiceNotFound = errors.New("model: service endpoint not found")
)
