package usecase

import "errors"

var (
	// ErrDeliveryFailed is returned by a MessageSink when the message was not accepted.
	ErrDeliveryFailed = errors.New("message delivery failed")

	// ErrInvalidMonitorConfig is returned when the poll loop settings cannot start a watch.
	ErrInvalidMonitorConfig = errors.New("invalid monitor config")
)
