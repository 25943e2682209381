// errors/appointment_errors.go
package errors

import "errors"

var (
	ErrAppointmentNotFound    = errors.New("appointment not found")
	ErrInvalidAppointmentData = errors.New("invalid appointment data")
	ErrAppointmentConflict    = errors.New("appointment conflict")
)
