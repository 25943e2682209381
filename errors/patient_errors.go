// errors/patient_errors.go
package errors

import "errors"

var (
	ErrPatientNotFound        = errors.New("patient not found")
	ErrInvalidPatientData     = errors.New("invalid patient data")
	ErrPatientConflict        = errors.New("patient conflict")
	ErrPatientHasAppointments = errors.New("cannot delete patient with existing appointments")
)
