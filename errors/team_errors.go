// errors/team_errors.go
package errors

import "errors"

var (
	ErrTeamMemberNotFound    = errors.New("team member not found")
	ErrInvalidTeamMemberData = errors.New("invalid team member data")
	ErrTeamMemberConflict    = errors.New("team member conflict")
)
