// errors/gateway_errors.go
package errors

import "errors"

var (
	ErrGatewayTimeout     = errors.New("crm gateway timed out")
	ErrGatewayUnavailable = errors.New("crm gateway unavailable")
	ErrGatewayRequest     = errors.New("crm gateway request failed")
)
