package gateway

import (
	"errors"
	"fmt"
)

// ErrUnavailable wraps network-level failures: the gateway could not be
// reached at all. Callers use it to tell a connectivity problem apart from
// a rejected request.
var ErrUnavailable = errors.New("gateway unreachable")

// StatusError is a non-2xx response from the gateway.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gateway returned status %d", e.Code)
}

// IsTransport reports whether err is a transport-class failure (network
// error or non-2xx status) as opposed to a local validation error.
func IsTransport(err error) bool {
	var se *StatusError
	return errors.Is(err, ErrUnavailable) || errors.As(err, &se)
}
