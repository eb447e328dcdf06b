package http

import (
	"errors"
	"fmt"
)

var errUnsupported = errors.New("unsupported message type")

func errInvalidPayload(kind string) error {
	return fmt.Errorf("invalid %s payload", kind)
}
