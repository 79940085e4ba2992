package gateway

import (
	"errors"
	"io"
	"net"
	"syscall"

	"github.com/creastat/stream-gateway/pkg/models"
)

// classifyConnectError categorizes a failure to open the upstream stream.
func classifyConnectError(err error) string {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return models.ErrCodeTimeout
	}
	return models.ErrCodeConnection
}

// classifyStreamError categorizes a failure while reading the open stream.
func classifyStreamError(err error) string {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return models.ErrCodeTimeout
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, syscall.ECONNRESET) || errors.Is(err, net.ErrClosed) {
		return models.ErrCodeConnection
	}
	return models.ErrCodeStream
}
