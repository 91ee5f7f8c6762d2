package httpstore

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
)

// ErrDecode marks a response body that was not a JSON list of todos.
var ErrDecode = errors.New("decode todos")

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.Code)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Code, strings.TrimSpace(e.Body))
}

// Kinds reported by Classify.
const (
	KindTimeout = "timeout"
	KindDNS     = "dns"
	KindRefused = "refused"
	KindStatus  = "status"
	KindDecode  = "decode"
	KindNetwork = "network"
)

// Classify names the failure behind a Fetch error, for log fields.
func Classify(err error) string {
	if err == nil {
		return ""
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return KindStatus
	}
	if errors.Is(err, ErrDecode) {
		return KindDecode
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return KindDNS
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return KindRefused
	}
	return KindNetwork
}
