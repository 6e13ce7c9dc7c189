package registry

import (
	"context"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
)

// explainedError carries a message a user can act on. The original error
// stays reachable through errors.Unwrap.
type explainedError struct {
	msg string
	err error
}

func (e *explainedError) Error() string { return e.msg }
func (e *explainedError) Unwrap() error { return e.err }

// Explain replaces err's message with an actionable one. nil stays nil.
func Explain(err error) error {
	if err == nil {
		return nil
	}
	var already *explainedError
	if errors.As(err, &already) {
		return err
	}
	return &explainedError{msg: categorizeError(err), err: err}
}

// categorizeError inspects the error chain for known types before falling
// back to the message text
func categorizeError(err error) string {
	var status *StatusError
	if errors.As(err, &status) {
		return categorizeStatus(status)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return "Request timeout - the registry took too long to respond, try increasing registry.timeout"
	}
	if errors.Is(err, context.Canceled) {
		return "Request cancelled"
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return "Malformed registry response - check registry.base_url: " + err.Error()
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return "Request timeout - the registry took too long to respond, try increasing registry.timeout"
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if msg, ok := categorizeNetError(opErr); ok {
			return msg
		}
	}

	var unknownAuthority x509.UnknownAuthorityError
	if errors.As(err, &unknownAuthority) {
		return "TLS certificate signed by unknown authority - the system CA bundle may be missing"
	}
	var invalidCert x509.CertificateInvalidError
	if errors.As(err, &invalidCert) {
		return "TLS certificate is invalid: " + invalidCert.Error()
	}

	return categorizeMessage(err.Error())
}

func categorizeStatus(e *StatusError) string {
	switch {
	case e.StatusCode == http.StatusNotFound:
		return "Not found on the registry"
	case e.StatusCode == http.StatusTooManyRequests:
		return "Rate limited by the registry - wait a moment and reload"
	case e.StatusCode == http.StatusForbidden:
		return "Request rejected by the registry - check registry.user_agent"
	case e.StatusCode >= 500:
		return fmt.Sprintf("Registry unavailable (status %d) - try again later", e.StatusCode)
	}
	return fmt.Sprintf("Unexpected registry response (status %d)", e.StatusCode)
}

// categorizeNetError handles dial and read failures by errno
func categorizeNetError(e *net.OpError) (string, bool) {
	if e.Timeout() {
		return "Connection timeout - the registry took too long to respond, try increasing registry.timeout", true
	}

	var errno syscall.Errno
	if !errors.As(e.Err, &errno) {
		return "", false
	}
	switch errno {
	case syscall.ECONNREFUSED:
		return "Connection refused - check registry.base_url", true
	case syscall.ECONNRESET:
		return "Connection reset by the registry - try again", true
	case syscall.ENETUNREACH:
		return "Network unreachable - check your network connection", true
	case syscall.EHOSTUNREACH:
		return "Host unreachable - check your network connection", true
	}
	return "", false
}

// categorizeMessage matches well-known fragments of error strings
func categorizeMessage(errStr string) string {
	errLower := strings.ToLower(errStr)

	switch {
	case strings.Contains(errLower, "deadline exceeded"):
		return "Request timeout - the registry took too long to respond, try increasing registry.timeout"

	// proxy errors often also contain "connection refused"
	case strings.Contains(errLower, "proxy"):
		return "Proxy connection failed - check HTTPS_PROXY"

	case strings.Contains(errLower, "no such host"),
		strings.Contains(errLower, "dial tcp: lookup"):
		return "DNS resolution failed - check your network connection"

	case strings.Contains(errLower, "connection refused"):
		return "Connection refused - check registry.base_url"

	case strings.Contains(errLower, "connection reset"):
		return "Connection reset by the registry - try again"

	case strings.Contains(errLower, "network is unreachable"),
		strings.Contains(errLower, "no route to host"):
		return "Network unreachable - check your network connection"

	case strings.Contains(errLower, "x509"),
		strings.Contains(errLower, "certificate"),
		strings.Contains(errLower, "tls"):
		return "TLS error - " + errStr

	case strings.Contains(errLower, "eof"):
		return "Connection closed unexpectedly - try again"

	case strings.Contains(errLower, "timeout"),
		strings.Contains(errLower, "timed out"):
		return "Connection timeout - the registry took too long to respond, try increasing registry.timeout"
	}

	return errStr
}
