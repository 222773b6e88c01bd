package errors

import (
	"fmt"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *Error {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *Error {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// ConnectFailed reports that the compositor socket could not be reached.
func ConnectFailed(socket string, err error) *Error {
	return Wrap(err, ErrCodeConnectFailed, fmt.Sprintf("cannot connect to compositor at %s", socket)).
		WithDetail("socket", socket)
}

// CapabilityMissing reports a global the compositor does not advertise.
func CapabilityMissing(iface string) *Error {
	return New(ErrCodeCapabilityMissing,
		fmt.Sprintf("compositor does not advertise %s", iface)).
		WithDetail("interface", iface)
}

// ProtocolViolation reports a message this client never registered interest in.
func ProtocolViolation(iface string, object uint32, message string) *Error {
	return New(ErrCodeProtocolViolation,
		fmt.Sprintf("unexpected message %s@%d: %s", iface, object, message)).
		WithDetail("interface", iface).
		WithDetail("object", object).
		WithDetail("message", message)
}

// MalformedPayload reports an event whose arguments do not match the protocol.
func MalformedPayload(iface, event string, err error) *Error {
	return Wrap(err, ErrCodeMalformedPayload,
		fmt.Sprintf("malformed %s.%s payload", iface, event)).
		WithDetail("interface", iface).
		WithDetail("event", event)
}

// CompositorReported wraps a wl_display.error event.
func CompositorReported(object uint32, code uint32, message string) *Error {
	return New(ErrCodeCompositorReported,
		fmt.Sprintf("compositor error on object %d (code %d): %s", object, code, message)).
		WithDetail("object", object).
		WithDetail("code", code)
}

// OutputWrite wraps a failure to write a snapshot to the output stream.
func OutputWrite(err error) *Error {
	return Wrap(err, ErrCodeOutputWrite, "failed to write snapshot")
}
