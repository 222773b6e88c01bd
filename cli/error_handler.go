package cli

import (
	"fmt"
	"io"

	"github.com/grovetools/ristate/errors"
)

// ErrorHandler turns fatal errors into messages on stderr.
type ErrorHandler struct {
	Verbose bool
	Out     io.Writer
}

// NewErrorHandler creates a new error handler writing to out.
func NewErrorHandler(out io.Writer, verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
		Out:     out,
	}
}

// Handle prints a message for err and returns it unchanged.
func (h *ErrorHandler) Handle(err error) error {
	if err == nil {
		return nil
	}
	s := NewStyles(h.Out)
	prefix := s.Error.Render("Error:")

	e, _ := errors.As(err)
	switch errors.GetCode(err) {
	case errors.ErrCodeConnectFailed:
		fmt.Fprintf(h.Out, "%s %v\n", prefix, err)
		fmt.Fprintln(h.Out, s.Muted.Render("Is river running? Check WAYLAND_DISPLAY and XDG_RUNTIME_DIR."))

	case errors.ErrCodeCapabilityMissing:
		fmt.Fprintf(h.Out, "%s the compositor does not advertise %v\n", prefix, e.Details["interface"])
		fmt.Fprintln(h.Out, s.Muted.Render("ristate only works with river."))

	case errors.ErrCodeProtocolViolation, errors.ErrCodeMalformedPayload, errors.ErrCodeCompositorReported:
		fmt.Fprintf(h.Out, "%s %v\n", prefix, err)

	case errors.ErrCodeOutputWrite:
		fmt.Fprintf(h.Out, "%s %v\n", prefix, err)
		fmt.Fprintln(h.Out, s.Muted.Render("The consumer of stdout went away."))

	default:
		fmt.Fprintf(h.Out, "%s %v\n", prefix, err)
	}

	if h.Verbose && e != nil {
		fmt.Fprintf(h.Out, "\nError details:\n%s\n", e.ToJSON())
	}
	return err
}
