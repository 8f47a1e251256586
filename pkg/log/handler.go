package log

import (
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
	DetailAttrKey     = "detail"
)

// attachError adds err to the event along with its cockroachdb stack trace and,
// when some error in the chain knows how to marshal itself, its structured detail.
func attachError(e *zerolog.Event, err error) *zerolog.Event {
	e = e.AnErr(ErrAttrKey, err)
	if stacktrace := extractStacktrace(err); stacktrace != "" {
		e = e.Str(StacktraceAttrKey, stacktrace)
	}
	var detail zerolog.LogObjectMarshaler
	if errors.As(err, &detail) {
		e = e.Object(DetailAttrKey, detail)
	}
	return e
}

// extractStacktrace returns the first safe detail recorded in the chain, which
// for errors built with WithStack is the formatted stack.
func extractStacktrace(err error) string {
	for _, payload := range errors.GetAllSafeDetails(err) {
		if len(payload.SafeDetails) > 0 {
			return payload.SafeDetails[0]
		}
	}
	return ""
}

// splitError pulls a leading unpaired error out of fields.
func splitError(fields []any) (error, []any) {
	if len(fields)%2 == 1 {
		if err, ok := fields[0].(error); ok {
			return err, fields[1:]
		}
	}
	return nil, fields
}
