package sl

import (
	"log/slog"
)

// Err creates a slog.Attr with the given error. A nil error is logged as an empty string.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}

	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// RequestID creates a slog.Attr carrying the identifier of the HTTP request being served.
func RequestID(requestID string) slog.Attr {
	return slog.String("request_id", requestID)
}
