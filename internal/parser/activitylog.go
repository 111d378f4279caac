package parser

import (
	"strings"

	"github.com/spacetrucker2196/galacticcic/internal/model"
)

// errorMarkers are the case-insensitive substrings that mark a log
// line as belonging to the errors stream rather than the recent
// stream.
var errorMarkers = []string{"error", "failed", "panic", "fatal"}

// ClassifyLogLine builds a LogEvent from one line already known to
// come from source, stamped at ts. A line is classified as an error
// if it contains any of errorMarkers case-insensitively.
func ClassifyLogLine(source string, ts float64, line string) model.LogEvent {
	lower := strings.ToLower(line)
	isError := false
	for _, marker := range errorMarkers {
		if strings.Contains(lower, marker) {
			isError = true
			break
		}
	}
	return model.LogEvent{
		Timestamp: ts,
		Source:    source,
		IsError:   isError,
		Message:   strings.TrimSpace(line),
	}
}
