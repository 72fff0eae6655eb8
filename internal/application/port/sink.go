package port

import "time"

type Sink interface {
	// Section header line
	WriteHeader(title string) error
	// Report line with timestamp
	WriteReport(ts time.Time, line string) error
	// Normal newline
	NewLine() error
}
