// internal/model/logs.go
package model

import "time"

// LogLine is a single line of container log output.
// Raw keeps the full line including the timestamp prefix docker
// emits; Timestamp is parsed from that prefix and is the zero time
// when the prefix does not parse.
type LogLine struct {
	Timestamp time.Time
	Raw       string
}
