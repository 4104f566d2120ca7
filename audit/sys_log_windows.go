//go:build windows

package audit

import "fmt"

// NewSyslogLogger is unavailable on Windows; there is no syslog daemon to
// dial. Use the file logger instead.
func NewSyslogLogger(config *Config) (Logger, error) {
	return nil, fmt.Errorf("syslog audit logging is not supported on windows")
}
