//go:build !windows

package audit

import (
	"encoding/json"
	"fmt"
	"log/syslog"
)

// Ensure SyslogLogger implements Logger interface
var _ Logger = (*SyslogLogger)(nil)

type SyslogOptions struct {
	Network string `json:"network"` // "tcp", "udp", "" for local
	Address string `json:"address"` // "localhost:514"
	Tag     string `json:"tag"`
}

// SyslogLogger forwards audit events to syslog. Queries are not supported:
// syslog is write-only from our side.
type SyslogLogger struct {
	config     *Config
	syslogOpts SyslogOptions
	writer     *syslog.Writer
}

// NewSyslogLogger creates a new syslog audit logger with options
func NewSyslogLogger(config *Config) (*SyslogLogger, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	var syslogOpts SyslogOptions
	if err := parseOptions(config.Options, &syslogOpts); err != nil {
		return nil, fmt.Errorf("invalid syslog logger options: %w", err)
	}

	if syslogOpts.Tag == "" {
		syslogOpts.Tag = "otp-audit"
	}

	writer, err := syslog.Dial(syslogOpts.Network, syslogOpts.Address,
		syslog.LOG_INFO|syslog.LOG_USER, syslogOpts.Tag)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to syslog: %w", err)
	}

	return &SyslogLogger{
		config:     config,
		syslogOpts: syslogOpts,
		writer:     writer,
	}, nil
}

// Log implements the Logger interface
func (sl *SyslogLogger) Log(action string, success bool, metadata map[string]interface{}) error {
	event := newEvent(action, success, metadata)

	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to serialize audit event: %w", err)
	}

	if event.Success {
		return sl.writer.Info(string(eventJSON))
	}
	return sl.writer.Warning(string(eventJSON))
}

// Query implements the Logger interface
func (sl *SyslogLogger) Query(options QueryOptions) (QueryResult, error) {
	return QueryResult{}, fmt.Errorf("syslog audit logs cannot be queried")
}

// Close implements the Logger interface
func (sl *SyslogLogger) Close() error {
	if sl.writer != nil {
		return sl.writer.Close()
	}
	return nil
}
