package audit

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestFileLoggerWritesJSONL(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "audit.log")

	logger, err := NewFileLogger(&Config{
		Enabled: true,
		Type:    FileAuditType,
		Options: map[string]interface{}{"file_path": logPath},
	})
	if err != nil {
		t.Fatalf("failed to create file logger: %v", err)
	}
	defer logger.Close()

	if err = logger.Log("encrypt", true, map[string]interface{}{
		"request_id":     "req-1",
		"message_length": 10,
	}); err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	if err = logger.Log("decrypt", false, map[string]interface{}{
		"request_id": "req-2",
		"error":      "length mismatch: text is 5 symbols, pad is 10 symbols",
	}); err != nil {
		t.Fatalf("Log failed: %v", err)
	}

	file, err := os.Open(logPath)
	if err != nil {
		t.Fatalf("failed to open log file: %v", err)
	}
	defer file.Close()

	var events []Event
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var event Event
		if err = json.Unmarshal(scanner.Bytes(), &event); err != nil {
			t.Fatalf("line is not valid JSON: %v", err)
		}
		events = append(events, event)
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Action != "encrypt" || !events[0].Success {
		t.Errorf("unexpected first event: %+v", events[0])
	}
	if events[0].RequestID != "req-1" {
		t.Errorf("request ID not promoted: %+v", events[0])
	}
	if events[1].Success {
		t.Error("second event should be a failure")
	}
	if events[1].Error == "" {
		t.Error("failure event should carry the error")
	}
	if events[0].ID == events[1].ID {
		t.Error("event IDs must be unique")
	}
}

func TestFileLoggerQuery(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "audit.log")

	logger, err := NewFileLogger(&Config{
		Enabled: true,
		Options: map[string]interface{}{"file_path": logPath},
	})
	if err != nil {
		t.Fatalf("failed to create file logger: %v", err)
	}
	defer logger.Close()

	for i := 0; i < 5; i++ {
		_ = logger.Log("encrypt", true, nil)
	}
	_ = logger.Log("decrypt", false, nil)

	result, err := logger.Query(QueryOptions{Action: "encrypt"})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if result.Filtered != 5 {
		t.Errorf("expected 5 encrypt events, got %d", result.Filtered)
	}

	failed := false
	result, err = logger.Query(QueryOptions{Success: &failed})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if result.Filtered != 1 {
		t.Errorf("expected 1 failed event, got %d", result.Filtered)
	}

	result, err = logger.Query(QueryOptions{Limit: 2})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(result.Events) != 2 {
		t.Errorf("expected limit of 2 events, got %d", len(result.Events))
	}
	if !result.HasMore {
		t.Error("expected HasMore with a limit below the total")
	}
}

func TestFileLoggerRequiresPath(t *testing.T) {
	_, err := NewFileLogger(&Config{Enabled: true})
	if err == nil {
		t.Fatal("expected error without file_path")
	}
}

func TestMemoryLogger(t *testing.T) {
	logger := NewMemoryLogger()
	defer logger.Close()

	_ = logger.Log("encrypt", true, nil)
	_ = logger.Log("clear", true, nil)

	events := logger.Events()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	result, err := logger.Query(QueryOptions{Action: "clear"})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if result.Filtered != 1 {
		t.Errorf("expected 1 clear event, got %d", result.Filtered)
	}
}

func TestNewLoggerFactory(t *testing.T) {
	logger, err := NewLogger(nil)
	if err != nil {
		t.Fatalf("nil config should produce a no-op logger: %v", err)
	}
	if _, ok := logger.(*NoOpLogger); !ok {
		t.Errorf("expected NoOpLogger, got %T", logger)
	}

	logger, err = NewLogger(&Config{Enabled: false, Type: FileAuditType})
	if err != nil {
		t.Fatalf("disabled config should produce a no-op logger: %v", err)
	}
	if _, ok := logger.(*NoOpLogger); !ok {
		t.Errorf("expected NoOpLogger, got %T", logger)
	}

	if _, err = NewLogger(&Config{Enabled: true, Type: "database"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}
