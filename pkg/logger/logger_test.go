package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"

	"github.com/jansunwai/jansunwai-backend/pkg/logger"
)

func TestContextHelpers(t *testing.T) {
	var buf bytes.Buffer
	log := &logger.Logger{Logger: zerolog.New(&buf)}

	log.WithComponent("grievance").
		WithRequestID("req-1").
		WithTrackingID("GR1234567890").
		Info().Msg("filed")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	for key, want := range map[string]string{
		"component":   "grievance",
		"request_id":  "req-1",
		"tracking_id": "GR1234567890",
		"message":     "filed",
	} {
		if entry[key] != want {
			t.Errorf("entry[%q] = %v, want %q", key, entry[key], want)
		}
	}
}
