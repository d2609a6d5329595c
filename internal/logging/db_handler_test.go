package logging

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/surveyscape/backend/internal/models"
	"github.com/surveyscape/backend/internal/testutil"
)

func TestDBHandlerMapsAttrs(t *testing.T) {
	db := testutil.NewTestDB(t)
	h := NewDBHandler(db)
	defer h.Stop()

	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("INFO should not reach the database")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("ERROR must reach the database")
	}

	record := slog.NewRecord(time.Now(), slog.LevelError, "vote recorded but tally update failed", 0)
	record.AddAttrs(
		slog.String("action", "tally"),
		slog.String("survey_id", "7d4a2c9e-0000-0000-0000-000000000000"),
		slog.String("voter", "alice@example.com"),
		slog.String("error", "connection reset"),
		slog.Int("attempt", 3),
	)

	if err := h.Handle(context.Background(), record); err != nil {
		t.Fatalf("handle failed: %v", err)
	}
	h.flush()

	var entry models.SystemLog
	if err := db.First(&entry).Error; err != nil {
		t.Fatalf("no system log row: %v", err)
	}

	if entry.Action != "tally" {
		t.Errorf("action column not mapped: %q", entry.Action)
	}
	if entry.Voter != "alice@example.com" {
		t.Errorf("voter column not mapped: %q", entry.Voter)
	}
	if entry.Error != "connection reset" {
		t.Errorf("error column not mapped: %q", entry.Error)
	}
	if entry.Level != "ERROR" {
		t.Errorf("unexpected level %q", entry.Level)
	}
	// Unmapped attrs land in the JSON extra column.
	if len(entry.Extra) == 0 {
		t.Error("extra attrs were dropped")
	}
}
