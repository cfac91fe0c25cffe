package mail

import (
	"strings"
	"testing"
	"time"
)

func TestReminderBody(t *testing.T) {
	due := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	body, err := ReminderBody("Ada", "File taxes", &due)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"Ada", "File taxes", "01/04/2026"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}

	// Without a due date the sentence still reads.
	body, err = ReminderBody("Ada", "File taxes", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(body, "on <strong>") {
		t.Error("empty due date still rendered")
	}
}

func TestVerifyBodyEscapesName(t *testing.T) {
	body, err := VerifyEmailBody("<script>", "https://example.com/verify-email/123456")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(body, "<script>") {
		t.Error("name not escaped")
	}
	if !strings.Contains(body, "https://example.com/verify-email/123456") {
		t.Error("link missing")
	}
}
