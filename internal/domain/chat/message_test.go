package chat

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/quickserve-app/quickserve-api/internal/httperr"
	"github.com/quickserve-app/quickserve-api/internal/models"
)

func f64(v float64) *float64 { return &v }

func TestValidateSend(t *testing.T) {
	cases := []struct {
		name    string
		payload SendPayload
		want    string
	}{
		{"text ok", SendPayload{Kind: KindText, Text: "hello"}, ""},
		{"text empty", SendPayload{Kind: KindText, Text: "   "}, "empty_message"},
		{"location ok", SendPayload{Kind: KindLocation, LocationLat: f64(12.9), LocationLng: f64(77.6)}, ""},
		{"location missing lng", SendPayload{Kind: KindLocation, LocationLat: f64(12.9)}, "missing_location"},
		{"audio ok", SendPayload{Kind: KindAudio, AttachmentURL: "uploads/audio/voice_x.webm"}, ""},
		{"audio missing url", SendPayload{Kind: KindAudio}, "missing_attachment"},
		{"unknown kind", SendPayload{Kind: "video", Text: "x"}, "invalid_message_type"},
	}

	for _, tc := range cases {
		err := ValidateSend(tc.payload)
		if tc.want == "" {
			if err != nil {
				t.Errorf("%s: unexpected error %v", tc.name, err)
			}
			continue
		}
		if httperr.BusinessCode(err) != tc.want {
			t.Errorf("%s: expected %s, got %v", tc.name, tc.want, err)
		}
	}
}

func TestPreview(t *testing.T) {
	if got := Preview(SendPayload{Kind: KindLocation}); got != "📍 Shared location" {
		t.Fatalf("location preview: %q", got)
	}
	if got := Preview(SendPayload{Kind: KindAudio}); got != "🎤 Voice message" {
		t.Fatalf("audio preview: %q", got)
	}
	if got := Preview(SendPayload{Kind: KindText, Text: "  hi there  "}); got != "hi there" {
		t.Fatalf("text preview must trim, got %q", got)
	}

	long := strings.Repeat("a", 150)
	if got := Preview(SendPayload{Kind: KindText, Text: long}); len(got) != 100 {
		t.Fatalf("long preview must cap at 100, got %d", len(got))
	}
}

func TestPreviewTruncatesOnRuneBoundary(t *testing.T) {
	// 99 ASCII runes followed by emoji: the cap lands mid-emoji-run and must
	// not split a code point.
	text := strings.Repeat("a", 99) + "🎉🎉🎉"

	got := Preview(SendPayload{Kind: KindText, Text: text})
	if !utf8.ValidString(got) {
		t.Fatalf("preview must stay valid UTF-8: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != 100 {
		t.Fatalf("expected 100 runes, got %d", n)
	}
	if !strings.HasSuffix(got, "🎉") {
		t.Fatalf("the 100th rune must survive whole, got %q", got)
	}
}

func TestCanEdit(t *testing.T) {
	base := func() *models.Message {
		return &models.Message{SenderID: 7, MessageType: KindText, MessageText: "old"}
	}

	if err := CanEdit(base(), 7, "new"); err != nil {
		t.Fatalf("owner editing live text message: %v", err)
	}

	if code := httperr.BusinessCode(CanEdit(base(), 8, "new")); code != "message_not_found" {
		t.Fatalf("non-owner must read as not found, got %s", code)
	}

	m := base()
	m.IsDeleted = true
	if code := httperr.BusinessCode(CanEdit(m, 7, "new")); code != "message_not_found" {
		t.Fatalf("deleted message must read as not found, got %s", code)
	}

	m = base()
	m.MessageType = KindAudio
	if code := httperr.BusinessCode(CanEdit(m, 7, "new")); code != "message_not_editable" {
		t.Fatalf("non-text message, got %s", code)
	}

	if code := httperr.BusinessCode(CanEdit(base(), 7, "   ")); code != "empty_message" {
		t.Fatalf("blank replacement, got %s", code)
	}
}

func TestCanDelete(t *testing.T) {
	m := &models.Message{SenderID: 7}

	if err := CanDelete(m, 7); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if code := httperr.BusinessCode(CanDelete(m, 8)); code != "message_not_found" {
		t.Fatalf("non-owner must read as not found, got %s", code)
	}
}
