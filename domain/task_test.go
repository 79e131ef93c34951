package domain

import (
	"testing"
	"time"
)

func TestLinksRoundTrip(t *testing.T) {
	cases := [][]Link{
		nil,
		{},
		{{URL: "https://example.com"}},
		{{URL: "https://example.com", Title: "Referência"}, {URL: "https://koplai.com/briefing"}},
		{
			{URL: "https://a.test", Title: "a"},
			{URL: "https://b.test", Title: "b"},
			{URL: "https://c.test"},
			{URL: "https://d.test", Title: "d"},
			{URL: "https://e.test", Title: "e"},
		},
	}

	for _, links := range cases {
		encoded, err := EncodeLinks(links)
		if err != nil {
			t.Fatalf("EncodeLinks(%v) returned error: %v", links, err)
		}
		decoded, err := DecodeLinks(encoded)
		if err != nil {
			t.Fatalf("DecodeLinks(%q) returned error: %v", encoded, err)
		}
		if len(decoded) != len(links) {
			t.Fatalf("expected %d links, got %d", len(links), len(decoded))
		}
		for i := range links {
			if decoded[i] != links[i] {
				t.Errorf("link %d: expected %+v, got %+v", i, links[i], decoded[i])
			}
		}
	}
}

func TestAttachmentsRoundTrip(t *testing.T) {
	when := time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC)
	attachments := []Attachment{
		{Type: AttachmentImage, URL: "https://cdn.test/capa.png", Name: "capa.png", Size: 204800},
		{Type: AttachmentVideo, URL: "https://cdn.test/reel.mp4", Name: "reel.mp4", Size: 10485760, CreatedAt: &when},
		{Type: AttachmentImage, URL: "https://cdn.test/logo.png"},
	}

	encoded, err := EncodeAttachments(attachments)
	if err != nil {
		t.Fatalf("EncodeAttachments returned error: %v", err)
	}
	decoded, err := DecodeAttachments(encoded)
	if err != nil {
		t.Fatalf("DecodeAttachments returned error: %v", err)
	}
	if len(decoded) != len(attachments) {
		t.Fatalf("expected %d attachments, got %d", len(attachments), len(decoded))
	}
	for i, want := range attachments {
		got := decoded[i]
		if got.Type != want.Type || got.URL != want.URL || got.Name != want.Name || got.Size != want.Size {
			t.Errorf("attachment %d: expected %+v, got %+v", i, want, got)
		}
	}
	if decoded[1].CreatedAt == nil || !decoded[1].CreatedAt.Equal(when) {
		t.Errorf("attachment timestamp not preserved: %v", decoded[1].CreatedAt)
	}
}

func TestDecodeEmptyAndLegacyValues(t *testing.T) {
	links, err := DecodeLinks("")
	if err != nil || len(links) != 0 {
		t.Fatalf("expected empty list for empty value, got %v (%v)", links, err)
	}
	links, err = DecodeLinks("null")
	if err != nil || len(links) != 0 {
		t.Fatalf("expected empty list for null value, got %v (%v)", links, err)
	}
	attachments, err := DecodeAttachments("[]")
	if err != nil || len(attachments) != 0 {
		t.Fatalf("expected empty list, got %v (%v)", attachments, err)
	}
}
