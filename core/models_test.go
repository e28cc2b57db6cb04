package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "message link",
			content: "https://t.me/channel/123",
		},
		{
			name:    "empty string",
			content: "",
		},
		{
			name:    "long content",
			content: "This is a much longer piece of content that should still hash consistently",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("https://t.me/channel/1")
	id2 := IDFromContent("https://t.me/channel/2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestSermon_Key(t *testing.T) {
	s := Sermon{
		Title:       "Walking in Faith",
		MessageLink: "https://t.me/channel/42",
	}

	if s.Key() != IDFromContent("https://t.me/channel/42") {
		t.Errorf("Key() should derive from the message link only")
	}

	// Changing unrelated fields must not change the key.
	s.Title = "Another Title"
	if s.Key() != IDFromContent("https://t.me/channel/42") {
		t.Errorf("Key() changed after editing an unrelated field")
	}
}

func TestSermon_EmbeddingText(t *testing.T) {
	s := Sermon{
		Title:       "Walking in Faith",
		Description: "A teaching on trusting God in difficult seasons.",
	}

	want := "Walking in Faith\n\nA teaching on trusting God in difficult seasons."
	if got := s.EmbeddingText(); got != want {
		t.Errorf("EmbeddingText() = %q, want %q", got, want)
	}
}

func TestRankedList_Links(t *testing.T) {
	list := RankedList{
		{Sermon: Sermon{MessageLink: "https://t.me/a/1"}},
		{Sermon: Sermon{MessageLink: "https://t.me/a/2"}},
	}

	links := list.Links()
	if len(links) != 2 || links[0] != "https://t.me/a/1" || links[1] != "https://t.me/a/2" {
		t.Errorf("Links() = %v", links)
	}

	if got := (RankedList{}).Links(); len(got) != 0 {
		t.Errorf("Links() on empty list = %v, want empty", got)
	}
}
