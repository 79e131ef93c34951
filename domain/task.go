package domain

import (
	"encoding/json"
	"time"
)

// Link is a reference attached to a task.
type Link struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

// Attachment kinds supported by the board.
const (
	AttachmentImage = "image"
	AttachmentVideo = "video"
)

// Attachment is a media entry attached to a task.
type Attachment struct {
	Type      string     `json:"type"`
	URL       string     `json:"url"`
	Name      string     `json:"name,omitempty"`
	Size      int64      `json:"size,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// Task is a unit of work owned by exactly one column. Position is meaningful
// only relative to the other tasks in the same column.
type Task struct {
	ID          string       `json:"id"`
	ColumnID    string       `json:"column_id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Position    int          `json:"position"`
	View        View         `json:"view_type"`
	Links       []Link       `json:"links"`
	Attachments []Attachment `json:"attachments"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// The storage layer keeps links and attachments as serialized text columns,
// so the lists are encoded on write and decoded on read.

func EncodeLinks(links []Link) (string, error) {
	if len(links) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(links)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func DecodeLinks(raw string) ([]Link, error) {
	if raw == "" {
		return []Link{}, nil
	}
	var links []Link
	if err := json.Unmarshal([]byte(raw), &links); err != nil {
		return nil, err
	}
	if links == nil {
		links = []Link{}
	}
	return links, nil
}

func EncodeAttachments(attachments []Attachment) (string, error) {
	if len(attachments) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(attachments)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func DecodeAttachments(raw string) ([]Attachment, error) {
	if raw == "" {
		return []Attachment{}, nil
	}
	var attachments []Attachment
	if err := json.Unmarshal([]byte(raw), &attachments); err != nil {
		return nil, err
	}
	if attachments == nil {
		attachments = []Attachment{}
	}
	return attachments, nil
}
