package domain

import (
	"encoding/json"
	"time"
)

// AgentInput describes one configurable field of an agent's prompt template.
type AgentInput struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Placeholder string `json:"placeholder,omitempty"`
}

// Agent is a prompt template with configurable inputs.
type Agent struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Prompt      string       `json:"prompt"`
	Tags        []string     `json:"tags"`
	Inputs      []AgentInput `json:"inputs"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// NormalizeTags converts the legacy shape-shifting tags column into a flat
// list of labels. Historical rows carry a plain string, a string array, or
// an array of {name} / {label} objects; everything is normalized here so the
// rest of the codebase only ever sees []string.
func NormalizeTags(raw []byte) []string {
	if len(raw) == 0 {
		return []string{}
	}

	var asList []string
	if err := json.Unmarshal(raw, &asList); err == nil {
		return compactTags(asList)
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		if asString == "" {
			return []string{}
		}
		return []string{asString}
	}

	var asObjects []struct {
		Name  string `json:"name"`
		Label string `json:"label"`
	}
	if err := json.Unmarshal(raw, &asObjects); err == nil {
		tags := make([]string, 0, len(asObjects))
		for _, obj := range asObjects {
			switch {
			case obj.Name != "":
				tags = append(tags, obj.Name)
			case obj.Label != "":
				tags = append(tags, obj.Label)
			}
		}
		return tags
	}

	// Unparseable legacy value: treat the raw text as a single tag.
	return []string{string(raw)}
}

func compactTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
