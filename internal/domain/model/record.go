package model

import (
	"encoding/json"
	"time"
)

// EntryScore is the score of one entry of a multi-entry section.
// Undetermined carries the reason when no scoring rule matched the entry.
type EntryScore struct {
	Score        float64 `json:"score"`
	Undetermined string  `json:"undetermined,omitempty"`
}

// Breakdown details how a section score was reached: per entry for list
// sections, per sub-section for 12.1, 13 and 19.
type Breakdown struct {
	Entries []EntryScore       `json:"entries,omitempty"`
	Parts   map[string]float64 `json:"parts,omitempty"`
}

// SectionRecord is the unit stored per section in a faculty document.
type SectionRecord struct {
	Data      json.RawMessage `json:"data"`
	Score     float64         `json:"score"`
	Breakdown *Breakdown      `json:"breakdown,omitempty"`
}

// Document is one faculty member's submission document.
type Document struct {
	ID        string                     `json:"id,omitempty"`
	UserID    string                     `json:"user_id"`
	Sections  map[string]json.RawMessage `json:"sections"`
	CreatedAt time.Time                  `json:"created_at"`
	UpdatedAt time.Time                  `json:"updated_at"`
}

// Section decodes the record stored under key. ok is false when the key is absent.
func (d Document) Section(key string) (rec SectionRecord, ok bool, err error) {
	raw, ok := d.Sections[key]
	if !ok {
		return SectionRecord{}, false, nil
	}
	if err := json.Unmarshal(raw, &rec); err != nil {
		return SectionRecord{}, true, err
	}
	return rec, true, nil
}

// Submission is one section of a faculty member's form awaiting ingestion.
// Semester is only meaningful for section 12.1.
type Submission struct {
	UserID   string
	Section  Section
	Semester string
	Payload  json.RawMessage
}
