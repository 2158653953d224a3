// Package record defines the item fetched by every data source.
package record

import (
	"encoding/json"
	"fmt"
)

// Record is one fetched item. It is a value type: collections of records are
// copied whenever they cross a component boundary, so a holder never sees
// another holder's changes.
type Record struct {
	OwnerID int    `json:"userId"`
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Body    string `json:"body"`
}

// wireRecord mirrors Record with pointer fields so that missing keys can be told
// apart from zero values.
type wireRecord struct {
	OwnerID *int    `json:"userId"`
	ID      *int    `json:"id"`
	Title   *string `json:"title"`
	Body    *string `json:"body"`
}

// UnmarshalJSON decodes a record and rejects objects missing any field.
func (r *Record) UnmarshalJSON(b []byte) error {
	var w wireRecord
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}

	switch {
	case w.OwnerID == nil:
		return missingField("userId")
	case w.ID == nil:
		return missingField("id")
	case w.Title == nil:
		return missingField("title")
	case w.Body == nil:
		return missingField("body")
	}

	*r = Record{
		OwnerID: *w.OwnerID,
		ID:      *w.ID,
		Title:   *w.Title,
		Body:    *w.Body,
	}
	return nil
}

func missingField(name string) error {
	return fmt.Errorf("record: missing or null field %q", name)
}

// DecodeList decodes a JSON array of records. The whole input must be a single
// array; trailing data is an error.
func DecodeList(b []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, err
	}
	if records == nil {
		// `null` is not an array
		return nil, fmt.Errorf("record: expected a JSON array")
	}
	return records, nil
}

// Clone returns a copy of records that shares no backing array with the input.
func Clone(records []Record) []Record {
	if records == nil {
		return []Record{}
	}
	out := make([]Record, len(records))
	copy(out, records)
	return out
}
