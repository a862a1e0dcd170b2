package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// JobID identifies a job posting. It is assigned by the API and treated as
// opaque: the API may send it as a JSON number or string.
type JobID string

// String returns the ID as sent in URL paths.
func (id JobID) String() string { return string(id) }

// UnmarshalJSON accepts both numeric and string IDs.
func (id *JobID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("job id: %w", err)
		}
		*id = JobID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("job id: %w", err)
	}
	*id = JobID(n.String())
	return nil
}

// JobFields are the user-editable fields of a job posting. They form the
// request body of create and update calls.
type JobFields struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (f JobFields) Trimmed() JobFields {
	return JobFields{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Location:    strings.TrimSpace(f.Location),
	}
}

// JobPosting is a job posting confirmed by the API.
type JobPosting struct {
	ID          JobID  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

// Fields returns the editable fields of the posting.
func (j JobPosting) Fields() JobFields {
	return JobFields{Title: j.Title, Description: j.Description, Location: j.Location}
}
