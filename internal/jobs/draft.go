package jobs

import "github.com/naveenspark/jobdesk/pkg/domain"

// DraftMode says what submitting a draft does. It is either NewDraft or
// EditingDraft; switches over it should handle both.
type DraftMode interface {
	isDraftMode()
}

// NewDraft mode creates a posting on submit.
type NewDraft struct{}

// EditingDraft mode updates the posting with ID on submit.
type EditingDraft struct {
	ID domain.JobID
}

func (NewDraft) isDraftMode()     {}
func (EditingDraft) isDraftMode() {}

// Draft is the locally held, unconfirmed field set of the one open form.
type Draft struct {
	Mode   DraftMode
	Fields domain.JobFields

	seq uint64 // identifies this draft across an in-flight submit
}

// Editing reports whether the draft edits an existing posting, and which.
func (d Draft) Editing() (domain.JobID, bool) {
	if m, ok := d.Mode.(EditingDraft); ok {
		return m.ID, true
	}
	return "", false
}
