// Package jobs mirrors the remote job posting collection locally.
//
// Every mutation is confirmed-then-applied: local state changes only after the
// API acknowledges success. A round trip is split in two: an operation returns
// a Pending that performs the remote call (on any goroutine), and the Outcome
// it produces is handed back to Apply on the goroutine that owns the
// Synchronizer. Overlapping round trips are not serialized; outcomes apply in
// the order they are handed back.
package jobs

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/naveenspark/jobdesk/pkg/domain"
)

// User-visible messages for failed round trips.
const (
	ErrLoadMsg   = "Error fetching job posts. Please try again later."
	ErrCreateMsg = "Error creating job post. Please try again later."
	ErrUpdateMsg = "Error updating job post. Please try again later."
	ErrDeleteMsg = "Error deleting job post. Please try again later."
)

// ErrNoID reports a create the API acknowledged without returning the new
// posting's id. The posting is not added to the collection.
var ErrNoID = errors.New("jobs: created posting has no id")

// Remote is the job postings API as seen by the synchronizer.
type Remote interface {
	ListJobs(ctx context.Context) ([]domain.JobPosting, error)
	CreateJob(ctx context.Context, f domain.JobFields) (*domain.JobPosting, error)
	UpdateJob(ctx context.Context, id domain.JobID, f domain.JobFields) (*domain.JobPosting, error)
	DeleteJob(ctx context.Context, id domain.JobID) error
}

// Pending is a round trip that has been issued but not applied.
type Pending func(ctx context.Context) Outcome

// Outcome is the result of a Pending, applied with Synchronizer.Apply.
type Outcome interface {
	// Err is the remote error, nil on success.
	Err() error
	apply(s *Synchronizer)
}

// Synchronizer owns the local job collection and the open draft.
// It is not safe for concurrent use; only Pending functions may run elsewhere.
type Synchronizer struct {
	remote     Remote
	log        *zap.Logger
	collection []domain.JobPosting
	draft      *Draft
	draftSeq   uint64
	lastError  string
	inFlight   int
}

// New returns an empty synchronizer. log may be nil.
func New(remote Remote, log *zap.Logger) *Synchronizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Synchronizer{remote: remote, log: log.Named("jobs")}
}

// Jobs returns a copy of the collection in order.
func (s *Synchronizer) Jobs() []domain.JobPosting {
	out := make([]domain.JobPosting, len(s.collection))
	copy(out, s.collection)
	return out
}

// Len returns the number of postings held.
func (s *Synchronizer) Len() int { return len(s.collection) }

// Draft returns the open draft, if any.
func (s *Synchronizer) Draft() (Draft, bool) {
	if s.draft == nil {
		return Draft{}, false
	}
	return *s.draft, true
}

// LastError returns the message of the most recent failed round trip.
func (s *Synchronizer) LastError() string { return s.lastError }

// ClearError dismisses the last error.
func (s *Synchronizer) ClearError() { s.lastError = "" }

// InFlight returns the number of issued round trips not yet applied.
func (s *Synchronizer) InFlight() int { return s.inFlight }

// Load issues a read of the whole collection. On success the collection is
// replaced wholesale.
func (s *Synchronizer) Load() Pending {
	s.inFlight++
	r := s.remote
	return func(ctx context.Context) Outcome {
		jobs, err := r.ListJobs(ctx)
		return loadOutcome{jobs: jobs, err: err}
	}
}

// BeginCreate discards any open draft and opens an empty one in NewDraft mode.
func (s *Synchronizer) BeginCreate() {
	s.openDraft(NewDraft{}, domain.JobFields{})
}

// BeginEdit opens a draft holding a copy of the posting's fields. It returns
// false and changes nothing when id is not in the collection.
func (s *Synchronizer) BeginEdit(id domain.JobID) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.openDraft(EditingDraft{ID: id}, s.collection[i].Fields())
	return true
}

// EditDraft replaces the open draft's field values. No-op without a draft.
func (s *Synchronizer) EditDraft(f domain.JobFields) {
	if s.draft != nil {
		s.draft.Fields = f
	}
}

// CancelDraft closes the draft without any remote call.
func (s *Synchronizer) CancelDraft() {
	s.draft = nil
}

// SubmitDraft sends the draft as a create or update request depending on its
// mode. The draft stays open until the outcome is applied. Returns nil when
// there is no draft.
func (s *Synchronizer) SubmitDraft() Pending {
	if s.draft == nil {
		return nil
	}
	d := *s.draft
	r := s.remote
	s.inFlight++

	switch m := d.Mode.(type) {
	case EditingDraft:
		return func(ctx context.Context) Outcome {
			job, err := r.UpdateJob(ctx, m.ID, d.Fields)
			return updateOutcome{id: m.ID, job: job, seq: d.seq, err: err}
		}
	case NewDraft:
		return func(ctx context.Context) Outcome {
			job, err := r.CreateJob(ctx, d.Fields)
			if err == nil && (job == nil || job.ID == "") {
				err = ErrNoID
			}
			return createOutcome{job: job, seq: d.seq, err: err}
		}
	default:
		s.inFlight--
		s.log.Error("unknown draft mode", zap.Any("mode", m))
		return nil
	}
}

// DeleteEntry issues a delete of the posting with id. The posting stays in the
// collection until the API confirms. Returns nil when id is unknown.
func (s *Synchronizer) DeleteEntry(id domain.JobID) Pending {
	if s.indexOf(id) < 0 {
		return nil
	}
	s.inFlight++
	r := s.remote
	return func(ctx context.Context) Outcome {
		return deleteOutcome{id: id, err: r.DeleteJob(ctx, id)}
	}
}

// Apply folds a completed round trip into local state. It must be called on
// the goroutine that owns the synchronizer.
func (s *Synchronizer) Apply(o Outcome) {
	if o == nil {
		return
	}
	if s.inFlight > 0 {
		s.inFlight--
	}
	o.apply(s)
}

// Do runs p and applies its outcome before returning. It returns the remote
// error, which has already been recorded as LastError.
func (s *Synchronizer) Do(ctx context.Context, p Pending) error {
	if p == nil {
		return nil
	}
	o := p(ctx)
	s.Apply(o)
	return o.Err()
}

func (s *Synchronizer) openDraft(mode DraftMode, f domain.JobFields) {
	s.draftSeq++
	s.draft = &Draft{Mode: mode, Fields: f, seq: s.draftSeq}
}

// closeDraft closes the draft only if it is still the one identified by seq;
// a draft opened after a submit is left alone.
func (s *Synchronizer) closeDraft(seq uint64) {
	if s.draft != nil && s.draft.seq == seq {
		s.draft = nil
	}
}

func (s *Synchronizer) indexOf(id domain.JobID) int {
	for i := range s.collection {
		if s.collection[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Synchronizer) fail(msg, op string, err error, fields ...zap.Field) {
	s.lastError = msg
	s.log.Warn("round trip failed", append(fields, zap.String("op", op), zap.Error(err))...)
}

type loadOutcome struct {
	jobs []domain.JobPosting
	err  error
}

func (o loadOutcome) Err() error { return o.err }

func (o loadOutcome) apply(s *Synchronizer) {
	if o.err != nil {
		s.fail(ErrLoadMsg, "load", o.err)
		return
	}
	s.collection = append([]domain.JobPosting(nil), o.jobs...)
	s.log.Debug("collection loaded", zap.Int("count", len(s.collection)))
}

type createOutcome struct {
	job *domain.JobPosting
	seq uint64
	err error
}

func (o createOutcome) Err() error { return o.err }

func (o createOutcome) apply(s *Synchronizer) {
	if o.err != nil {
		s.fail(ErrCreateMsg, "create", o.err)
		return
	}
	s.collection = append(s.collection, *o.job)
	s.log.Debug("job created", zap.String("job_id", o.job.ID.String()))
	s.closeDraft(o.seq)
}

type updateOutcome struct {
	id  domain.JobID
	job *domain.JobPosting
	seq uint64
	err error
}

func (o updateOutcome) Err() error { return o.err }

func (o updateOutcome) apply(s *Synchronizer) {
	if o.err != nil {
		s.fail(ErrUpdateMsg, "update", o.err, zap.String("job_id", o.id.String()))
		return
	}
	// Replace in place; an entry deleted meanwhile stays deleted.
	if i := s.indexOf(o.id); i >= 0 && o.job != nil {
		job := *o.job
		if job.ID == "" {
			job.ID = o.id
		}
		s.collection[i] = job
	}
	s.log.Debug("job updated", zap.String("job_id", o.id.String()))
	s.closeDraft(o.seq)
}

type deleteOutcome struct {
	id  domain.JobID
	err error
}

func (o deleteOutcome) Err() error { return o.err }

func (o deleteOutcome) apply(s *Synchronizer) {
	if o.err != nil {
		s.fail(ErrDeleteMsg, "delete", o.err, zap.String("job_id", o.id.String()))
		return
	}
	if i := s.indexOf(o.id); i >= 0 {
		s.collection = append(s.collection[:i:i], s.collection[i+1:]...)
	}
	s.log.Debug("job deleted", zap.String("job_id", o.id.String()))
}
