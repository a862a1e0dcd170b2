package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naveenspark/jobdesk/pkg/domain"
)

var errRemote = errors.New("network unreachable")

// fakeRemote answers with canned results and records the calls it saw.
type fakeRemote struct {
	list    []domain.JobPosting
	listErr error

	created   *domain.JobPosting
	createErr error
	updated   *domain.JobPosting
	updateErr error
	deleteErr error

	createdWith domain.JobFields
	updatedID   domain.JobID
	updatedWith domain.JobFields
	deletedID   domain.JobID
}

func (f *fakeRemote) ListJobs(context.Context) ([]domain.JobPosting, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.list, nil
}

func (f *fakeRemote) CreateJob(_ context.Context, fields domain.JobFields) (*domain.JobPosting, error) {
	f.createdWith = fields
	return f.created, f.createErr
}

func (f *fakeRemote) UpdateJob(_ context.Context, id domain.JobID, fields domain.JobFields) (*domain.JobPosting, error) {
	f.updatedID, f.updatedWith = id, fields
	return f.updated, f.updateErr
}

func (f *fakeRemote) DeleteJob(_ context.Context, id domain.JobID) error {
	f.deletedID = id
	return f.deleteErr
}

func seedJobs() []domain.JobPosting {
	return []domain.JobPosting{
		{ID: "5", Title: "Backend", Description: "Go services", Location: "Dhaka"},
		{ID: "7", Title: "Frontend", Description: "React", Location: "Remote"},
		{ID: "9", Title: "SRE", Description: "On call", Location: "Berlin"},
	}
}

// loaded returns a synchronizer whose collection holds seedJobs.
func loaded(t *testing.T, r *fakeRemote) *Synchronizer {
	t.Helper()
	r.list = seedJobs()
	s := New(r, nil)
	require.NoError(t, s.Do(context.Background(), s.Load()))
	r.list = nil
	return s
}

func holds(s *Synchronizer, id domain.JobID) bool {
	for _, j := range s.Jobs() {
		if j.ID == id {
			return true
		}
	}
	return false
}

func TestLoadReplacesCollection(t *testing.T) {
	r := &fakeRemote{list: seedJobs()}
	s := New(r, nil)

	require.NoError(t, s.Do(context.Background(), s.Load()))
	assert.Equal(t, seedJobs(), s.Jobs())

	r.list = []domain.JobPosting{{ID: "1", Title: "Only"}}
	require.NoError(t, s.Do(context.Background(), s.Load()))
	assert.Equal(t, []domain.JobPosting{{ID: "1", Title: "Only"}}, s.Jobs())
	assert.Empty(t, s.LastError())
}

func TestLoadFailureKeepsCollection(t *testing.T) {
	r := &fakeRemote{}
	s := loaded(t, r)

	r.listErr = errRemote
	err := s.Do(context.Background(), s.Load())
	assert.ErrorIs(t, err, errRemote)
	assert.Equal(t, seedJobs(), s.Jobs())
	assert.Equal(t, ErrLoadMsg, s.LastError())
}

func TestLoadSequenceKeepsLastSuccess(t *testing.T) {
	r := &fakeRemote{}
	s := New(r, nil)
	ctx := context.Background()

	r.list = seedJobs()[:1]
	require.NoError(t, s.Do(ctx, s.Load()))
	r.listErr = errRemote
	_ = s.Do(ctx, s.Load())
	r.listErr = nil
	r.list = seedJobs()[1:]
	require.NoError(t, s.Do(ctx, s.Load()))
	r.listErr = errRemote
	_ = s.Do(ctx, s.Load())

	assert.Equal(t, seedJobs()[1:], s.Jobs())
}

func TestBeginCreateThenCancel(t *testing.T) {
	s := loaded(t, &fakeRemote{})

	s.BeginCreate()
	d, ok := s.Draft()
	require.True(t, ok)
	assert.IsType(t, NewDraft{}, d.Mode)
	assert.Equal(t, domain.JobFields{}, d.Fields)

	s.CancelDraft()
	_, ok = s.Draft()
	assert.False(t, ok)
	assert.Equal(t, seedJobs(), s.Jobs())
}

func TestSubmitNewDraftSuccessAppends(t *testing.T) {
	r := &fakeRemote{created: &domain.JobPosting{ID: "42", Title: "A", Description: "B", Location: "C"}}
	s := loaded(t, r)

	s.BeginCreate()
	s.EditDraft(domain.JobFields{Title: "A", Description: "B", Location: "C"})
	require.NoError(t, s.Do(context.Background(), s.SubmitDraft()))

	jobs := s.Jobs()
	require.Len(t, jobs, len(seedJobs())+1)
	assert.Equal(t, seedJobs(), jobs[:len(seedJobs())])
	assert.Equal(t, domain.JobPosting{ID: "42", Title: "A", Description: "B", Location: "C"}, jobs[len(jobs)-1])
	assert.Equal(t, domain.JobFields{Title: "A", Description: "B", Location: "C"}, r.createdWith)

	_, ok := s.Draft()
	assert.False(t, ok, "draft must be cleared on success")
}

func TestSubmitNewDraftFailureKeepsDraft(t *testing.T) {
	r := &fakeRemote{createErr: errRemote}
	s := loaded(t, r)

	s.BeginCreate()
	s.EditDraft(domain.JobFields{Title: "A", Description: "B", Location: "C"})
	err := s.Do(context.Background(), s.SubmitDraft())

	assert.ErrorIs(t, err, errRemote)
	assert.Equal(t, seedJobs(), s.Jobs())
	d, ok := s.Draft()
	require.True(t, ok, "draft stays open for retry")
	assert.IsType(t, NewDraft{}, d.Mode)
	assert.Equal(t, domain.JobFields{Title: "A", Description: "B", Location: "C"}, d.Fields)
	assert.Equal(t, ErrCreateMsg, s.LastError())
}

func TestSubmitNewDraftWithoutIDKeepsDraft(t *testing.T) {
	for name, created := range map[string]*domain.JobPosting{
		"empty id": {Title: "A"},
		"no body":  nil,
	} {
		t.Run(name, func(t *testing.T) {
			r := &fakeRemote{created: created}
			s := loaded(t, r)
			ctx := context.Background()

			s.BeginCreate()
			s.EditDraft(domain.JobFields{Title: "A"})
			assert.ErrorIs(t, s.Do(ctx, s.SubmitDraft()), ErrNoID)
			assert.ErrorIs(t, s.Do(ctx, s.SubmitDraft()), ErrNoID)

			assert.Equal(t, seedJobs(), s.Jobs(), "nothing appended")
			assert.Equal(t, ErrCreateMsg, s.LastError())
			d, ok := s.Draft()
			require.True(t, ok, "draft stays open for retry")
			assert.Equal(t, "A", d.Fields.Title)
			assert.Equal(t, 0, s.InFlight())
		})
	}
}

func TestSubmitEditingDraftReplacesInPlace(t *testing.T) {
	r := &fakeRemote{updated: &domain.JobPosting{ID: "7", Title: "Frontend Lead", Description: "React + TS", Location: "Remote"}}
	s := loaded(t, r)

	require.True(t, s.BeginEdit("7"))
	d, _ := s.Draft()
	id, editing := d.Editing()
	require.True(t, editing)
	assert.Equal(t, domain.JobID("7"), id)
	assert.Equal(t, seedJobs()[1].Fields(), d.Fields)

	s.EditDraft(domain.JobFields{Title: "Frontend Lead", Description: "React + TS", Location: "Remote"})
	require.NoError(t, s.Do(context.Background(), s.SubmitDraft()))

	assert.Equal(t, domain.JobID("7"), r.updatedID)
	assert.Equal(t, "Frontend Lead", r.updatedWith.Title)

	want := seedJobs()
	want[1] = domain.JobPosting{ID: "7", Title: "Frontend Lead", Description: "React + TS", Location: "Remote"}
	assert.Equal(t, want, s.Jobs())
	_, ok := s.Draft()
	assert.False(t, ok)
}

func TestSubmitEditingDraftFailure(t *testing.T) {
	r := &fakeRemote{updateErr: errRemote}
	s := loaded(t, r)

	require.True(t, s.BeginEdit("7"))
	s.EditDraft(domain.JobFields{Title: "changed"})
	_ = s.Do(context.Background(), s.SubmitDraft())

	assert.Equal(t, seedJobs(), s.Jobs())
	d, ok := s.Draft()
	require.True(t, ok)
	assert.Equal(t, "changed", d.Fields.Title)
	assert.Equal(t, ErrUpdateMsg, s.LastError())
}

func TestBeginEditUnknownIDIsNoop(t *testing.T) {
	s := loaded(t, &fakeRemote{})
	s.BeginCreate()
	s.EditDraft(domain.JobFields{Title: "keep me"})

	assert.False(t, s.BeginEdit("does-not-exist"))
	d, ok := s.Draft()
	require.True(t, ok)
	assert.IsType(t, NewDraft{}, d.Mode)
	assert.Equal(t, "keep me", d.Fields.Title)
}

func TestBeginEditReplacesNewDraft(t *testing.T) {
	s := loaded(t, &fakeRemote{})
	s.BeginCreate()
	require.True(t, s.BeginEdit("5"))
	d, _ := s.Draft()
	assert.Equal(t, EditingDraft{ID: "5"}, d.Mode)
}

func TestDeleteEntrySuccess(t *testing.T) {
	r := &fakeRemote{}
	s := loaded(t, r)

	require.NoError(t, s.Do(context.Background(), s.DeleteEntry("7")))
	assert.Equal(t, domain.JobID("7"), r.deletedID)
	assert.Equal(t, []domain.JobPosting{seedJobs()[0], seedJobs()[2]}, s.Jobs())
}

func TestDeleteEntryFailure(t *testing.T) {
	r := &fakeRemote{deleteErr: errRemote}
	s := loaded(t, r)

	before := s.Jobs()
	_ = s.Do(context.Background(), s.DeleteEntry("7"))
	assert.Equal(t, before, s.Jobs())
	assert.Equal(t, ErrDeleteMsg, s.LastError())
}

func TestDeleteEntryUnknownID(t *testing.T) {
	s := loaded(t, &fakeRemote{})
	assert.Nil(t, s.DeleteEntry("nope"))
	assert.Equal(t, 0, s.InFlight())
}

func TestDeleteDoesNotRemoveBeforeConfirmation(t *testing.T) {
	s := loaded(t, &fakeRemote{})
	p := s.DeleteEntry("5")
	require.NotNil(t, p)
	assert.Equal(t, seedJobs(), s.Jobs(), "no optimistic removal")
	assert.Equal(t, 1, s.InFlight())

	s.Apply(p(context.Background()))
	assert.Equal(t, 0, s.InFlight())
	assert.Len(t, s.Jobs(), 2)
}

func TestSubmitWithoutDraft(t *testing.T) {
	s := New(&fakeRemote{}, nil)
	assert.Nil(t, s.SubmitDraft())
	assert.NoError(t, s.Do(context.Background(), nil))
}

func TestOverlappingOutcomesApplyInArrivalOrder(t *testing.T) {
	r := &fakeRemote{}
	s := loaded(t, r)
	ctx := context.Background()

	del5 := s.DeleteEntry("5")
	del9 := s.DeleteEntry("9")
	assert.Equal(t, 2, s.InFlight())

	// Responses arrive in reverse order of issue.
	s.Apply(del9(ctx))
	s.Apply(del5(ctx))
	assert.Equal(t, []domain.JobPosting{seedJobs()[1]}, s.Jobs())
	assert.Equal(t, 0, s.InFlight())
}

func TestUpdateOfEntryDeletedMeanwhile(t *testing.T) {
	r := &fakeRemote{updated: &domain.JobPosting{ID: "7", Title: "late"}}
	s := loaded(t, r)
	ctx := context.Background()

	require.True(t, s.BeginEdit("7"))
	upd := s.SubmitDraft()
	require.NoError(t, s.Do(ctx, s.DeleteEntry("7")))
	s.Apply(upd(ctx))

	assert.False(t, holds(s, "7"), "a confirmed delete is not undone by a late update")
	assert.Len(t, s.Jobs(), 2)
}

func TestSuccessDoesNotCloseNewerDraft(t *testing.T) {
	r := &fakeRemote{created: &domain.JobPosting{ID: "42", Title: "first"}}
	s := loaded(t, r)
	ctx := context.Background()

	s.BeginCreate()
	s.EditDraft(domain.JobFields{Title: "first"})
	p := s.SubmitDraft()

	// User gives up waiting and starts editing something else.
	s.CancelDraft()
	require.True(t, s.BeginEdit("5"))

	s.Apply(p(ctx))
	assert.True(t, holds(s, "42"), "create still lands in the collection")
	d, ok := s.Draft()
	require.True(t, ok, "the newer draft stays open")
	assert.Equal(t, EditingDraft{ID: "5"}, d.Mode)
}

func TestSubmittedFieldsAreSnapshotted(t *testing.T) {
	r := &fakeRemote{created: &domain.JobPosting{ID: "1"}}
	s := New(r, nil)

	s.BeginCreate()
	s.EditDraft(domain.JobFields{Title: "sent"})
	p := s.SubmitDraft()
	s.EditDraft(domain.JobFields{Title: "typed after submit"})

	s.Apply(p(context.Background()))
	assert.Equal(t, "sent", r.createdWith.Title)
}

func TestJobsReturnsCopy(t *testing.T) {
	s := loaded(t, &fakeRemote{})
	jobs := s.Jobs()
	jobs[0].Title = "mutated"
	assert.Equal(t, "Backend", s.Jobs()[0].Title)
}

func TestClearError(t *testing.T) {
	r := &fakeRemote{listErr: errRemote}
	s := New(r, nil)
	_ = s.Do(context.Background(), s.Load())
	require.NotEmpty(t, s.LastError())
	s.ClearError()
	assert.Empty(t, s.LastError())
}
