package views

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/jobboard/internal/client/models"
	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanApply(t *testing.T) {
	cand := &models.User{Role: models.RoleCandidate}
	emp := &models.User{Role: models.RoleEmployer}
	open := models.Job{Status: models.JobOpen}
	closed := models.Job{Status: models.JobClosed}

	assert.NoError(t, CanApply(cand, open))
	assert.Equal(t, "Please login to apply", common.UserMessage(CanApply(nil, open)))
	assert.Equal(t, "Only candidates can apply to jobs", common.UserMessage(CanApply(emp, open)))
	assert.Equal(t, "This job is no longer accepting applications", common.UserMessage(CanApply(cand, closed)))
}

func TestApplyForm_Submit(t *testing.T) {
	up := &fakeUploader{}
	fa := &fakeApps{}
	u := &models.User{Role: models.RoleCandidate}
	f := NewApplyForm(context.Background(), models.Job{ID: "job-1", Title: "Go developer", Status: models.JobOpen}, u, up, fa)
	defer f.Close()

	assert.Equal(t, "Apply to Go developer", f.Title())

	a, err := f.Submit(" cv.pdf ", "hello")
	require.NoError(t, err)
	assert.Equal(t, "https://files.example.com/cv.pdf", a.ResumeURL)
	assert.Equal(t, []string{"cv.pdf"}, up.paths)
	assert.Equal(t, []string{"submit"}, fa.Calls())
}

func TestApplyForm_ClosedJobRefusedBeforeUpload(t *testing.T) {
	up := &fakeUploader{}
	fa := &fakeApps{}
	f := NewApplyForm(context.Background(), models.Job{ID: "job-1", Status: models.JobClosed}, &models.User{Role: models.RoleCandidate}, up, fa)
	defer f.Close()

	_, err := f.Submit("cv.pdf", "")
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Empty(t, up.paths)
	assert.Empty(t, fa.Calls())
}

func TestApplyForm_RequiresResume(t *testing.T) {
	up := &fakeUploader{}
	f := NewApplyForm(context.Background(), models.Job{ID: "job-1", Status: models.JobOpen}, &models.User{Role: models.RoleCandidate}, up, &fakeApps{})
	defer f.Close()

	_, err := f.Submit("  ", "")
	assert.Equal(t, "Please upload your resume", common.UserMessage(err))
	assert.Empty(t, up.paths)
}

func TestApplyForm_UploadFailureSkipsSubmit(t *testing.T) {
	up := &fakeUploader{err: common.NewValidationError("resume", "Only PDF files are allowed")}
	fa := &fakeApps{}
	f := NewApplyForm(context.Background(), models.Job{ID: "job-1", Status: models.JobOpen}, &models.User{Role: models.RoleCandidate}, up, fa)
	defer f.Close()

	_, err := f.Submit("cv.txt", "")
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Empty(t, fa.Calls())
}

func TestJobForm(t *testing.T) {
	fj := &fakeJobs{job: models.Job{Title: "Go developer", Status: models.JobOpen}}
	f := NewJobForm(context.Background(), fj)
	defer f.Close()

	j, err := f.Create(models.JobInput{Title: "Go developer"})
	require.NoError(t, err)
	assert.Equal(t, "job-new", j.ID)
	require.Len(t, fj.created, 1)

	closed := models.JobClosed
	j, err = f.Update("job-1", models.JobPatch{Status: &closed})
	require.NoError(t, err)
	assert.Equal(t, models.JobClosed, j.Status)

	f.Close()
	_, err = f.Create(models.JobInput{})
	require.ErrorIs(t, err, ErrClosed)
}
