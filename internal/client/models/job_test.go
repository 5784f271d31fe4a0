package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobFilters_Values_OnlySetFilters(t *testing.T) {
	remote := true
	f := JobFilters{Q: "engineer", IsRemote: &remote}
	assert.Equal(t, "isRemote=true&q=engineer", f.Values().Encode())

	assert.Empty(t, JobFilters{}.Values().Encode())

	notRemote := false
	f = JobFilters{
		Location:       "Pune",
		IsRemote:       &notRemote,
		SalaryMin:      500000,
		EmploymentType: Contract,
		Page:           2,
		Limit:          20,
	}
	v := f.Values()
	assert.Equal(t, "false", v.Get("isRemote"))
	assert.Equal(t, "500000", v.Get("salaryMin"))
	assert.Equal(t, "contract", v.Get("employmentType"))
	assert.Equal(t, "2", v.Get("page"))
	assert.Equal(t, "20", v.Get("limit"))
	assert.Equal(t, "Pune", v.Get("location"))
}

func TestEmploymentType_Valid(t *testing.T) {
	for _, et := range EmploymentTypes() {
		assert.True(t, et.Valid())
	}
	assert.False(t, EmploymentType("freelance").Valid())
}

func TestPageMeta_HasNext(t *testing.T) {
	var nilMeta *PageMeta
	assert.False(t, nilMeta.HasNext())
	assert.True(t, (&PageMeta{Page: 1, TotalPages: 3}).HasNext())
	assert.False(t, (&PageMeta{Page: 3, TotalPages: 3}).HasNext())
	assert.False(t, (&PageMeta{Page: 1, TotalPages: 0}).HasNext())
}

func TestUploadDescriptor_Shape(t *testing.T) {
	assert.True(t, UploadDescriptor{Signature: "s", CloudName: "c"}.IsSignedForm())
	assert.False(t, UploadDescriptor{Signature: "s", CloudName: "c"}.IsPresigned())
	assert.True(t, UploadDescriptor{UploadURL: "https://s3/x", PublicURL: "https://cdn/x"}.IsPresigned())
}

func TestJobPatch_TagsEncoding(t *testing.T) {
	b, err := json.Marshal(JobPatch{})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(b))

	cleared := []string{}
	b, err = json.Marshal(JobPatch{Tags: &cleared})
	require.NoError(t, err)
	assert.JSONEq(t, `{"tags":[]}`, string(b))
}
