package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestField_String(t *testing.T) {
	assert.Equal(t, NotFound, Missing().String())
	assert.Equal(t, "Security Analyst", Found("Security Analyst").String())
	// A present field whose text is the placeholder is still present
	assert.True(t, Found(NotFound).Found)
	assert.Equal(t, "", Found("").String())
}

func TestJobRecord_ViewDefaults(t *testing.T) {
	record := NewJobRecord("https://example.com/job/1")

	view := record.View()
	assert.Equal(t, JobView{
		JobRole:    NotFound,
		Company:    NotFound,
		Location:   NotFound,
		Experience: NotFound,
		Salary:     NotFound,
		Skills:     NotFound,
		ApplyLink:  "https://example.com/job/1",
	}, view)
}

func TestJobResult_MarshalJSON(t *testing.T) {
	record := NewJobRecord("https://example.com/job/1")
	record.JobRole = Found("SOC Analyst")

	data, err := json.Marshal(JobOK(record))
	require.NoError(t, err)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "SOC Analyst", decoded["job_role"])
	assert.Equal(t, NotFound, decoded["company"])
	assert.Equal(t, "https://example.com/job/1", decoded["apply_link"])

	data, err = json.Marshal(JobFailed("https://example.com/job/2", "connection refused"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"url":"https://example.com/job/2","error":"connection refused"}`, string(data))
}

func TestJobResult_IsError(t *testing.T) {
	assert.False(t, JobOK(NewJobRecord("u")).IsError())
	assert.True(t, JobFailed("u", "boom").IsError())
}
