package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobRecord_Persistable(t *testing.T) {
	job := JobRecord{Platform: "dice", Title: "Engineer"}
	assert.False(t, job.Persistable())

	job.JobID = "job-123"
	assert.True(t, job.Persistable())
}
