package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRoundTrip(t *testing.T) {
	created := time.Date(2025, 7, 8, 10, 0, 0, 123456000, time.FixedZone("CEST", 2*60*60))
	orig := New("Setup CI/CD", "Configure Jenkins and Docker",
		WithID(1751961600123),
		WithAssignee("Alice"),
		WithDueDate(time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)),
		WithClock(clock(created)))
	require.NoError(t, orig.UpdateStatus("In Progress"))

	rec := orig.ToRecord()
	assert.Equal(t, int64(1751961600123), rec.ID)
	assert.Equal(t, "In Progress", rec.Status)
	assert.Equal(t, "2025-07-08T10:00:00.123456+02:00", rec.CreatedAt)
	require.NotNil(t, rec.DueDate)
	assert.Equal(t, "2025-07-15T00:00:00Z", *rec.DueDate)

	back := FromRecord(rec)
	assert.Equal(t, orig.ID, back.ID)
	assert.Equal(t, orig.Title, back.Title)
	assert.Equal(t, orig.Description, back.Description)
	assert.Equal(t, orig.Status(), back.Status())
	assert.Equal(t, orig.Assignee(), back.Assignee())
	assert.Equal(t, orig.CreatedAt().String(), back.CreatedAt().String())
	assert.True(t, orig.CreatedAt().Time().Equal(back.CreatedAt().Time()))
	assert.Equal(t, rec, back.ToRecord())
}

func TestFromRecordKeepsCreatedAtText(t *testing.T) {
	for _, text := range []string{
		"2025-07-08T10:00:00.123456", // no zone
		"2025-07-08",
		"yesterday-ish",
	} {
		rec := Record{ID: 1, Title: "t", Description: "d", Status: "Done", CreatedAt: text}
		assert.Equal(t, text, FromRecord(rec).ToRecord().CreatedAt)
	}

	naive := FromRecord(Record{Status: "To Do", CreatedAt: "2025-07-08T10:00:00.123456"})
	assert.Equal(t, time.Date(2025, 7, 8, 10, 0, 0, 123456000, time.Local), naive.CreatedAt().Time())

	broken := FromRecord(Record{Status: "To Do", CreatedAt: "yesterday-ish"})
	assert.True(t, broken.CreatedAt().IsZero())
}

func TestRecordWithoutOptionalFields(t *testing.T) {
	task := New("Login Page", "Develop frontend login", WithID(7))
	rec := task.ToRecord()

	assert.Empty(t, rec.Assignee)
	assert.Nil(t, rec.DueDate)

	_, ok := FromRecord(rec).DueDate()
	assert.False(t, ok)
}

func TestDocumentPreservesOrder(t *testing.T) {
	tasks := []*Task{
		New("first", "", WithID(3)),
		New("second", "", WithID(1)),
		New("third", "", WithID(2)),
	}

	decoded := NewDocument(tasks).Decode()
	require.Len(t, decoded, 3)
	for i := range tasks {
		assert.Equal(t, tasks[i].Title, decoded[i].Title)
		assert.Equal(t, tasks[i].ID, decoded[i].ID)
	}
}

func TestOverdueWithUnparseableDueDate(t *testing.T) {
	due := "someday"
	task := FromRecord(Record{Status: "To Do", CreatedAt: "2025-07-08", DueDate: &due})

	assert.False(t, task.IsOverdue(time.Now()))
	assert.Equal(t, "someday", *task.ToRecord().DueDate)
}
