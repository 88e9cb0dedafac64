package schedule

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/coachdesk/core/batch"
	"github.com/trezcool/coachdesk/core/teacher"
)

func newBatch(id int, room string, teacherID int, slot string, days ...string) batch.Batch {
	return batch.Batch{
		ID:        id,
		Name:      "Batch",
		Room:      room,
		TeacherID: teacherID,
		Schedule:  batch.Schedule{Days: days, TimeSlot: slot},
	}
}

func TestDetectConflicts(t *testing.T) {
	tests := []struct {
		name    string
		batches []batch.Batch
		want    []Conflict
	}{
		{name: "no batches", want: []Conflict{}},
		{
			name: "same room, different teachers",
			batches: []batch.Batch{
				newBatch(1, "101", 1, batch.SlotMorning, "Monday"),
				newBatch(2, "101", 2, batch.SlotMorning, "Monday"),
			},
			want: []Conflict{{
				Type: ConflictRoom, Day: "Monday", TimeSlot: batch.SlotMorning, Room: "101",
				Batches: []batch.Batch{
					newBatch(1, "101", 1, batch.SlotMorning, "Monday"),
					newBatch(2, "101", 2, batch.SlotMorning, "Monday"),
				},
			}},
		},
		{
			name: "different days",
			batches: []batch.Batch{
				newBatch(1, "101", 1, batch.SlotMorning, "Monday"),
				newBatch(2, "101", 1, batch.SlotMorning, "Tuesday"),
			},
			want: []Conflict{},
		},
		{
			name: "different slots",
			batches: []batch.Batch{
				newBatch(1, "101", 1, batch.SlotMorning, "Monday"),
				newBatch(2, "101", 1, batch.SlotEvening, "Monday"),
			},
			want: []Conflict{},
		},
		{
			name: "same teacher, different rooms",
			batches: []batch.Batch{
				newBatch(1, "101", 7, batch.SlotAfternoon, "Friday"),
				newBatch(2, "102", 7, batch.SlotAfternoon, "Friday", "Saturday"),
			},
			want: []Conflict{{
				Type: ConflictTeacher, Day: "Friday", TimeSlot: batch.SlotAfternoon, TeacherID: 7,
				Batches: []batch.Batch{
					newBatch(1, "101", 7, batch.SlotAfternoon, "Friday"),
					newBatch(2, "102", 7, batch.SlotAfternoon, "Friday", "Saturday"),
				},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectConflicts(tt.batches))
		})
	}
}

func TestDetectConflicts_ordering(t *testing.T) {
	batches := []batch.Batch{
		newBatch(1, "A", 1, batch.SlotEvening, "Monday"),
		newBatch(2, "A", 1, batch.SlotEvening, "Monday"),
		newBatch(3, "B", 2, batch.SlotMorning, "Monday", "Sunday"),
		newBatch(4, "B", 3, batch.SlotMorning, "Monday", "Sunday"),
		newBatch(5, "C", 9, batch.SlotMorning, "Wednesday"),
		newBatch(6, "D", 9, batch.SlotMorning, "Wednesday"),
	}

	got := DetectConflicts(batches)

	type key struct{ typ, day, slot string }
	keys := make([]key, 0, len(got))
	for _, c := range got {
		keys = append(keys, key{c.Type, c.Day, c.TimeSlot})
	}
	assert.Equal(t, []key{
		{ConflictRoom, "Monday", batch.SlotMorning},
		{ConflictRoom, "Monday", batch.SlotEvening},
		{ConflictTeacher, "Monday", batch.SlotEvening},
		{ConflictTeacher, "Wednesday", batch.SlotMorning},
		{ConflictRoom, "Sunday", batch.SlotMorning},
	}, keys)
}

func TestDetectConflicts_groupOrder(t *testing.T) {
	batches := []batch.Batch{
		newBatch(1, "Lab", 7, batch.SlotMorning, "Monday"),
		newBatch(2, "Lab", 7, batch.SlotMorning, "Monday"),
		newBatch(3, "202", 12, batch.SlotMorning, "Monday"),
		newBatch(4, "202", 12, batch.SlotMorning, "Monday"),
		newBatch(5, "101", 3, batch.SlotMorning, "Monday"),
		newBatch(6, "101", 3, batch.SlotMorning, "Monday"),
		newBatch(7, "0101", 3, batch.SlotMorning, "Monday"),
		newBatch(8, "0101", 3, batch.SlotMorning, "Monday"),
	}

	got := DetectConflicts(batches)

	rooms := make([]string, 0)
	teachers := make([]int, 0)
	for _, c := range got {
		if c.Type == ConflictRoom {
			rooms = append(rooms, c.Room)
		} else {
			teachers = append(teachers, c.TeacherID)
		}
	}
	// integer-like names first, ascending; the others as they appear
	assert.Equal(t, []string{"101", "202", "Lab", "0101"}, rooms)
	assert.Equal(t, []int{3, 7, 12}, teachers)
}

func TestConflict_jsonKeepsZeroResource(t *testing.T) {
	data, err := json.Marshal(Conflict{Type: ConflictRoom, Day: "Monday", TimeSlot: batch.SlotMorning, Batches: []batch.Batch{}})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"room":""`)
	assert.Contains(t, string(data), `"teacherId":0`)
}

func TestDetectConflicts_doesNotMutate(t *testing.T) {
	batches := []batch.Batch{
		newBatch(2, "101", 1, batch.SlotMorning, "Monday"),
		newBatch(1, "101", 1, batch.SlotMorning, "Monday"),
	}
	orig := append([]batch.Batch(nil), batches...)
	conflicts := DetectConflicts(batches)
	require.Len(t, conflicts, 2)
	assert.Equal(t, orig, batches)
}

func TestBuildWeek(t *testing.T) {
	batches := []batch.Batch{
		newBatch(1, "101", 1, batch.SlotMorning, "Monday", "Wednesday"),
		newBatch(2, "102", 42, batch.SlotEvening, "Wednesday"),
	}
	teachers := []teacher.Teacher{{ID: 1, Name: "Rajesh Kumar"}}

	week := BuildWeek(batches, teachers)

	require.Len(t, week.Days, 7)
	assert.Equal(t, "Monday", week.Days[0].Day)
	assert.Equal(t, "Sunday", week.Days[6].Day)
	for _, ds := range week.Days {
		require.Len(t, ds.Cells, 3)
	}

	monday := week.Days[0]
	require.Len(t, monday.Cells[0].Classes, 1)
	assert.Equal(t, "Rajesh Kumar", monday.Cells[0].Classes[0].TeacherName)
	assert.Empty(t, monday.Cells[2].Classes)

	wednesday := week.Days[2]
	assert.Len(t, wednesday.Cells[0].Classes, 1)
	require.Len(t, wednesday.Cells[2].Classes, 1)
	assert.Equal(t, Unassigned, wednesday.Cells[2].Classes[0].TeacherName)
	assert.Empty(t, week.Conflicts)
}

func TestClassesOn(t *testing.T) {
	batches := []batch.Batch{
		newBatch(1, "101", 1, batch.SlotMorning, "Monday", "Wednesday"),
		newBatch(2, "102", 2, batch.SlotEvening, "Wednesday"),
		newBatch(3, "103", 3, batch.SlotEvening, "Sunday"),
	}

	assert.Len(t, ClassesOn(batches, time.Wednesday), 2)
	assert.Len(t, ClassesOn(batches, time.Sunday), 1)
	assert.Empty(t, ClassesOn(batches, time.Tuesday))
}

func TestFilterConflicts(t *testing.T) {
	conflicts := []Conflict{{Day: "Monday"}, {Day: "Tuesday"}, {Day: "Monday"}}

	assert.Len(t, FilterConflicts(conflicts, ""), 3)
	assert.Len(t, FilterConflicts(conflicts, "Monday"), 2)
	assert.Empty(t, FilterConflicts(conflicts, "Sunday"))
}
