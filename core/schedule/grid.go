package schedule

import (
	"github.com/trezcool/coachdesk/core/batch"
	"github.com/trezcool/coachdesk/core/teacher"
)

// Unassigned is the teacher name shown for batches whose teacher is unknown.
const Unassigned = "Unassigned"

type (
	// Class is a batch as shown in a cell of the weekly grid.
	Class struct {
		BatchID     int    `json:"batchId"`
		Name        string `json:"name"`
		Subject     string `json:"subject"`
		Room        string `json:"room"`
		Time        string `json:"time"`
		TeacherID   int    `json:"teacherId"`
		TeacherName string `json:"teacherName"`
	}

	Cell struct {
		TimeSlot string  `json:"timeSlot"`
		Classes  []Class `json:"classes"`
	}

	DaySchedule struct {
		Day   string `json:"day"`
		Cells []Cell `json:"cells"`
	}

	Week struct {
		Days      []DaySchedule `json:"days"`
		Conflicts []Conflict    `json:"conflicts"`
	}
)

// BuildWeek lays batches out on the 7 days x 3 slots grid and reports their conflicts.
func BuildWeek(batches []batch.Batch, teachers []teacher.Teacher) Week {
	names := make(map[int]string, len(teachers))
	for _, t := range teachers {
		names[t.ID] = t.Name
	}

	week := Week{
		Days:      make([]DaySchedule, 0, len(Days)),
		Conflicts: DetectConflicts(batches),
	}
	for _, day := range Days {
		ds := DaySchedule{Day: day, Cells: make([]Cell, 0, len(batch.Slots))}
		for _, slot := range batch.Slots {
			cell := Cell{TimeSlot: slot, Classes: make([]Class, 0)}
			for _, b := range In(batches, day, slot) {
				name, ok := names[b.TeacherID]
				if !ok {
					name = Unassigned
				}
				cell.Classes = append(cell.Classes, Class{
					BatchID:     b.ID,
					Name:        b.Name,
					Subject:     b.Subject,
					Room:        b.Room,
					Time:        b.Schedule.Time,
					TeacherID:   b.TeacherID,
					TeacherName: name,
				})
			}
			ds.Cells = append(ds.Cells, cell)
		}
		week.Days = append(week.Days, ds)
	}
	return week
}

// FilterConflicts keeps the conflicts happening on day. An empty day keeps them all.
func FilterConflicts(conflicts []Conflict, day string) []Conflict {
	if day == "" {
		return conflicts
	}
	filtered := make([]Conflict, 0)
	for _, c := range conflicts {
		if c.Day == day {
			filtered = append(filtered, c)
		}
	}
	return filtered
}
