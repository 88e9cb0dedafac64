// Package schedule lays batches out on the weekly grid and finds the
// rooms and teachers booked twice in the same slot.
package schedule

import (
	"sort"
	"strconv"
	"time"

	"github.com/trezcool/coachdesk/core/batch"
)

// Conflict types
const (
	ConflictRoom    = "room"
	ConflictTeacher = "teacher"
)

// Days lists the week days, Monday first.
var Days = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Conflict is a room or a teacher booked by more than one batch in the same day and slot.
type Conflict struct {
	Type      string        `json:"type"`
	Day       string        `json:"day"`
	TimeSlot  string        `json:"timeSlot"`
	Room      string        `json:"room"`
	TeacherID int           `json:"teacherId"`
	Batches   []batch.Batch `json:"batches"`
}

// DetectConflicts scans every (day, slot) cell of the week. Conflicts come out in
// day then slot order; within a cell room conflicts precede teacher conflicts,
// and groups follow object key order: integer-like keys ascending, then the
// other keys in order of first appearance.
func DetectConflicts(batches []batch.Batch) []Conflict {
	conflicts := make([]Conflict, 0)
	for _, day := range Days {
		for _, slot := range batch.Slots {
			cell := In(batches, day, slot)
			if len(cell) < 2 {
				continue
			}
			for _, g := range groupBy(cell, func(b batch.Batch) string { return b.Room }) {
				if len(g.batches) > 1 {
					conflicts = append(conflicts, Conflict{
						Type: ConflictRoom, Day: day, TimeSlot: slot,
						Room: g.key, Batches: g.batches,
					})
				}
			}
			for _, g := range groupBy(cell, func(b batch.Batch) string { return strconv.Itoa(b.TeacherID) }) {
				if len(g.batches) > 1 {
					conflicts = append(conflicts, Conflict{
						Type: ConflictTeacher, Day: day, TimeSlot: slot,
						TeacherID: g.batches[0].TeacherID, Batches: g.batches,
					})
				}
			}
		}
	}
	return conflicts
}

// In returns the batches meeting on day during slot.
func In(batches []batch.Batch, day, slot string) []batch.Batch {
	cell := make([]batch.Batch, 0)
	for _, b := range batches {
		if b.Schedule.TimeSlot == slot && b.Schedule.MeetsOn(day) {
			cell = append(cell, b)
		}
	}
	return cell
}

// ClassesOn returns the batches meeting on the given week day.
func ClassesOn(batches []batch.Batch, day time.Weekday) []batch.Batch {
	name := day.String()
	classes := make([]batch.Batch, 0)
	for _, b := range batches {
		if b.Schedule.MeetsOn(name) {
			classes = append(classes, b)
		}
	}
	return classes
}

type group struct {
	key     string
	batches []batch.Batch
}

func groupBy(batches []batch.Batch, key func(batch.Batch) string) []group {
	groups := make([]group, 0)
	index := make(map[string]int)
	for _, b := range batches {
		k := key(b)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, group{key: k})
		}
		groups[i].batches = append(groups[i].batches, b)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		ni, okI := arrayIndex(groups[i].key)
		nj, okJ := arrayIndex(groups[j].key)
		if okI && okJ {
			return ni < nj
		}
		return okI && !okJ
	})
	return groups
}

// arrayIndex reports whether key is a canonical array index ("0", "101", not "0101" or "-1").
func arrayIndex(key string) (uint64, bool) {
	n, err := strconv.ParseUint(key, 10, 32)
	if err != nil || n == 1<<32-1 || strconv.FormatUint(n, 10) != key {
		return 0, false
	}
	return n, true
}
