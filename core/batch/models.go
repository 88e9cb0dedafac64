package batch

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/coachdesk/core"
)

// Time slots
const (
	SlotMorning   = "morning"
	SlotAfternoon = "afternoon"
	SlotEvening   = "evening"
)

// Slots lists the time slots of a day, in order.
var Slots = []string{SlotMorning, SlotAfternoon, SlotEvening}

type Schedule struct {
	Days     []string `json:"days"`
	Time     string   `json:"time"`
	TimeSlot string   `json:"timeSlot"`
}

// MeetsOn reports whether the schedule includes day (a week day name).
func (s Schedule) MeetsOn(day string) bool {
	for _, d := range s.Days {
		if d == day {
			return true
		}
	}
	return false
}

type Batch struct {
	ID            int      `json:"Id"`
	Name          string   `json:"name"`
	Subject       string   `json:"subject"`
	TeacherID     int      `json:"teacherId"`
	Schedule      Schedule `json:"schedule"`
	Room          string   `json:"room"`
	Capacity      int      `json:"capacity"`
	EnrolledCount int      `json:"enrolledCount"`
	Fees          float64  `json:"fees"`
	StartDate     string   `json:"startDate"`
	EndDate       string   `json:"endDate"`
}

// SeatsLeft is the remaining capacity. It is negative when the Batch is overbooked.
func (b Batch) SeatsLeft() int {
	return b.Capacity - b.EnrolledCount
}

// SlotForTime maps an "HH:MM" time to its time slot: before 12 is morning,
// before 18 is afternoon, anything else (unparsable hours included) is evening.
func SlotForTime(t string) string {
	hour, ok := core.ParseID(strings.SplitN(t, ":", 2)[0])
	switch {
	case !ok:
		return SlotEvening
	case hour < 12:
		return SlotMorning
	case hour < 18:
		return SlotAfternoon
	}
	return SlotEvening
}

// ScheduleInput is the schedule of a NewBatch or an UpdateBatch.
type ScheduleInput struct {
	Days     []string `json:"days" validate:"required,min=1,dive,weekday"`
	Time     string   `json:"time" validate:"required"`
	TimeSlot string   `json:"timeSlot" validate:"omitempty,oneof=morning afternoon evening"`
}

func (si *ScheduleInput) clean() {
	si.Time = core.CleanString(si.Time)
	si.TimeSlot = core.CleanString(si.TimeSlot, true /* lower */)
	for i, d := range si.Days {
		si.Days[i] = core.CleanWeekday(d)
	}
}

func (si ScheduleInput) toSchedule() Schedule {
	s := Schedule{
		Days:     append([]string{}, si.Days...),
		Time:     si.Time,
		TimeSlot: si.TimeSlot,
	}
	if s.TimeSlot == "" {
		s.TimeSlot = SlotForTime(s.Time)
	}
	return s
}

// NewBatch contains information needed to create a new Batch.
type NewBatch struct {
	Name      string        `json:"name" validate:"required"`
	Subject   string        `json:"subject" validate:"required"`
	TeacherID int           `json:"teacherId" validate:"required,gt=0"`
	Schedule  ScheduleInput `json:"schedule"`
	Room      string        `json:"room" validate:"required"`
	Capacity  int           `json:"capacity" validate:"required,gt=0"`
	Fees      float64       `json:"fees" validate:"gte=0"`
	StartDate string        `json:"startDate" validate:"required,isodate"`
	EndDate   string        `json:"endDate" validate:"required,isodate"`
}

func (nb *NewBatch) Validate(validate *validator.Validate) error {
	nb.Name = core.CleanString(nb.Name)
	nb.Subject = core.CleanString(nb.Subject)
	nb.Room = core.CleanString(nb.Room)
	nb.StartDate = core.CleanString(nb.StartDate)
	nb.EndDate = core.CleanString(nb.EndDate)
	nb.Schedule.clean()
	if err := validate.Struct(nb); err != nil {
		return err
	}
	return checkDates(nb.StartDate, nb.EndDate)
}

// UpdateBatch defines what information may be provided to modify an existing Batch.
// nil fields are left untouched. ID is accepted but never applied.
type UpdateBatch struct {
	ID            *int           `json:"Id"`
	Name          *string        `json:"name" validate:"omitempty,min=1"`
	Subject       *string        `json:"subject" validate:"omitempty,min=1"`
	TeacherID     *int           `json:"teacherId" validate:"omitempty,gt=0"`
	Schedule      *ScheduleInput `json:"schedule"`
	Room          *string        `json:"room" validate:"omitempty,min=1"`
	Capacity      *int           `json:"capacity" validate:"omitempty,gt=0"`
	EnrolledCount *int           `json:"enrolledCount" validate:"omitempty,gte=0"`
	Fees          *float64       `json:"fees" validate:"omitempty,gte=0"`
	StartDate     *string        `json:"startDate" validate:"omitempty,isodate"`
	EndDate       *string        `json:"endDate" validate:"omitempty,isodate"`
}

// Validate cleans and validates the patch against the Batch it will be applied to.
func (ub *UpdateBatch) Validate(orig Batch, validate *validator.Validate) error {
	for _, s := range []*string{ub.Name, ub.Subject, ub.Room, ub.StartDate, ub.EndDate} {
		if s != nil {
			*s = core.CleanString(*s)
		}
	}
	if ub.Schedule != nil {
		ub.Schedule.clean()
	}
	if err := validate.Struct(ub); err != nil {
		return err
	}
	patched := ub.Apply(orig)
	return checkDates(patched.StartDate, patched.EndDate)
}

// Apply copies every set field of the patch onto b. b.ID is preserved.
func (ub UpdateBatch) Apply(b Batch) Batch {
	if ub.Name != nil {
		b.Name = *ub.Name
	}
	if ub.Subject != nil {
		b.Subject = *ub.Subject
	}
	if ub.TeacherID != nil {
		b.TeacherID = *ub.TeacherID
	}
	if ub.Schedule != nil {
		b.Schedule = ub.Schedule.toSchedule()
	}
	if ub.Room != nil {
		b.Room = *ub.Room
	}
	if ub.Capacity != nil {
		b.Capacity = *ub.Capacity
	}
	if ub.EnrolledCount != nil {
		b.EnrolledCount = *ub.EnrolledCount
	}
	if ub.Fees != nil {
		b.Fees = *ub.Fees
	}
	if ub.StartDate != nil {
		b.StartDate = *ub.StartDate
	}
	if ub.EndDate != nil {
		b.EndDate = *ub.EndDate
	}
	return b
}

// checkDates reports an error on endDate when it does not fall after startDate.
func checkDates(startDate, endDate string) error {
	start, err1 := time.Parse(core.DateLayout, startDate)
	end, err2 := time.Parse(core.DateLayout, endDate)
	if err1 != nil || err2 != nil {
		return nil // malformed dates are reported by the `isodate` tag
	}
	if !end.After(start) {
		return core.NewValidationError(
			errEndBeforeStart,
			core.FieldError{Field: "endDate", Error: errEndBeforeStart.Error()},
		)
	}
	return nil
}
