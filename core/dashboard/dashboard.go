// Package dashboard computes the aggregates shown on the overview, fees and teachers pages.
package dashboard

import (
	"math"
	"time"

	"github.com/trezcool/coachdesk/core/batch"
	"github.com/trezcool/coachdesk/core/payment"
	"github.com/trezcool/coachdesk/core/schedule"
	"github.com/trezcool/coachdesk/core/student"
	"github.com/trezcool/coachdesk/core/teacher"
)

// UnknownStudent is the name shown for payments whose student no longer exists.
const UnknownStudent = "Unknown"

type (
	Stats struct {
		TotalStudents  int     `json:"totalStudents"`
		ActiveStudents int     `json:"activeStudents"`
		TotalBatches   int     `json:"totalBatches"`
		PendingFees    float64 `json:"pendingFees"`
		TotalCollected float64 `json:"totalCollected"`
	}

	RecentPayment struct {
		payment.Payment
		StudentName string `json:"studentName"`
	}

	Summary struct {
		Stats           Stats             `json:"stats"`
		TodayClasses    []batch.Batch     `json:"todayClasses"`
		PendingPayments []student.Student `json:"pendingPayments"`
		RecentPayments  []RecentPayment   `json:"recentPayments"`
	}

	FeeSummary struct {
		TotalCollected float64 `json:"totalCollected"`
		TotalPending   float64 `json:"totalPending"`
		OverdueCount   int     `json:"overdueCount"`
		TotalStudents  int     `json:"totalStudents"`
	}

	TeacherSummary struct {
		TotalTeachers  int `json:"totalTeachers"`
		ActiveTeachers int `json:"activeTeachers"`
		TotalSubjects  int `json:"totalSubjects"`
		AvgExperience  int `json:"avgExperience"` // years, rounded
	}
)

// Compute derives the dashboard from the full collections. today selects the classes of the day.
func Compute(students []student.Student, batches []batch.Batch, payments []payment.Payment, today time.Weekday) Summary {
	return Summary{
		Stats: Stats{
			TotalStudents:  len(students),
			ActiveStudents: countActive(students),
			TotalBatches:   len(batches),
			PendingFees:    PendingFees(students),
			TotalCollected: payment.Total(payments),
		},
		TodayClasses:    schedule.ClassesOn(batches, today),
		PendingPayments: PendingStudents(students),
		RecentPayments:  RecentPayments(payments, students, payment.RecentCount),
	}
}

// PendingFees sums what every student still owes: totalFees - paidAmount.
// Overpayments lower the total.
func PendingFees(students []student.Student) float64 {
	var total float64
	for _, s := range students {
		total += s.Due()
	}
	return total
}

// PendingStudents returns the students whose fee status is pending or overdue.
func PendingStudents(students []student.Student) []student.Student {
	pending := make([]student.Student, 0)
	for _, s := range students {
		if s.HasPendingFees() {
			pending = append(pending, s)
		}
	}
	return pending
}

// RecentPayments returns the n most recent payments joined to their student's name.
func RecentPayments(payments []payment.Payment, students []student.Student, n int) []RecentPayment {
	names := make(map[int]string, len(students))
	for _, s := range students {
		names[s.ID] = s.Name
	}
	recent := payment.Recent(payments, n)
	joined := make([]RecentPayment, 0, len(recent))
	for _, p := range recent {
		name, ok := names[p.StudentID]
		if !ok {
			name = UnknownStudent
		}
		joined = append(joined, RecentPayment{Payment: p, StudentName: name})
	}
	return joined
}

// FeeStats computes the totals of the fees page.
func FeeStats(students []student.Student, payments []payment.Payment) FeeSummary {
	fs := FeeSummary{
		TotalCollected: payment.Total(payments),
		TotalPending:   PendingFees(students),
		TotalStudents:  len(students),
	}
	for _, s := range students {
		if s.FeeStatus == student.FeeOverdue {
			fs.OverdueCount++
		}
	}
	return fs
}

// TeacherStats computes the totals of the teachers page.
func TeacherStats(teachers []teacher.Teacher) TeacherSummary {
	ts := TeacherSummary{TotalTeachers: len(teachers)}
	subjects := make(map[string]bool)
	var experience int
	for _, t := range teachers {
		if t.IsActive() {
			ts.ActiveTeachers++
		}
		for _, s := range t.Subjects {
			subjects[s] = true
		}
		experience += t.Experience
	}
	ts.TotalSubjects = len(subjects)
	if len(teachers) > 0 {
		ts.AvgExperience = int(math.Round(float64(experience) / float64(len(teachers))))
	}
	return ts
}

func countActive(students []student.Student) int {
	var n int
	for _, s := range students {
		if s.IsActive() {
			n++
		}
	}
	return n
}
