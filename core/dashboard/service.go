package dashboard

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/trezcool/coachdesk/core/batch"
	"github.com/trezcool/coachdesk/core/payment"
	"github.com/trezcool/coachdesk/core/student"
	"github.com/trezcool/coachdesk/core/teacher"
)

type (
	// Snapshot holds the collections fetched concurrently for a page. Only the requested ones are set.
	Snapshot struct {
		Students []student.Student
		Teachers []teacher.Teacher
		Batches  []batch.Batch
		Payments []payment.Payment
	}

	// FeesPage is the data of the fees page.
	FeesPage struct {
		Stats    FeeSummary        `json:"stats"`
		Students []student.Student `json:"students"`
		Pending  []student.Student `json:"pending"`
	}

	Service struct {
		studentSvc student.Service
		teacherSvc teacher.Service
		batchSvc   batch.Service
		paymentSvc payment.Service
		now        func() time.Time
	}
)

func NewService(
	studentSvc student.Service,
	teacherSvc teacher.Service,
	batchSvc batch.Service,
	paymentSvc payment.Service,
) *Service {
	return &Service{
		studentSvc: studentSvc,
		teacherSvc: teacherSvc,
		batchSvc:   batchSvc,
		paymentSvc: paymentSvc,
		now:        time.Now,
	}
}

// SetClock replaces the clock used to pick today's classes.
func (svc *Service) SetClock(now func() time.Time) {
	svc.now = now
}

// Fetch loads the requested collections concurrently. It fails as a whole if any fetch fails.
func (svc *Service) Fetch(ctx context.Context, students, teachers, batches, payments bool) (Snapshot, error) {
	var snap Snapshot
	g, ctx := errgroup.WithContext(ctx)
	if students {
		g.Go(func() (err error) {
			snap.Students, err = svc.studentSvc.QueryAll(ctx)
			return errors.Wrap(err, "fetching students")
		})
	}
	if teachers {
		g.Go(func() (err error) {
			snap.Teachers, err = svc.teacherSvc.QueryAll(ctx)
			return errors.Wrap(err, "fetching teachers")
		})
	}
	if batches {
		g.Go(func() (err error) {
			snap.Batches, err = svc.batchSvc.QueryAll(ctx)
			return errors.Wrap(err, "fetching batches")
		})
	}
	if payments {
		g.Go(func() (err error) {
			snap.Payments, err = svc.paymentSvc.QueryAll(ctx)
			return errors.Wrap(err, "fetching payments")
		})
	}
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// Load computes the dashboard Summary from freshly fetched collections.
func (svc *Service) Load(ctx context.Context) (Summary, error) {
	snap, err := svc.Fetch(ctx, true, false, true, true)
	if err != nil {
		return Summary{}, err
	}
	return Compute(snap.Students, snap.Batches, snap.Payments, svc.now().Weekday()), nil
}

// LoadFees computes the fees page from freshly fetched collections.
func (svc *Service) LoadFees(ctx context.Context) (FeesPage, error) {
	snap, err := svc.Fetch(ctx, true, false, false, true)
	if err != nil {
		return FeesPage{}, err
	}
	return FeesPage{
		Stats:    FeeStats(snap.Students, snap.Payments),
		Students: snap.Students,
		Pending:  PendingStudents(snap.Students),
	}, nil
}

// LoadTeacherStats computes the teachers page totals.
func (svc *Service) LoadTeacherStats(ctx context.Context) (TeacherSummary, error) {
	teachers, err := svc.teacherSvc.QueryAll(ctx)
	if err != nil {
		return TeacherSummary{}, errors.Wrap(err, "fetching teachers")
	}
	return TeacherStats(teachers), nil
}
