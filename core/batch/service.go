package batch

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/coachdesk/core"
	"github.com/trezcool/coachdesk/core/student"
)

var (
	// errors
	ErrNotFound       = core.NewNotFoundError("batch")
	errEndBeforeStart = errors.New("end date must be after start date")
)

type (
	Repository interface {
		CreateBatch(b Batch) (Batch, error)
		QueryAllBatches() ([]Batch, error)
		GetBatchByID(id int) (Batch, error)
		UpdateBatch(b Batch) (Batch, error)
		// SetEnrolledCounts overwrites EnrolledCount of every Batch found in counts.
		SetEnrolledCounts(counts map[int]int) error
		DeleteBatch(id int) error
	}

	Service interface {
		QueryAll(ctx context.Context, orderings ...core.Ordering) ([]Batch, error)
		GetByID(ctx context.Context, id int) (Batch, error)
		GetByTeacher(ctx context.Context, teacherID int) ([]Batch, error)
		Create(ctx context.Context, nb NewBatch) (Batch, error)
		Update(ctx context.Context, id int, ub UpdateBatch) (Batch, error)
		// UpdateEnrollment overwrites the enrolled count as-is.
		UpdateEnrollment(ctx context.Context, id, count int) (Batch, error)
		// SyncEnrollment sets the enrolled count of every Batch from the students' memberships.
		SyncEnrollment(ctx context.Context, students []student.Student) error
		Delete(ctx context.Context, id int) error
	}

	service struct {
		repo    Repository
		latency core.Latency
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, latency core.Latency) Service {
	return &service{repo: repo, latency: latency}
}

func (svc *service) QueryAll(ctx context.Context, orderings ...core.Ordering) ([]Batch, error) {
	if err := svc.latency.Wait(ctx, core.OpList); err != nil {
		return nil, err
	}
	batches, err := svc.repo.QueryAllBatches()
	if err != nil {
		return nil, errors.Wrap(err, "querying batches")
	}
	Sort(batches, orderings)
	return batches, nil
}

func (svc *service) GetByID(ctx context.Context, id int) (Batch, error) {
	if err := svc.latency.Wait(ctx, core.OpGet); err != nil {
		return Batch{}, err
	}
	return svc.repo.GetBatchByID(id)
}

func (svc *service) GetByTeacher(ctx context.Context, teacherID int) ([]Batch, error) {
	if err := svc.latency.Wait(ctx, core.OpLookup); err != nil {
		return nil, err
	}
	all, err := svc.repo.QueryAllBatches()
	if err != nil {
		return nil, errors.Wrap(err, "querying batches")
	}
	batches := make([]Batch, 0)
	for _, b := range all {
		if b.TeacherID == teacherID {
			batches = append(batches, b)
		}
	}
	return batches, nil
}

func (svc *service) Create(ctx context.Context, nb NewBatch) (Batch, error) {
	if err := svc.latency.Wait(ctx, core.OpCreate); err != nil {
		return Batch{}, err
	}
	b := Batch{
		Name:      nb.Name,
		Subject:   nb.Subject,
		TeacherID: nb.TeacherID,
		Schedule:  nb.Schedule.toSchedule(),
		Room:      nb.Room,
		Capacity:  nb.Capacity,
		Fees:      nb.Fees,
		StartDate: nb.StartDate,
		EndDate:   nb.EndDate,
	}
	return svc.repo.CreateBatch(b)
}

func (svc *service) Update(ctx context.Context, id int, ub UpdateBatch) (Batch, error) {
	if err := svc.latency.Wait(ctx, core.OpUpdate); err != nil {
		return Batch{}, err
	}
	b, err := svc.repo.GetBatchByID(id)
	if err != nil {
		return Batch{}, err
	}
	return svc.repo.UpdateBatch(ub.Apply(b))
}

func (svc *service) UpdateEnrollment(ctx context.Context, id, count int) (Batch, error) {
	if err := svc.latency.Wait(ctx, core.OpUpdate); err != nil {
		return Batch{}, err
	}
	b, err := svc.repo.GetBatchByID(id)
	if err != nil {
		return Batch{}, err
	}
	b.EnrolledCount = count
	return svc.repo.UpdateBatch(b)
}

func (svc *service) SyncEnrollment(ctx context.Context, students []student.Student) error {
	if err := svc.latency.Wait(ctx, core.OpUpdate); err != nil {
		return err
	}
	batches, err := svc.repo.QueryAllBatches()
	if err != nil {
		return errors.Wrap(err, "querying batches")
	}
	return svc.repo.SetEnrolledCounts(CountEnrollment(batches, students))
}

func (svc *service) Delete(ctx context.Context, id int) error {
	if err := svc.latency.Wait(ctx, core.OpDelete); err != nil {
		return err
	}
	return svc.repo.DeleteBatch(id)
}

// CountEnrollment derives the number of students enrolled in each of batches.
// Every Batch gets an entry, 0 when nobody is enrolled.
func CountEnrollment(batches []Batch, students []student.Student) map[int]int {
	counts := make(map[int]int, len(batches))
	for _, b := range batches {
		counts[b.ID] = 0
	}
	for _, s := range students {
		seen := make(map[int]bool, len(s.BatchIDs))
		for _, id := range s.BatchIDs {
			if _, ok := counts[id]; ok && !seen[id] {
				counts[id]++
				seen[id] = true
			}
		}
	}
	return counts
}

// TotalFees sums the fees of the batches whose Id is in ids. Unknown Ids are ignored.
func TotalFees(batches []Batch, ids []int) float64 {
	wanted := make(map[int]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var total float64
	for _, b := range batches {
		if wanted[b.ID] {
			total += b.Fees
		}
	}
	return total
}

// Sort orders batches in place by the given orderings (JSON field names).
func Sort(batches []Batch, orderings []core.Ordering) {
	core.SortSlice(
		len(batches),
		func(i int, field string) (interface{}, bool) {
			b := batches[i]
			switch field {
			case "Id", "id":
				return b.ID, true
			case "name":
				return b.Name, true
			case "subject":
				return b.Subject, true
			case "room":
				return b.Room, true
			case "capacity":
				return b.Capacity, true
			case "enrolledCount":
				return b.EnrolledCount, true
			case "fees":
				return b.Fees, true
			case "startDate":
				return b.StartDate, true
			case "endDate":
				return b.EndDate, true
			}
			return nil, false
		},
		func(i, j int) { batches[i], batches[j] = batches[j], batches[i] },
		orderings,
	)
}
