package student

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/coachdesk/core"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("student")
)

type (
	Repository interface {
		// CreateStudent assigns the next Id and stores s.
		CreateStudent(s Student) (Student, error)
		QueryAllStudents() ([]Student, error)
		GetStudentByID(id int) (Student, error)
		// UpdateStudent replaces the stored Student having the same Id.
		UpdateStudent(s Student) (Student, error)
		DeleteStudent(id int) error
	}

	Service interface {
		QueryAll(ctx context.Context, orderings ...core.Ordering) ([]Student, error)
		GetByID(ctx context.Context, id int) (Student, error)
		GetByBatch(ctx context.Context, batchID int) ([]Student, error)
		// Search does a case-insensitive match on Name and Email, and a raw match on Phone.
		Search(ctx context.Context, query string) ([]Student, error)
		Create(ctx context.Context, ns NewStudent) (Student, error)
		Update(ctx context.Context, id int, us UpdateStudent) (Student, error)
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

func (svc *service) QueryAll(ctx context.Context, orderings ...core.Ordering) ([]Student, error) {
	if err := svc.latency.Wait(ctx, core.OpList); err != nil {
		return nil, err
	}
	students, err := svc.repo.QueryAllStudents()
	if err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	Sort(students, orderings)
	return students, nil
}

func (svc *service) GetByID(ctx context.Context, id int) (Student, error) {
	if err := svc.latency.Wait(ctx, core.OpGet); err != nil {
		return Student{}, err
	}
	return svc.repo.GetStudentByID(id)
}

func (svc *service) GetByBatch(ctx context.Context, batchID int) ([]Student, error) {
	if err := svc.latency.Wait(ctx, core.OpLookup); err != nil {
		return nil, err
	}
	all, err := svc.repo.QueryAllStudents()
	if err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	students := make([]Student, 0)
	for _, s := range all {
		if s.InBatch(batchID) {
			students = append(students, s)
		}
	}
	return students, nil
}

func (svc *service) Search(ctx context.Context, query string) ([]Student, error) {
	if err := svc.latency.Wait(ctx, core.OpLookup); err != nil {
		return nil, err
	}
	all, err := svc.repo.QueryAllStudents()
	if err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	students := make([]Student, 0)
	for _, s := range all {
		if s.Matches(query) {
			students = append(students, s)
		}
	}
	return students, nil
}

func (svc *service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	if err := svc.latency.Wait(ctx, core.OpCreate); err != nil {
		return Student{}, err
	}
	s := Student{
		Name:        ns.Name,
		Email:       ns.Email,
		Phone:       ns.Phone,
		ParentPhone: ns.ParentPhone,
		Address:     ns.Address,
		BatchIDs:    append([]int{}, ns.BatchIDs...),
		TotalFees:   ns.TotalFees,
		FeeStatus:   ns.FeeStatus,
		Status:      ns.Status,
		JoinDate:    ns.JoinDate,
	}
	if ns.PaidAmount != nil {
		s.PaidAmount = *ns.PaidAmount
	}
	if s.FeeStatus == "" {
		s.FeeStatus = FeePending
	}
	if s.Status == "" {
		s.Status = StatusActive
	}
	if s.JoinDate == "" {
		s.JoinDate = core.Today()
	}
	return svc.repo.CreateStudent(s)
}

func (svc *service) Update(ctx context.Context, id int, us UpdateStudent) (Student, error) {
	if err := svc.latency.Wait(ctx, core.OpUpdate); err != nil {
		return Student{}, err
	}
	s, err := svc.repo.GetStudentByID(id)
	if err != nil {
		return Student{}, err
	}
	return svc.repo.UpdateStudent(us.Apply(s))
}

func (svc *service) Delete(ctx context.Context, id int) error {
	if err := svc.latency.Wait(ctx, core.OpDelete); err != nil {
		return err
	}
	return svc.repo.DeleteStudent(id)
}

// Sort orders students in place by the given orderings (JSON field names).
func Sort(students []Student, orderings []core.Ordering) {
	core.SortSlice(
		len(students),
		func(i int, field string) (interface{}, bool) {
			s := students[i]
			switch field {
			case "Id", "id":
				return s.ID, true
			case "name":
				return s.Name, true
			case "email":
				return s.Email, true
			case "totalFees":
				return s.TotalFees, true
			case "paidAmount":
				return s.PaidAmount, true
			case "due":
				return s.Due(), true
			case "feeStatus":
				return s.FeeStatus, true
			case "status":
				return s.Status, true
			case "joinDate":
				return s.JoinDate, true
			}
			return nil, false
		},
		func(i, j int) { students[i], students[j] = students[j], students[i] },
		orderings,
	)
}
