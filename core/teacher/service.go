package teacher

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/coachdesk/core"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("teacher")
)

type (
	Repository interface {
		CreateTeacher(t Teacher) (Teacher, error)
		QueryAllTeachers() ([]Teacher, error)
		GetTeacherByID(id int) (Teacher, error)
		UpdateTeacher(t Teacher) (Teacher, error)
		DeleteTeacher(id int) error
	}

	Service interface {
		QueryAll(ctx context.Context, orderings ...core.Ordering) ([]Teacher, error)
		GetByID(ctx context.Context, id int) (Teacher, error)
		// GetBySubject does a case-insensitive match on Subjects.
		GetBySubject(ctx context.Context, subject string) ([]Teacher, error)
		Create(ctx context.Context, nt NewTeacher) (Teacher, error)
		Update(ctx context.Context, id int, ut UpdateTeacher) (Teacher, error)
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

func (svc *service) QueryAll(ctx context.Context, orderings ...core.Ordering) ([]Teacher, error) {
	if err := svc.latency.Wait(ctx, core.OpList); err != nil {
		return nil, err
	}
	teachers, err := svc.repo.QueryAllTeachers()
	if err != nil {
		return nil, errors.Wrap(err, "querying teachers")
	}
	Sort(teachers, orderings)
	return teachers, nil
}

func (svc *service) GetByID(ctx context.Context, id int) (Teacher, error) {
	if err := svc.latency.Wait(ctx, core.OpGet); err != nil {
		return Teacher{}, err
	}
	return svc.repo.GetTeacherByID(id)
}

func (svc *service) GetBySubject(ctx context.Context, subject string) ([]Teacher, error) {
	if err := svc.latency.Wait(ctx, core.OpLookup); err != nil {
		return nil, err
	}
	all, err := svc.repo.QueryAllTeachers()
	if err != nil {
		return nil, errors.Wrap(err, "querying teachers")
	}
	teachers := make([]Teacher, 0)
	for _, t := range all {
		if t.Teaches(subject) {
			teachers = append(teachers, t)
		}
	}
	return teachers, nil
}

func (svc *service) Create(ctx context.Context, nt NewTeacher) (Teacher, error) {
	if err := svc.latency.Wait(ctx, core.OpCreate); err != nil {
		return Teacher{}, err
	}
	t := Teacher{
		Name:          nt.Name,
		Email:         nt.Email,
		Phone:         nt.Phone,
		Qualification: nt.Qualification,
		Subjects:      append([]string{}, nt.Subjects...),
		Experience:    nt.Experience,
		Status:        nt.Status,
		JoinDate:      nt.JoinDate,
		Salary:        nt.Salary,
		BatchIDs:      append([]int{}, nt.BatchIDs...),
	}
	if t.Status == "" {
		t.Status = StatusActive
	}
	if t.JoinDate == "" {
		t.JoinDate = core.Today()
	}
	return svc.repo.CreateTeacher(t)
}

func (svc *service) Update(ctx context.Context, id int, ut UpdateTeacher) (Teacher, error) {
	if err := svc.latency.Wait(ctx, core.OpUpdate); err != nil {
		return Teacher{}, err
	}
	t, err := svc.repo.GetTeacherByID(id)
	if err != nil {
		return Teacher{}, err
	}
	return svc.repo.UpdateTeacher(ut.Apply(t))
}

func (svc *service) Delete(ctx context.Context, id int) error {
	if err := svc.latency.Wait(ctx, core.OpDelete); err != nil {
		return err
	}
	return svc.repo.DeleteTeacher(id)
}

// Sort orders teachers in place by the given orderings (JSON field names).
func Sort(teachers []Teacher, orderings []core.Ordering) {
	core.SortSlice(
		len(teachers),
		func(i int, field string) (interface{}, bool) {
			t := teachers[i]
			switch field {
			case "Id", "id":
				return t.ID, true
			case "name":
				return t.Name, true
			case "email":
				return t.Email, true
			case "experience":
				return t.Experience, true
			case "status":
				return t.Status, true
			case "joinDate":
				return t.JoinDate, true
			}
			return nil, false
		},
		func(i, j int) { teachers[i], teachers[j] = teachers[j], teachers[i] },
		orderings,
	)
}
