package inmemdb

import (
	"github.com/trezcool/coachdesk/core/teacher"
)

type teacherRepository struct {
	db *table[teacher.Teacher]
}

var _ teacher.Repository = (*teacherRepository)(nil)

func NewTeacherRepository(db *DB) teacher.Repository {
	return &teacherRepository{db: db.teacher}
}

func (repo *teacherRepository) CreateTeacher(t teacher.Teacher) (teacher.Teacher, error) {
	return copyTeacher(repo.db.insert(copyTeacher(t), nil)), nil
}

func (repo *teacherRepository) QueryAllTeachers() ([]teacher.Teacher, error) {
	teachers := repo.db.all()
	for i := range teachers {
		teachers[i] = copyTeacher(teachers[i])
	}
	return teachers, nil
}

func (repo *teacherRepository) GetTeacherByID(id int) (teacher.Teacher, error) {
	t, err := repo.db.get(id, teacher.ErrNotFound)
	return copyTeacher(t), err
}

func (repo *teacherRepository) UpdateTeacher(t teacher.Teacher) (teacher.Teacher, error) {
	t, err := repo.db.replace(copyTeacher(t), teacher.ErrNotFound)
	return copyTeacher(t), err
}

func (repo *teacherRepository) DeleteTeacher(id int) error {
	return repo.db.remove(id, teacher.ErrNotFound)
}

// copyTeacher detaches the slices and pointers of t from the stored row.
func copyTeacher(t teacher.Teacher) teacher.Teacher {
	if t.Subjects != nil {
		t.Subjects = append([]string{}, t.Subjects...)
	}
	if t.BatchIDs != nil {
		t.BatchIDs = append([]int{}, t.BatchIDs...)
	}
	if t.Salary != nil {
		salary := *t.Salary
		t.Salary = &salary
	}
	return t
}
