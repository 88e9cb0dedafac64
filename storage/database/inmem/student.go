package inmemdb

import (
	"github.com/trezcool/coachdesk/core/student"
)

type studentRepository struct {
	db *table[student.Student]
}

var _ student.Repository = (*studentRepository)(nil)

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db.student}
}

func (repo *studentRepository) CreateStudent(s student.Student) (student.Student, error) {
	return copyStudent(repo.db.insert(copyStudent(s), nil)), nil
}

func (repo *studentRepository) QueryAllStudents() ([]student.Student, error) {
	students := repo.db.all()
	for i := range students {
		students[i] = copyStudent(students[i])
	}
	return students, nil
}

func (repo *studentRepository) GetStudentByID(id int) (student.Student, error) {
	s, err := repo.db.get(id, student.ErrNotFound)
	return copyStudent(s), err
}

func (repo *studentRepository) UpdateStudent(s student.Student) (student.Student, error) {
	s, err := repo.db.replace(copyStudent(s), student.ErrNotFound)
	return copyStudent(s), err
}

func (repo *studentRepository) DeleteStudent(id int) error {
	return repo.db.remove(id, student.ErrNotFound)
}

// copyStudent detaches the slices of s from the stored row.
func copyStudent(s student.Student) student.Student {
	if s.BatchIDs != nil {
		s.BatchIDs = append([]int{}, s.BatchIDs...)
	}
	return s
}
