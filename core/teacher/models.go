package teacher

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/coachdesk/core"
)

// Statuses
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Teacher struct {
	ID            int      `json:"Id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
	Qualification string   `json:"qualification"`
	Subjects      []string `json:"subjects"`
	Experience    int      `json:"experience"` // years
	Status        string   `json:"status"`
	JoinDate      string   `json:"joinDate"`
	Salary        *float64 `json:"salary,omitempty"`
	BatchIDs      []int    `json:"batchIds"`
}

// UnmarshalJSON folds a legacy singular "subject" into Subjects.
func (t *Teacher) UnmarshalJSON(data []byte) error {
	type teacher Teacher
	aux := struct {
		*teacher
		Subject string `json:"subject"`
	}{teacher: (*teacher)(t)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	t.Subjects = mergeSubject(t.Subjects, aux.Subject)
	return nil
}

func (t Teacher) IsActive() bool {
	return t.Status == StatusActive
}

// Teaches reports whether subject is one of the Teacher's subjects.
func (t Teacher) Teaches(subject string) bool {
	subject = core.CleanString(subject, true /* lower */)
	for _, s := range t.Subjects {
		if core.CleanString(s, true /* lower */) == subject {
			return true
		}
	}
	return false
}

// NewTeacher contains information needed to create a new Teacher.
type NewTeacher struct {
	Name          string   `json:"name" validate:"required"`
	Email         string   `json:"email" validate:"required,email"`
	Phone         string   `json:"phone" validate:"required,phone10"`
	Qualification string   `json:"qualification"`
	Subjects      []string `json:"subjects" validate:"required,min=1,dive,required"`
	Experience    int      `json:"experience" validate:"gte=0"`
	Status        string   `json:"status" validate:"omitempty,oneof=active inactive"`
	JoinDate      string   `json:"joinDate" validate:"omitempty,isodate"`
	Salary        *float64 `json:"salary" validate:"omitempty,gte=0"`
	BatchIDs      []int    `json:"batchIds"`
}

// UnmarshalJSON folds a legacy singular "subject" into Subjects.
func (nt *NewTeacher) UnmarshalJSON(data []byte) error {
	type newTeacher NewTeacher
	aux := struct {
		*newTeacher
		Subject string `json:"subject"`
	}{newTeacher: (*newTeacher)(nt)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	nt.Subjects = mergeSubject(nt.Subjects, aux.Subject)
	return nil
}

func (nt *NewTeacher) Validate(validate *validator.Validate) error {
	nt.Name = core.CleanString(nt.Name)
	nt.Email = core.CleanString(nt.Email, true /* lower */)
	nt.Phone = core.CleanString(nt.Phone)
	nt.Qualification = core.CleanString(nt.Qualification)
	nt.Subjects = cleanSubjects(nt.Subjects)
	nt.Status = core.CleanString(nt.Status, true /* lower */)
	nt.JoinDate = core.CleanString(nt.JoinDate)
	return validate.Struct(nt)
}

// UpdateTeacher defines what information may be provided to modify an existing Teacher.
// nil fields are left untouched. ID is accepted but never applied.
type UpdateTeacher struct {
	ID            *int     `json:"Id"`
	Name          *string  `json:"name" validate:"omitempty,min=1"`
	Email         *string  `json:"email" validate:"omitempty,email"`
	Phone         *string  `json:"phone" validate:"omitempty,phone10"`
	Qualification *string  `json:"qualification"`
	Subjects      []string `json:"subjects" validate:"omitempty,min=1,dive,required"`
	Experience    *int     `json:"experience" validate:"omitempty,gte=0"`
	Status        *string  `json:"status" validate:"omitempty,oneof=active inactive"`
	JoinDate      *string  `json:"joinDate" validate:"omitempty,isodate"`
	Salary        *float64 `json:"salary" validate:"omitempty,gte=0"`
	BatchIDs      []int    `json:"batchIds"`
}

// UnmarshalJSON folds a legacy singular "subject" into Subjects.
func (ut *UpdateTeacher) UnmarshalJSON(data []byte) error {
	type updateTeacher UpdateTeacher
	aux := struct {
		*updateTeacher
		Subject string `json:"subject"`
	}{updateTeacher: (*updateTeacher)(ut)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	ut.Subjects = mergeSubject(ut.Subjects, aux.Subject)
	return nil
}

func (ut *UpdateTeacher) Validate(validate *validator.Validate) error {
	for _, s := range []*string{ut.Name, ut.Phone, ut.Qualification, ut.JoinDate} {
		if s != nil {
			*s = core.CleanString(*s)
		}
	}
	for _, s := range []*string{ut.Email, ut.Status} {
		if s != nil {
			*s = core.CleanString(*s, true /* lower */)
		}
	}
	if ut.Subjects != nil {
		ut.Subjects = cleanSubjects(ut.Subjects)
	}
	return validate.Struct(ut)
}

// Apply copies every set field of the patch onto t. t.ID is preserved.
func (ut UpdateTeacher) Apply(t Teacher) Teacher {
	if ut.Name != nil {
		t.Name = *ut.Name
	}
	if ut.Email != nil {
		t.Email = *ut.Email
	}
	if ut.Phone != nil {
		t.Phone = *ut.Phone
	}
	if ut.Qualification != nil {
		t.Qualification = *ut.Qualification
	}
	if ut.Subjects != nil {
		t.Subjects = append([]string(nil), ut.Subjects...)
	}
	if ut.Experience != nil {
		t.Experience = *ut.Experience
	}
	if ut.Status != nil {
		t.Status = *ut.Status
	}
	if ut.JoinDate != nil {
		t.JoinDate = *ut.JoinDate
	}
	if ut.Salary != nil {
		salary := *ut.Salary
		t.Salary = &salary
	}
	if ut.BatchIDs != nil {
		t.BatchIDs = append([]int(nil), ut.BatchIDs...)
	}
	return t
}

func mergeSubject(subjects []string, subject string) []string {
	subject = core.CleanString(subject)
	if subject == "" {
		return subjects
	}
	for _, s := range subjects {
		if s == subject {
			return subjects
		}
	}
	return append([]string{subject}, subjects...)
}

// cleanSubjects trims subjects and drops duplicates, keeping the first occurrence.
func cleanSubjects(subjects []string) []string {
	seen := make(map[string]bool, len(subjects))
	cleaned := make([]string, 0, len(subjects))
	for _, s := range subjects {
		s = core.CleanString(s)
		key := core.CleanString(s, true /* lower */)
		if seen[key] {
			continue
		}
		seen[key] = true
		cleaned = append(cleaned, s)
	}
	return cleaned
}
