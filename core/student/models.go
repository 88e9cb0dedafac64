package student

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/coachdesk/core"
)

// Fee statuses
const (
	FeePaid    = "paid"
	FeePending = "pending"
	FeeOverdue = "overdue"
)

// Statuses
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Student struct {
	ID          int     `json:"Id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	ParentPhone string  `json:"parentPhone"`
	Address     string  `json:"address"`
	BatchIDs    []int   `json:"batchIds"`
	TotalFees   float64 `json:"totalFees"`
	PaidAmount  float64 `json:"paidAmount"`
	FeeStatus   string  `json:"feeStatus"`
	Status      string  `json:"status"`
	JoinDate    string  `json:"joinDate"`
}

// Due is what the Student still owes. It is negative when they overpaid.
func (s Student) Due() float64 {
	return s.TotalFees - s.PaidAmount
}

func (s Student) IsActive() bool {
	return s.Status == StatusActive
}

// HasPendingFees reports whether the Student's fee status flags an outstanding balance.
func (s Student) HasPendingFees() bool {
	return s.FeeStatus == FeePending || s.FeeStatus == FeeOverdue
}

func (s Student) InBatch(batchID int) bool {
	for _, id := range s.BatchIDs {
		if id == batchID {
			return true
		}
	}
	return false
}

// Matches does a case-insensitive match of query on Name or Email, and a raw match on Phone.
func (s Student) Matches(query string) bool {
	lq := strings.ToLower(query)
	return strings.Contains(strings.ToLower(s.Name), lq) ||
		strings.Contains(strings.ToLower(s.Email), lq) ||
		strings.Contains(s.Phone, query)
}

// NewStudent contains information needed to create a new Student.
// Zero values are replaced by defaults.
type NewStudent struct {
	Name        string   `json:"name" validate:"required"`
	Email       string   `json:"email" validate:"required,email"`
	Phone       string   `json:"phone" validate:"required,phone10"`
	ParentPhone string   `json:"parentPhone" validate:"omitempty,phone10"`
	Address     string   `json:"address"`
	BatchIDs    []int    `json:"batchIds"`
	TotalFees   float64  `json:"totalFees" validate:"gte=0"`
	PaidAmount  *float64 `json:"paidAmount" validate:"omitempty,gte=0"`
	FeeStatus   string   `json:"feeStatus" validate:"omitempty,oneof=paid pending overdue"`
	Status      string   `json:"status" validate:"omitempty,oneof=active inactive"`
	JoinDate    string   `json:"joinDate" validate:"omitempty,isodate"`
}

func (ns *NewStudent) Clean() {
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.Phone = core.CleanString(ns.Phone)
	ns.ParentPhone = core.CleanString(ns.ParentPhone)
	ns.Address = core.CleanString(ns.Address)
	ns.FeeStatus = core.CleanString(ns.FeeStatus, true /* lower */)
	ns.Status = core.CleanString(ns.Status, true /* lower */)
	ns.JoinDate = core.CleanString(ns.JoinDate)
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.Clean()
	return validate.Struct(ns)
}

// UpdateStudent defines what information may be provided to modify an existing Student.
// nil fields are left untouched. ID is accepted but never applied.
type UpdateStudent struct {
	ID          *int     `json:"Id"`
	Name        *string  `json:"name" validate:"omitempty,min=1"`
	Email       *string  `json:"email" validate:"omitempty,email"`
	Phone       *string  `json:"phone" validate:"omitempty,phone10"`
	ParentPhone *string  `json:"parentPhone" validate:"omitempty,phone10"`
	Address     *string  `json:"address"`
	BatchIDs    []int    `json:"batchIds"`
	TotalFees   *float64 `json:"totalFees" validate:"omitempty,gte=0"`
	PaidAmount  *float64 `json:"paidAmount" validate:"omitempty,gte=0"`
	FeeStatus   *string  `json:"feeStatus" validate:"omitempty,oneof=paid pending overdue"`
	Status      *string  `json:"status" validate:"omitempty,oneof=active inactive"`
	JoinDate    *string  `json:"joinDate" validate:"omitempty,isodate"`
}

func (us *UpdateStudent) Validate(validate *validator.Validate) error {
	cleanPtr(us.Name, false)
	cleanPtr(us.Email, true)
	cleanPtr(us.Phone, false)
	cleanPtr(us.ParentPhone, false)
	cleanPtr(us.Address, false)
	cleanPtr(us.FeeStatus, true)
	cleanPtr(us.Status, true)
	cleanPtr(us.JoinDate, false)
	return validate.Struct(us)
}

// Apply copies every set field of the patch onto s. s.ID is preserved.
func (us UpdateStudent) Apply(s Student) Student {
	if us.Name != nil {
		s.Name = *us.Name
	}
	if us.Email != nil {
		s.Email = *us.Email
	}
	if us.Phone != nil {
		s.Phone = *us.Phone
	}
	if us.ParentPhone != nil {
		s.ParentPhone = *us.ParentPhone
	}
	if us.Address != nil {
		s.Address = *us.Address
	}
	if us.BatchIDs != nil {
		s.BatchIDs = append([]int(nil), us.BatchIDs...)
	}
	if us.TotalFees != nil {
		s.TotalFees = *us.TotalFees
	}
	if us.PaidAmount != nil {
		s.PaidAmount = *us.PaidAmount
	}
	if us.FeeStatus != nil {
		s.FeeStatus = *us.FeeStatus
	}
	if us.Status != nil {
		s.Status = *us.Status
	}
	if us.JoinDate != nil {
		s.JoinDate = *us.JoinDate
	}
	return s
}

func cleanPtr(s *string, lower bool) {
	if s != nil {
		*s = core.CleanString(*s, lower)
	}
}
