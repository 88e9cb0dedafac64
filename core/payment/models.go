package payment

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/coachdesk/core"
)

// Modes
const (
	ModeCash   = "cash"
	ModeOnline = "online"
	ModeCheque = "cheque"
	ModeCard   = "card"
)

type Payment struct {
	ID        int     `json:"Id"`
	StudentID int     `json:"studentId"`
	Amount    float64 `json:"amount"`
	Mode      string  `json:"mode"`
	Date      string  `json:"date"`
	ReceiptNo string  `json:"receiptNo"`
	Remarks   string  `json:"remarks,omitempty"`
}

// NewPayment contains information needed to record a new Payment.
// The receipt number is always generated.
type NewPayment struct {
	StudentID int     `json:"studentId" validate:"required,gt=0"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	Mode      string  `json:"mode" validate:"required,oneof=cash online cheque card"`
	Date      string  `json:"date" validate:"omitempty,isodate"`
	Remarks   string  `json:"remarks"`
}

func (np *NewPayment) Validate(validate *validator.Validate) error {
	np.Mode = core.CleanString(np.Mode, true /* lower */)
	np.Date = core.CleanString(np.Date)
	np.Remarks = core.CleanString(np.Remarks)
	return validate.Struct(np)
}

// UpdatePayment defines what information may be provided to modify an existing Payment.
// nil fields are left untouched. ID is accepted but never applied.
type UpdatePayment struct {
	ID        *int     `json:"Id"`
	StudentID *int     `json:"studentId" validate:"omitempty,gt=0"`
	Amount    *float64 `json:"amount" validate:"omitempty,gt=0"`
	Mode      *string  `json:"mode" validate:"omitempty,oneof=cash online cheque card"`
	Date      *string  `json:"date" validate:"omitempty,isodate"`
	ReceiptNo *string  `json:"receiptNo" validate:"omitempty,min=1"`
	Remarks   *string  `json:"remarks"`
}

func (up *UpdatePayment) Validate(validate *validator.Validate) error {
	if up.Mode != nil {
		*up.Mode = core.CleanString(*up.Mode, true /* lower */)
	}
	for _, s := range []*string{up.Date, up.ReceiptNo, up.Remarks} {
		if s != nil {
			*s = core.CleanString(*s)
		}
	}
	return validate.Struct(up)
}

// Apply copies every set field of the patch onto p. p.ID is preserved.
func (up UpdatePayment) Apply(p Payment) Payment {
	if up.StudentID != nil {
		p.StudentID = *up.StudentID
	}
	if up.Amount != nil {
		p.Amount = *up.Amount
	}
	if up.Mode != nil {
		p.Mode = *up.Mode
	}
	if up.Date != nil {
		p.Date = *up.Date
	}
	if up.ReceiptNo != nil {
		p.ReceiptNo = *up.ReceiptNo
	}
	if up.Remarks != nil {
		p.Remarks = *up.Remarks
	}
	return p
}

// Summary is an overview of every recorded Payment.
type Summary struct {
	TotalCollected float64   `json:"totalCollected"`
	TotalPayments  int       `json:"totalPayments"`
	RecentPayments []Payment `json:"recentPayments"`
}
