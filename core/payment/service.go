package payment

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/pkg/errors"

	"github.com/trezcool/coachdesk/core"
	"github.com/trezcool/coachdesk/core/student"
)

// RecentCount is the number of payments listed as recent.
const RecentCount = 5

var (
	// errors
	ErrNotFound = core.NewNotFoundError("payment")
)

type (
	Repository interface {
		// CreatePayment assigns the next Id, and the next receipt number when p has none.
		CreatePayment(p Payment) (Payment, error)
		QueryAllPayments() ([]Payment, error)
		GetPaymentByID(id int) (Payment, error)
		UpdatePayment(p Payment) (Payment, error)
		DeletePayment(id int) error
	}

	// StudentFinder looks up the payer of a Payment.
	StudentFinder interface {
		GetStudentByID(id int) (student.Student, error)
	}

	Service interface {
		QueryAll(ctx context.Context, orderings ...core.Ordering) ([]Payment, error)
		GetByID(ctx context.Context, id int) (Payment, error)
		GetByStudent(ctx context.Context, studentID int) ([]Payment, error)
		Summary(ctx context.Context) (Summary, error)
		// Create records a Payment and emails its receipt to the student.
		Create(ctx context.Context, np NewPayment) (Payment, error)
		Update(ctx context.Context, id int, up UpdatePayment) (Payment, error)
		Delete(ctx context.Context, id int) error
	}

	service struct {
		repo     Repository
		students StudentFinder
		mailSvc  core.EmailService
		latency  core.Latency
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, students StudentFinder, mailSvc core.EmailService, latency core.Latency) Service {
	return &service{
		repo:     repo,
		students: students,
		mailSvc:  mailSvc,
		latency:  latency,
	}
}

func (svc *service) QueryAll(ctx context.Context, orderings ...core.Ordering) ([]Payment, error) {
	if err := svc.latency.Wait(ctx, core.OpList); err != nil {
		return nil, err
	}
	payments, err := svc.repo.QueryAllPayments()
	if err != nil {
		return nil, errors.Wrap(err, "querying payments")
	}
	Sort(payments, orderings)
	return payments, nil
}

func (svc *service) GetByID(ctx context.Context, id int) (Payment, error) {
	if err := svc.latency.Wait(ctx, core.OpGet); err != nil {
		return Payment{}, err
	}
	return svc.repo.GetPaymentByID(id)
}

func (svc *service) GetByStudent(ctx context.Context, studentID int) ([]Payment, error) {
	if err := svc.latency.Wait(ctx, core.OpLookup); err != nil {
		return nil, err
	}
	all, err := svc.repo.QueryAllPayments()
	if err != nil {
		return nil, errors.Wrap(err, "querying payments")
	}
	payments := make([]Payment, 0)
	for _, p := range all {
		if p.StudentID == studentID {
			payments = append(payments, p)
		}
	}
	return payments, nil
}

func (svc *service) Summary(ctx context.Context) (Summary, error) {
	if err := svc.latency.Wait(ctx, core.OpLookup); err != nil {
		return Summary{}, err
	}
	payments, err := svc.repo.QueryAllPayments()
	if err != nil {
		return Summary{}, errors.Wrap(err, "querying payments")
	}
	return Summary{
		TotalCollected: Total(payments),
		TotalPayments:  len(payments),
		RecentPayments: Recent(payments, RecentCount),
	}, nil
}

func (svc *service) Create(ctx context.Context, np NewPayment) (Payment, error) {
	if err := svc.latency.Wait(ctx, core.OpCreate); err != nil {
		return Payment{}, err
	}
	p := Payment{
		StudentID: np.StudentID,
		Amount:    np.Amount,
		Mode:      np.Mode,
		Date:      np.Date,
		Remarks:   np.Remarks,
	}
	if p.Date == "" {
		p.Date = core.Today()
	}
	p, err := svc.repo.CreatePayment(p)
	if err != nil {
		return Payment{}, errors.Wrap(err, "creating payment")
	}
	svc.sendReceipt(p)
	return p, nil
}

func (svc *service) Update(ctx context.Context, id int, up UpdatePayment) (Payment, error) {
	if err := svc.latency.Wait(ctx, core.OpUpdate); err != nil {
		return Payment{}, err
	}
	p, err := svc.repo.GetPaymentByID(id)
	if err != nil {
		return Payment{}, err
	}
	return svc.repo.UpdatePayment(up.Apply(p))
}

func (svc *service) Delete(ctx context.Context, id int) error {
	if err := svc.latency.Wait(ctx, core.OpDelete); err != nil {
		return err
	}
	return svc.repo.DeletePayment(id)
}

// ReceiptData is the data rendered by the `payment_receipt` email templates.
type ReceiptData struct {
	StudentName string
	Amount      float64
	Mode        string
	Date        string
	ReceiptNo   string
	TotalFees   float64
	PaidAmount  float64
	Due         float64
}

// sendReceipt emails the receipt of p to its student. Unknown students and students without email are skipped.
func (svc *service) sendReceipt(p Payment) {
	if svc.mailSvc == nil || svc.students == nil {
		return
	}
	s, err := svc.students.GetStudentByID(p.StudentID)
	if err != nil || s.Email == "" {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: s.Name, Address: s.Email}},
		Subject:      fmt.Sprintf("Payment receipt %s", p.ReceiptNo),
		TemplateName: "payment_receipt",
		TemplateData: ReceiptData{
			StudentName: s.Name,
			Amount:      p.Amount,
			Mode:        p.Mode,
			Date:        p.Date,
			ReceiptNo:   p.ReceiptNo,
			TotalFees:   s.TotalFees,
			PaidAmount:  s.PaidAmount,
			Due:         s.Due(),
		},
	})
}

// Sort orders payments in place by the given orderings (JSON field names).
func Sort(payments []Payment, orderings []core.Ordering) {
	core.SortSlice(
		len(payments),
		func(i int, field string) (interface{}, bool) {
			p := payments[i]
			switch field {
			case "Id", "id":
				return p.ID, true
			case "studentId":
				return p.StudentID, true
			case "amount":
				return p.Amount, true
			case "mode":
				return p.Mode, true
			case "date":
				return p.Date, true
			case "receiptNo":
				return p.ReceiptNo, true
			}
			return nil, false
		},
		func(i, j int) { payments[i], payments[j] = payments[j], payments[i] },
		orderings,
	)
}
