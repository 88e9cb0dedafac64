package inmemdb

import (
	"github.com/trezcool/coachdesk/core/payment"
)

type paymentRepository struct {
	db *table[payment.Payment]
}

var _ payment.Repository = (*paymentRepository)(nil)

func NewPaymentRepository(db *DB) payment.Repository {
	return &paymentRepository{db: db.payment}
}

func (repo *paymentRepository) CreatePayment(p payment.Payment) (payment.Payment, error) {
	return repo.db.insert(p, func(existing []payment.Payment, p *payment.Payment) {
		if p.ReceiptNo == "" {
			p.ReceiptNo = payment.NextReceiptNo(existing)
		}
	}), nil
}

func (repo *paymentRepository) QueryAllPayments() ([]payment.Payment, error) {
	return repo.db.all(), nil
}

func (repo *paymentRepository) GetPaymentByID(id int) (payment.Payment, error) {
	return repo.db.get(id, payment.ErrNotFound)
}

func (repo *paymentRepository) UpdatePayment(p payment.Payment) (payment.Payment, error) {
	return repo.db.replace(p, payment.ErrNotFound)
}

func (repo *paymentRepository) DeletePayment(id int) error {
	return repo.db.remove(id, payment.ErrNotFound)
}
