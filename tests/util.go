package testutil

import (
	"strings"
	"sync"
	"testing"

	"github.com/trezcool/coachdesk/core"
	"github.com/trezcool/coachdesk/core/batch"
	"github.com/trezcool/coachdesk/core/payment"
	"github.com/trezcool/coachdesk/core/student"
	"github.com/trezcool/coachdesk/core/teacher"
	"github.com/trezcool/coachdesk/storage/database/inmem"
	"github.com/trezcool/coachdesk/storage/fixtures"
)

// Repos groups the repositories of one in-memory database.
type Repos struct {
	DB       *inmemdb.DB
	Students student.Repository
	Teachers teacher.Repository
	Batches  batch.Repository
	Payments payment.Repository
}

// PrepareDB opens an in-memory database seeded with the bundled fixtures.
func PrepareDB(t *testing.T) Repos {
	data, err := fixtures.Load()
	if err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	return open(data)
}

// EmptyDB opens an in-memory database with no rows.
func EmptyDB() Repos {
	return open(fixtures.Dataset{})
}

func open(data fixtures.Dataset) Repos {
	db := inmemdb.Open(data, nil)
	return Repos{
		DB:       db,
		Students: inmemdb.NewStudentRepository(db),
		Teachers: inmemdb.NewTeacherRepository(db),
		Batches:  inmemdb.NewBatchRepository(db),
		Payments: inmemdb.NewPaymentRepository(db),
	}
}

func CreateStudent(t *testing.T, repo student.Repository, name string, totalFees, paidAmount float64, feeStatus string, batchIDs ...int) student.Student {
	s, err := repo.CreateStudent(student.Student{
		Name:       name,
		Email:      strings.ReplaceAll(core.CleanString(name, true /* lower */), " ", ".") + "@test.in",
		Phone:      "9000000000",
		BatchIDs:   batchIDs,
		TotalFees:  totalFees,
		PaidAmount: paidAmount,
		FeeStatus:  feeStatus,
		Status:     student.StatusActive,
		JoinDate:   "2024-01-01",
	})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return s
}

func CreateBatch(t *testing.T, repo batch.Repository, name, room string, teacherID int, slot string, days ...string) batch.Batch {
	b, err := repo.CreateBatch(batch.Batch{
		Name:      name,
		Subject:   "Mathematics",
		TeacherID: teacherID,
		Schedule:  batch.Schedule{Days: days, Time: "09:00", TimeSlot: slot},
		Room:      room,
		Capacity:  20,
		Fees:      1000,
		StartDate: "2024-01-01",
		EndDate:   "2024-12-31",
	})
	if err != nil {
		t.Fatalf("CreateBatch() failed: %v", err)
	}
	return b
}

func CreatePayment(t *testing.T, repo payment.Repository, studentID int, amount float64, date string) payment.Payment {
	p, err := repo.CreatePayment(payment.Payment{
		StudentID: studentID,
		Amount:    amount,
		Mode:      payment.ModeCash,
		Date:      date,
	})
	if err != nil {
		t.Fatalf("CreatePayment() failed: %v", err)
	}
	return p
}

// MailRecorder is a core.EmailService keeping sent messages in memory.
type MailRecorder struct {
	mu       sync.Mutex
	Messages []core.EmailMessage
}

var _ core.EmailService = (*MailRecorder)(nil)

func (r *MailRecorder) SendMessages(messages ...*core.EmailMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, msg := range messages {
		r.Messages = append(r.Messages, *msg)
	}
}

func (r *MailRecorder) Sent() []core.EmailMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]core.EmailMessage(nil), r.Messages...)
}

// Logger is a core.Logger keeping logged messages in memory.
type Logger struct {
	mu   sync.Mutex
	Msgs []string
}

var _ core.Logger = (*Logger)(nil)

func (l *Logger) log(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Msgs = append(l.Msgs, msg)
}

func (l *Logger) Debug(msg string, _ ...interface{}) { l.log(msg) }
func (l *Logger) Info(msg string, _ ...interface{})  { l.log(msg) }
func (l *Logger) Warn(msg string, _ ...interface{})  { l.log(msg) }
func (l *Logger) Error(msg string, _ ...interface{}) { l.log(msg) }
func (l *Logger) Fatal(msg string, _ ...interface{}) { l.log(msg) }

func (l *Logger) Messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.Msgs...)
}
