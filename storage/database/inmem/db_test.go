package inmemdb

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/coachdesk/core/batch"
	"github.com/trezcool/coachdesk/core/payment"
	"github.com/trezcool/coachdesk/core/student"
	"github.com/trezcool/coachdesk/storage/fixtures"
)

func TestOpen_isolatesSeed(t *testing.T) {
	data := fixtures.Dataset{Students: []student.Student{{ID: 1, Name: "Aarav", BatchIDs: []int{1}}}}
	repo := NewStudentRepository(Open(data, nil))

	_, err := repo.CreateStudent(student.Student{Name: "Diya"})
	require.NoError(t, err)
	assert.Len(t, data.Students, 1)

	s, err := repo.GetStudentByID(1)
	require.NoError(t, err)
	s.BatchIDs[0] = 99
	again, err := repo.GetStudentByID(1)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, again.BatchIDs)
}

func TestStudentRepository(t *testing.T) {
	repo := NewStudentRepository(Open(fixtures.Dataset{}, nil))

	s, err := repo.CreateStudent(student.Student{ID: 42, Name: "Aarav"})
	require.NoError(t, err)
	assert.Equal(t, 1, s.ID, "ids are assigned by the store")

	s2, err := repo.CreateStudent(student.Student{Name: "Diya"})
	require.NoError(t, err)
	assert.Equal(t, 2, s2.ID)

	require.NoError(t, repo.DeleteStudent(1))
	s3, err := repo.CreateStudent(student.Student{Name: "Rohan"})
	require.NoError(t, err)
	assert.Equal(t, 3, s3.ID)

	s3.Name = "Rohan Gupta"
	_, err = repo.UpdateStudent(s3)
	require.NoError(t, err)
	got, err := repo.GetStudentByID(3)
	require.NoError(t, err)
	assert.Equal(t, "Rohan Gupta", got.Name)

	_, err = repo.UpdateStudent(student.Student{ID: 1})
	assert.Equal(t, student.ErrNotFound, err)
	assert.Equal(t, student.ErrNotFound, repo.DeleteStudent(1))
	_, err = repo.GetStudentByID(1)
	assert.Equal(t, student.ErrNotFound, err)

	all, err := repo.QueryAllStudents()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 2, all[0].ID)
	assert.Equal(t, 3, all[1].ID)
}

func TestBatchRepository_SetEnrolledCounts(t *testing.T) {
	repo := NewBatchRepository(Open(fixtures.Dataset{Batches: []batch.Batch{{ID: 1, EnrolledCount: 5}, {ID: 2, EnrolledCount: 1}}}, nil))

	require.NoError(t, repo.SetEnrolledCounts(map[int]int{1: 2, 3: 7}))

	all, err := repo.QueryAllBatches()
	require.NoError(t, err)
	assert.Equal(t, 2, all[0].EnrolledCount)
	assert.Equal(t, 1, all[1].EnrolledCount)
}

func TestPaymentRepository_CreatePayment(t *testing.T) {
	repo := NewPaymentRepository(Open(fixtures.Dataset{Payments: []payment.Payment{{ID: 4, ReceiptNo: "RCP004"}}}, nil))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.CreatePayment(payment.Payment{Amount: 100})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	all, err := repo.QueryAllPayments()
	require.NoError(t, err)
	require.Len(t, all, 11)
	ids := make(map[int]bool)
	receipts := make(map[string]bool)
	for _, p := range all {
		ids[p.ID] = true
		receipts[p.ReceiptNo] = true
	}
	assert.Len(t, ids, 11)
	assert.Len(t, receipts, 11)
	assert.True(t, receipts["RCP014"])

	p, err := repo.CreatePayment(payment.Payment{ReceiptNo: "MANUAL-1"})
	require.NoError(t, err)
	assert.Equal(t, "MANUAL-1", p.ReceiptNo)
}
