package inmemdb

import (
	"github.com/trezcool/coachdesk/core/batch"
)

type batchRepository struct {
	db *table[batch.Batch]
}

var _ batch.Repository = (*batchRepository)(nil)

func NewBatchRepository(db *DB) batch.Repository {
	return &batchRepository{db: db.batch}
}

func (repo *batchRepository) CreateBatch(b batch.Batch) (batch.Batch, error) {
	return copyBatch(repo.db.insert(copyBatch(b), nil)), nil
}

func (repo *batchRepository) QueryAllBatches() ([]batch.Batch, error) {
	batches := repo.db.all()
	for i := range batches {
		batches[i] = copyBatch(batches[i])
	}
	return batches, nil
}

func (repo *batchRepository) GetBatchByID(id int) (batch.Batch, error) {
	b, err := repo.db.get(id, batch.ErrNotFound)
	return copyBatch(b), err
}

func (repo *batchRepository) UpdateBatch(b batch.Batch) (batch.Batch, error) {
	b, err := repo.db.replace(copyBatch(b), batch.ErrNotFound)
	return copyBatch(b), err
}

func (repo *batchRepository) SetEnrolledCounts(counts map[int]int) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for i := range repo.db.rows {
		if n, ok := counts[repo.db.rows[i].ID]; ok {
			repo.db.rows[i].EnrolledCount = n
		}
	}
	return nil
}

func (repo *batchRepository) DeleteBatch(id int) error {
	return repo.db.remove(id, batch.ErrNotFound)
}

// copyBatch detaches the schedule days of b from the stored row.
func copyBatch(b batch.Batch) batch.Batch {
	if b.Schedule.Days != nil {
		b.Schedule.Days = append([]string{}, b.Schedule.Days...)
	}
	return b
}
