package inmemdb

import (
	"fmt"
	"sync"

	"github.com/trezcool/coachdesk/core"
	"github.com/trezcool/coachdesk/core/batch"
	"github.com/trezcool/coachdesk/core/payment"
	"github.com/trezcool/coachdesk/core/student"
	"github.com/trezcool/coachdesk/core/teacher"
	"github.com/trezcool/coachdesk/storage/fixtures"
)

type (
	DB struct {
		student *table[student.Student]
		teacher *table[teacher.Teacher]
		batch   *table[batch.Batch]
		payment *table[payment.Payment]
	}

	// table keeps rows in insertion order.
	table[T any] struct {
		sync.RWMutex
		rows []T
		id   func(*T) *int
	}
)

// Open returns a DB seeded with a copy of data.
func Open(data fixtures.Dataset, logger core.Logger) *DB {
	db := &DB{
		student: newTable(data.Students, func(s *student.Student) *int { return &s.ID }),
		teacher: newTable(data.Teachers, func(t *teacher.Teacher) *int { return &t.ID }),
		batch:   newTable(data.Batches, func(b *batch.Batch) *int { return &b.ID }),
		payment: newTable(data.Payments, func(p *payment.Payment) *int { return &p.ID }),
	}
	if logger != nil {
		logger.Info(fmt.Sprintf(
			"seeded %d students, %d teachers, %d batches, %d payments",
			len(data.Students), len(data.Teachers), len(data.Batches), len(data.Payments),
		))
	}
	return db
}

func newTable[T any](seed []T, id func(*T) *int) *table[T] {
	return &table[T]{
		rows: append(make([]T, 0, len(seed)), seed...),
		id:   id,
	}
}

// query copies all rows out. Callers must hold the lock.
func (t *table[T]) query() []T {
	return append(make([]T, 0, len(t.rows)), t.rows...)
}

// index returns the position of the row with the given id, -1 if absent. Callers must hold the lock.
func (t *table[T]) index(id int) int {
	for i := range t.rows {
		if *t.id(&t.rows[i]) == id {
			return i
		}
	}
	return -1
}

func (t *table[T]) all() []T {
	t.RLock()
	defer t.RUnlock()
	return t.query()
}

func (t *table[T]) get(id int, notFound error) (T, error) {
	t.RLock()
	defer t.RUnlock()
	if i := t.index(id); i >= 0 {
		return t.rows[i], nil
	}
	var zero T
	return zero, notFound
}

// insert assigns the next Id to row, lets prepare finalize it (under the lock) and appends it.
func (t *table[T]) insert(row T, prepare func(existing []T, row *T)) T {
	t.Lock()
	defer t.Unlock()

	ids := make([]int, 0, len(t.rows))
	for i := range t.rows {
		ids = append(ids, *t.id(&t.rows[i]))
	}
	*t.id(&row) = core.NextID(ids...)
	if prepare != nil {
		prepare(t.rows, &row)
	}
	t.rows = append(t.rows, row)
	return row
}

func (t *table[T]) replace(row T, notFound error) (T, error) {
	t.Lock()
	defer t.Unlock()
	i := t.index(*t.id(&row))
	if i < 0 {
		var zero T
		return zero, notFound
	}
	t.rows[i] = row
	return row, nil
}

func (t *table[T]) remove(id int, notFound error) error {
	t.Lock()
	defer t.Unlock()
	i := t.index(id)
	if i < 0 {
		return notFound
	}
	t.rows = append(t.rows[:i], t.rows[i+1:]...)
	return nil
}
