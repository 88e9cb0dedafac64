// Package fixtures bundles the seed data of the in-memory database.
package fixtures

import (
	"embed"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/trezcool/coachdesk/core/batch"
	"github.com/trezcool/coachdesk/core/payment"
	"github.com/trezcool/coachdesk/core/student"
	"github.com/trezcool/coachdesk/core/teacher"
)

//go:embed *.json
var files embed.FS

type Dataset struct {
	Students []student.Student
	Teachers []teacher.Teacher
	Batches  []batch.Batch
	Payments []payment.Payment
}

// Load decodes the bundled JSON fixtures.
func Load() (Dataset, error) {
	var data Dataset
	for name, dest := range map[string]interface{}{
		"students.json": &data.Students,
		"teachers.json": &data.Teachers,
		"batches.json":  &data.Batches,
		"payments.json": &data.Payments,
	} {
		raw, err := files.ReadFile(name)
		if err != nil {
			return Dataset{}, errors.Wrapf(err, "reading %s", name)
		}
		if err := json.Unmarshal(raw, dest); err != nil {
			return Dataset{}, errors.Wrapf(err, "decoding %s", name)
		}
	}
	return data, nil
}

// MustLoad is like Load but panics on error.
func MustLoad() Dataset {
	data, err := Load()
	if err != nil {
		panic(err)
	}
	return data
}
