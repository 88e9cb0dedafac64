package reportsvc

import (
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/coachdesk/core/dashboard"
	"github.com/trezcool/coachdesk/core/payment"
	"github.com/trezcool/coachdesk/core/student"
)

const (
	StudentsSheet = "Students"
	PaymentsSheet = "Payments"
)

var (
	studentsHeader = []interface{}{"Id", "Name", "Email", "Phone", "Total fees", "Paid", "Due", "Fee status", "Status"}
	paymentsHeader = []interface{}{"Receipt", "Date", "Student", "Amount", "Mode", "Remarks"}
)

// WriteFees writes the fee report spreadsheet to w.
// The Students sheet lists dues per student; the Payments sheet lists every payment, newest first.
func WriteFees(w io.Writer, students []student.Student, payments []payment.Payment) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "closing fee report")
		}
	}()

	if err = f.SetSheetName(f.GetSheetName(0), StudentsSheet); err != nil {
		return errors.Wrap(err, "naming students sheet")
	}
	if _, err = f.NewSheet(PaymentsSheet); err != nil {
		return errors.Wrap(err, "creating payments sheet")
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(err, "creating header style")
	}

	rows := make([][]interface{}, 0, len(students)+1)
	for _, s := range students {
		rows = append(rows, []interface{}{s.ID, s.Name, s.Email, s.Phone, s.TotalFees, s.PaidAmount, s.Due(), s.FeeStatus, s.Status})
	}
	rows = append(rows, []interface{}{"", "Total", "", "", nil, nil, dashboard.PendingFees(students)})
	if err = writeSheet(f, StudentsSheet, studentsHeader, rows, bold); err != nil {
		return err
	}

	names := make(map[int]string, len(students))
	for _, s := range students {
		names[s.ID] = s.Name
	}
	rows = make([][]interface{}, 0, len(payments)+1)
	for _, p := range payment.Recent(payments, len(payments)) {
		name, ok := names[p.StudentID]
		if !ok {
			name = dashboard.UnknownStudent
		}
		rows = append(rows, []interface{}{p.ReceiptNo, p.Date, name, p.Amount, p.Mode, p.Remarks})
	}
	rows = append(rows, []interface{}{"", "", "Total", payment.Total(payments)})
	if err = writeSheet(f, PaymentsSheet, paymentsHeader, rows, bold); err != nil {
		return err
	}

	if err = f.Write(w); err != nil {
		return errors.Wrap(err, "writing fee report")
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, header []interface{}, rows [][]interface{}, headerStyle int) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return errors.Wrapf(err, "writing %s header", sheet)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return errors.Wrap(err, "computing header range")
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return errors.Wrapf(err, "styling %s header", sheet)
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrap(err, "computing row cell")
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return errors.Wrapf(err, "writing %s row %d", sheet, i+2)
		}
	}
	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return errors.Wrap(err, "computing last column")
	}
	return errors.Wrapf(f.SetColWidth(sheet, "A", lastCol, 16), "sizing %s columns", sheet)
}
