// Copyright 2025 Shiftcal Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rosterd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shiftcal/rosterd/database"
	"github.com/shiftcal/rosterd/database/models"
	"github.com/xuri/excelize/v2"
)

// ImportReport describes the outcome of a full roster replace.
type ImportReport struct {
	DeletedSchedules int64  `json:"deleted_schedules"`
	DeletedSwapLogs  int64  `json:"deleted_swap_logs"`
	Inserted         int64  `json:"inserted"`
	Message          string `json:"message"`
}

// rosterColumnCount is the minimum number of columns a roster sheet must
// have: the duty date followed by the four role slots in fixed order.
const rosterColumnCount = 5

// dutyDateLayouts are the textual date formats accepted in the date column.
var dutyDateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006/1/2",
	"2006-1-2",
	"01-02-06",
	"1/2/06",
	"01/02/06",
	"2006年01月02日",
	"2006年1月2日",
}

// ImportFromPath replaces the entire roster from an Excel workbook on disk.
// The path is normalized first (quotes stripped, backslashes converted, user
// home expanded) so operator-pasted Windows paths work as-is.
func (s *Service) ImportFromPath(path string) (report *ImportReport, err error) {
	defer func() { s.observe(s.metrics.imports, err) }()

	cleaned := NormalizePath(path)
	if _, statErr := os.Stat(cleaned); statErr != nil {
		return nil, &ValidationError{
			Message: fmt.Sprintf(
				"roster file does not exist: resolved path %q (original input %q)",
				cleaned,
				path,
			),
		}
	}
	f, openErr := excelize.OpenFile(cleaned)
	if openErr != nil {
		return nil, &ValidationError{
			Message: fmt.Sprintf(
				"failed to open roster file %q: %s",
				cleaned,
				openErr,
			),
		}
	}
	defer func() { _ = f.Close() }()
	return s.importWorkbook(f)
}

// ImportFromBytes replaces the entire roster from an in-memory Excel
// workbook. Transport-level encoding (base64, multipart) is the caller's
// concern; this accepts raw workbook bytes.
func (s *Service) ImportFromBytes(data []byte) (report *ImportReport, err error) {
	defer func() { s.observe(s.metrics.imports, err) }()

	f, openErr := excelize.OpenReader(bytes.NewReader(data))
	if openErr != nil {
		return nil, &ValidationError{
			Message: fmt.Sprintf(
				"failed to read roster workbook: %s",
				openErr,
			),
		}
	}
	defer func() { _ = f.Close() }()
	return s.importWorkbook(f)
}

func (s *Service) importWorkbook(f *excelize.File) (*ImportReport, error) {
	schedules, err := parseRosterSheet(f)
	if err != nil {
		return nil, err
	}

	var deletedSchedules, deletedLogs int64
	txn := s.db.Transaction(true)
	err = txn.Do(func(txn *database.Txn) error {
		var replaceErr error
		deletedSchedules, deletedLogs, replaceErr = s.db.Metadata().
			ReplaceSchedules(schedules, txn.Metadata())
		if replaceErr != nil {
			return &PersistenceError{Err: replaceErr}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	report := &ImportReport{
		DeletedSchedules: deletedSchedules,
		DeletedSwapLogs:  deletedLogs,
		Inserted:         int64(len(schedules)),
		Message: fmt.Sprintf(
			"replaced roster: removed %d old duty schedules and %d old swap logs, imported %d new duty schedules",
			deletedSchedules,
			deletedLogs,
			len(schedules),
		),
	}
	s.logger.Info(
		"roster replaced",
		"deleted_schedules", deletedSchedules,
		"deleted_swap_logs", deletedLogs,
		"inserted", report.Inserted,
	)
	return report, nil
}

// parseRosterSheet reads the first sheet of the workbook into duty schedule
// rows. Columns are positional: date, then the four roles in fixed order.
// Header content is ignored. Rows with an empty date cell are dropped; any
// non-empty date cell that cannot be parsed fails the whole import.
func parseRosterSheet(f *excelize.File) ([]models.DutySchedule, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &ValidationError{
			Message: "roster workbook contains no sheets",
		}
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &ValidationError{
			Message: fmt.Sprintf(
				"failed to read sheet %q: %s",
				sheets[0],
				err,
			),
		}
	}
	if len(rows) == 0 || len(rows[0]) < rosterColumnCount {
		detected := 0
		if len(rows) > 0 {
			detected = len(rows[0])
		}
		return nil, &ValidationError{
			Message: fmt.Sprintf(
				"the roster sheet must contain at least %d columns (date plus four duty roles), detected %d",
				rosterColumnCount,
				detected,
			),
		}
	}

	schedules := make([]models.DutySchedule, 0, len(rows)-1)
	for i, row := range rows[1:] {
		dateCell := strings.TrimSpace(cellAt(row, 0))
		if dateCell == "" {
			// Rows without a date are padding, not an error
			continue
		}
		dutyDate, err := parseDutyDate(dateCell)
		if err != nil {
			return nil, &ValidationError{
				Message: fmt.Sprintf(
					"row %d: unparseable duty date %q",
					i+2,
					dateCell,
				),
			}
		}
		schedules = append(schedules, models.DutySchedule{
			DutyDate:                 dutyDate,
			EmployeeFullProfessional: employeeAt(row, 1),
			EmployeeCsComplaint:      employeeAt(row, 2),
			EmployeeCsFault:          employeeAt(row, 3),
			EmployeePsProfessional:   employeeAt(row, 4),
		})
	}
	return schedules, nil
}

// cellAt returns the cell value at the given column, tolerating short rows.
// Excel omits trailing empty cells from row data.
func cellAt(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return row[col]
}

// employeeAt returns the trimmed employee name at the given column, or nil
// for an empty slot.
func employeeAt(row []string, col int) *string {
	name := strings.TrimSpace(cellAt(row, col))
	if name == "" {
		return nil
	}
	return &name
}

// parseDutyDate coerces a date cell to a calendar date. Cells may hold a
// textual date in one of the accepted layouts or a raw Excel serial number.
func parseDutyDate(cell string) (time.Time, error) {
	for _, layout := range dutyDateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return models.NormalizeDate(t), nil
		}
	}
	if serial, err := strconv.ParseFloat(cell, 64); err == nil {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return models.NormalizeDate(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date: %q", cell)
}

// NormalizePath cleans an operator-supplied file path: surrounding
// whitespace and quotes are removed, backslashes become forward slashes,
// and a leading ~ expands to the user's home directory.
func NormalizePath(path string) string {
	cleaned := strings.TrimSpace(path)
	if len(cleaned) >= 2 {
		if (strings.HasPrefix(cleaned, `"`) && strings.HasSuffix(cleaned, `"`)) ||
			(strings.HasPrefix(cleaned, `'`) && strings.HasSuffix(cleaned, `'`)) {
			cleaned = cleaned[1 : len(cleaned)-1]
		}
	}
	cleaned = strings.ReplaceAll(cleaned, `\`, "/")
	if cleaned == "~" || strings.HasPrefix(cleaned, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			cleaned = filepath.Join(home, strings.TrimPrefix(cleaned[1:], "/"))
		}
	}
	return filepath.Clean(cleaned)
}
