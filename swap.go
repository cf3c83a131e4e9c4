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
	"fmt"
	"strings"
	"time"

	"github.com/shiftcal/rosterd/database"
	"github.com/shiftcal/rosterd/database/models"
)

// SwapIdentifier names one side of a duty swap: a date and the employee
// whose slot on that date should be exchanged.
type SwapIdentifier struct {
	DutyDate     string `json:"duty_date"`
	EmployeeName string `json:"employee_name"`
}

// SwapDetail describes one side of a completed swap.
type SwapDetail struct {
	DutyDate         time.Time   `json:"duty_date"`
	Role             models.Role `json:"role"`
	OriginalEmployee string      `json:"original_employee"`
	NewEmployee      string      `json:"new_employee"`
}

// SwapResult is the outcome of a successful duty swap.
type SwapResult struct {
	Swap1   SwapDetail `json:"swap1"`
	Swap2   SwapDetail `json:"swap2"`
	Message string     `json:"message"`
}

// SwapByName exchanges two duty assignments identified by (date, employee
// name) pairs. Each name must occupy exactly one role slot on its date; the
// two resolved slots then trade their current values. Both resolutions must
// succeed before anything is written, and the two updates plus the audit
// entry commit as one transaction.
func (s *Service) SwapByName(
	info1 SwapIdentifier,
	info2 SwapIdentifier,
) (result *SwapResult, err error) {
	defer func() { s.observe(s.metrics.swaps, err) }()

	name1 := strings.TrimSpace(info1.EmployeeName)
	name2 := strings.TrimSpace(info2.EmployeeName)
	if name1 == "" || name2 == "" {
		return nil, &ValidationError{
			Message: "employee name must not be empty",
		}
	}
	d1, err := parseSwapDate(info1.DutyDate)
	if err != nil {
		return nil, err
	}
	d2, err := parseSwapDate(info2.DutyDate)
	if err != nil {
		return nil, err
	}

	md := s.db.Metadata()
	txn := s.db.Transaction(true)
	err = txn.Do(func(txn *database.Txn) error {
		sched1, lookupErr := md.GetSchedule(d1, txn.Metadata())
		if lookupErr != nil {
			return &PersistenceError{Err: lookupErr}
		}
		var sched2 *models.DutySchedule
		if d2.Equal(d1) {
			sched2 = sched1
		} else {
			sched2, lookupErr = md.GetSchedule(d2, txn.Metadata())
			if lookupErr != nil {
				return &PersistenceError{Err: lookupErr}
			}
		}
		var missing []time.Time
		if sched1 == nil {
			missing = append(missing, d1)
		}
		if sched2 == nil && !d2.Equal(d1) {
			missing = append(missing, d2)
		}
		if len(missing) > 0 {
			return &RosterNotFoundError{Dates: missing}
		}

		// Resolve both sides before mutating anything
		role1, resolveErr := resolveEmployeeRole(sched1, d1, name1)
		if resolveErr != nil {
			return resolveErr
		}
		role2, resolveErr := resolveEmployeeRole(sched2, d2, name2)
		if resolveErr != nil {
			return resolveErr
		}

		// A successful resolution guarantees both slots are occupied by
		// the requested names; swap the slot values themselves.
		val1 := sched1.Employee(role1)
		val2 := sched2.Employee(role2)
		if updateErr := md.SetScheduleEmployee(
			d1, role1, val2, txn.Metadata(),
		); updateErr != nil {
			return &PersistenceError{Err: updateErr}
		}
		if updateErr := md.SetScheduleEmployee(
			d2, role2, val1, txn.Metadata(),
		); updateErr != nil {
			return &PersistenceError{Err: updateErr}
		}
		entry := &models.SwapLog{
			Date1:             d1,
			Role1:             role1,
			OriginalEmployee1: *val1,
			NewEmployee1:      *val2,
			Date2:             d2,
			Role2:             role2,
			OriginalEmployee2: *val2,
			NewEmployee2:      *val1,
		}
		if logErr := md.AddSwapLog(entry, txn.Metadata()); logErr != nil {
			return &PersistenceError{Err: logErr}
		}

		result = &SwapResult{
			Swap1: SwapDetail{
				DutyDate:         d1,
				Role:             role1,
				OriginalEmployee: *val1,
				NewEmployee:      *val2,
			},
			Swap2: SwapDetail{
				DutyDate:         d2,
				Role:             role2,
				OriginalEmployee: *val2,
				NewEmployee:      *val1,
			},
			Message: fmt.Sprintf(
				"swapped %q (%s on %s) with %q (%s on %s)",
				*val1,
				role1.Label(),
				d1.Format(time.DateOnly),
				*val2,
				role2.Label(),
				d2.Format(time.DateOnly),
			),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info(
		"duty swap completed",
		"date1", result.Swap1.DutyDate.Format(time.DateOnly),
		"role1", result.Swap1.Role.String(),
		"date2", result.Swap2.DutyDate.Format(time.DateOnly),
		"role2", result.Swap2.Role.String(),
	)
	return result, nil
}

// resolveEmployeeRole finds the unique role slot the named employee occupies
// on the given schedule. Zero matches and multiple matches are distinct
// failures.
func resolveEmployeeRole(
	sched *models.DutySchedule,
	date time.Time,
	name string,
) (models.Role, error) {
	roles := sched.EmployeeRoles(name)
	switch len(roles) {
	case 1:
		return roles[0], nil
	case 0:
		return 0, &NameNotFoundError{Date: date, Name: name}
	default:
		return 0, &AmbiguousRoleError{Date: date, Name: name, Roles: roles}
	}
}

func parseSwapDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(dateStr))
	if err != nil {
		return time.Time{}, &ValidationError{
			Message: fmt.Sprintf(
				"invalid date %q: expected YYYY-MM-DD",
				dateStr,
			),
		}
	}
	return models.NormalizeDate(t), nil
}
