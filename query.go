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

// todaySentinel is the literal accepted in place of an explicit date.
const todaySentinel = "today"

// DutyAssignments holds the four role slots of one day's schedule. A nil
// slot means nobody is assigned to that role.
type DutyAssignments struct {
	FullProfessional *string `json:"full_professional"`
	CsComplaint      *string `json:"cs_complaint"`
	CsFault          *string `json:"cs_fault"`
	PsProfessional   *string `json:"ps_professional"`
}

// DutyResult is the outcome of a duty query. A date with no schedule is a
// not-found result, not an error; Found distinguishes the two.
type DutyResult struct {
	Found    bool             `json:"found"`
	DutyDate time.Time        `json:"duty_date"`
	Schedule *DutyAssignments `json:"schedule,omitempty"`
	Message  string           `json:"message"`
	Warnings []string         `json:"warnings,omitempty"`
}

// GetDuty looks up the duty schedule for a date string, which is either an
// explicit YYYY-MM-DD date or the literal "today". A freshness advisory is
// attached only when a "today" query lands on the last scheduled day.
func (s *Service) GetDuty(dateStr string) (result *DutyResult, err error) {
	defer func() { s.observe(s.metrics.queries, err) }()

	md := s.db.Metadata()
	txn := s.db.Transaction(false)
	err = txn.Do(func(txn *database.Txn) error {
		hasSchedules, storeErr := md.HasSchedules(txn.Metadata())
		if storeErr != nil {
			return &PersistenceError{Err: storeErr}
		}
		if !hasSchedules {
			return ErrEmptyStore
		}

		isToday := strings.EqualFold(strings.TrimSpace(dateStr), todaySentinel)
		var target time.Time
		if isToday {
			// Resolved at call time, never memoized
			target = models.NormalizeDate(s.now())
		} else {
			parsed, parseErr := time.Parse(
				time.DateOnly,
				strings.TrimSpace(dateStr),
			)
			if parseErr != nil {
				return &ValidationError{
					Message: fmt.Sprintf(
						"invalid date %q: expected YYYY-MM-DD or %q",
						dateStr,
						todaySentinel,
					),
				}
			}
			target = models.NormalizeDate(parsed)
		}

		sched, storeErr := md.GetSchedule(target, txn.Metadata())
		if storeErr != nil {
			return &PersistenceError{Err: storeErr}
		}
		if sched == nil {
			result = &DutyResult{
				Found:    false,
				DutyDate: target,
				Message: fmt.Sprintf(
					"no duty schedule found for %s",
					target.Format(time.DateOnly),
				),
			}
			return nil
		}

		result = &DutyResult{
			Found:    true,
			DutyDate: target,
			Schedule: &DutyAssignments{
				FullProfessional: sched.EmployeeFullProfessional,
				CsComplaint:      sched.EmployeeCsComplaint,
				CsFault:          sched.EmployeeCsFault,
				PsProfessional:   sched.EmployeePsProfessional,
			},
			Message: fmt.Sprintf(
				"duty schedule found for %s",
				target.Format(time.DateOnly),
			),
		}
		if isToday {
			latest, storeErr := md.GetLatestDutyDate(txn.Metadata())
			if storeErr != nil {
				return &PersistenceError{Err: storeErr}
			}
			if latest != nil && latest.Equal(target) {
				result.Warnings = append(
					result.Warnings,
					"today is the last day of the imported roster; import a new roster soon",
				)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
