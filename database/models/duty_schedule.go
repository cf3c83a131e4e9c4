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

package models

import (
	"time"
)

// DutySchedule holds the duty assignments for a single calendar day. Each of
// the four role columns holds a display name or NULL when the slot is
// unassigned. At most one record exists per date.
type DutySchedule struct {
	ID                       uint      `gorm:"primarykey"`
	DutyDate                 time.Time `gorm:"uniqueIndex;not null"`
	EmployeeFullProfessional *string   `gorm:"size:255"`
	EmployeeCsComplaint      *string   `gorm:"size:255"`
	EmployeeCsFault          *string   `gorm:"size:255"`
	EmployeePsProfessional   *string   `gorm:"size:255"`
}

func (DutySchedule) TableName() string {
	return "duty_schedule"
}

// Employee returns the name occupying the given role slot, or nil when the
// slot is empty.
func (s *DutySchedule) Employee(role Role) *string {
	switch role {
	case RoleFullProfessional:
		return s.EmployeeFullProfessional
	case RoleCsComplaint:
		return s.EmployeeCsComplaint
	case RoleCsFault:
		return s.EmployeeCsFault
	case RolePsProfessional:
		return s.EmployeePsProfessional
	}
	return nil
}

// SetEmployee assigns the given name (or nil) to the given role slot.
func (s *DutySchedule) SetEmployee(role Role, name *string) {
	switch role {
	case RoleFullProfessional:
		s.EmployeeFullProfessional = name
	case RoleCsComplaint:
		s.EmployeeCsComplaint = name
	case RoleCsFault:
		s.EmployeeCsFault = name
	case RolePsProfessional:
		s.EmployeePsProfessional = name
	}
}

// EmployeeRoles returns every role slot whose value equals the given name,
// using case-sensitive exact matching.
func (s *DutySchedule) EmployeeRoles(name string) []Role {
	var found []Role
	for _, role := range Roles {
		if v := s.Employee(role); v != nil && *v == name {
			found = append(found, role)
		}
	}
	return found
}

// NormalizeDate truncates a timestamp to its calendar date in UTC. All
// duty_date values are stored in this form so date equality works across
// timezones and drivers.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
