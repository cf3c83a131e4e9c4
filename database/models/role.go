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
	"fmt"
	"strings"
)

// Role identifies one of the four fixed duty slots on a daily schedule.
// Resolution and swap code operate only on this type, never on free-form
// role strings.
type Role uint8

const (
	RoleFullProfessional Role = iota
	RoleCsComplaint
	RoleCsFault
	RolePsProfessional
)

// Roles lists all duty roles in storage column order.
var Roles = []Role{
	RoleFullProfessional,
	RoleCsComplaint,
	RoleCsFault,
	RolePsProfessional,
}

type roleInfo struct {
	name   string
	column string
	label  string
}

var roleTable = map[Role]roleInfo{
	RoleFullProfessional: {
		name:   "full_professional",
		column: "employee_full_professional",
		label:  "full professional duty",
	},
	RoleCsComplaint: {
		name:   "cs_complaint",
		column: "employee_cs_complaint",
		label:  "CS complaint duty",
	},
	RoleCsFault: {
		name:   "cs_fault",
		column: "employee_cs_fault",
		label:  "CS fault duty",
	},
	RolePsProfessional: {
		name:   "ps_professional",
		column: "employee_ps_professional",
		label:  "PS professional duty",
	},
}

// String returns the stable machine-readable role identifier.
func (r Role) String() string {
	if info, ok := roleTable[r]; ok {
		return info.name
	}
	return fmt.Sprintf("unknown(%d)", uint8(r))
}

// Column returns the duty_schedule column that stores this role's employee.
func (r Role) Column() string {
	return roleTable[r].column
}

// Label returns the human-readable role name used in messages and logs.
func (r Role) Label() string {
	return roleTable[r].label
}

// Valid returns true if the role is one of the four known duty slots.
func (r Role) Valid() bool {
	_, ok := roleTable[r]
	return ok
}

// MarshalJSON renders the role as its machine-readable identifier.
func (r Role) MarshalJSON() ([]byte, error) {
	return []byte(`"` + r.String() + `"`), nil
}

// UnmarshalJSON parses a machine-readable role identifier.
func (r *Role) UnmarshalJSON(data []byte) error {
	name := strings.Trim(string(data), `"`)
	role, err := RoleFromName(name)
	if err != nil {
		return err
	}
	*r = role
	return nil
}

// RoleFromName maps a machine-readable role identifier back to its Role.
func RoleFromName(name string) (Role, error) {
	for role, info := range roleTable {
		if info.name == name {
			return role, nil
		}
	}
	return 0, fmt.Errorf("unknown role name: %s", name)
}
