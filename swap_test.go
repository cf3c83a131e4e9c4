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

package rosterd_test

import (
	"errors"
	"testing"

	"github.com/shiftcal/rosterd"
	"github.com/shiftcal/rosterd/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwapByName(t *testing.T) {
	svc := newTestService(t)
	seedRoster(t, svc)

	// 张三 holds full professional on 09-01, 周八 holds CS complaint on 09-02
	result, err := svc.SwapByName(
		rosterd.SwapIdentifier{DutyDate: "2026-09-01", EmployeeName: "张三"},
		rosterd.SwapIdentifier{DutyDate: "2026-09-02", EmployeeName: "周八"},
	)
	require.NoError(t, err)
	assert.Equal(t, models.RoleFullProfessional, result.Swap1.Role)
	assert.Equal(t, "张三", result.Swap1.OriginalEmployee)
	assert.Equal(t, "周八", result.Swap1.NewEmployee)
	assert.Equal(t, models.RoleCsComplaint, result.Swap2.Role)
	assert.Equal(t, "周八", result.Swap2.OriginalEmployee)
	assert.Equal(t, "张三", result.Swap2.NewEmployee)

	// Both slots now hold the other employee
	duty, err := svc.GetDuty("2026-09-01")
	require.NoError(t, err)
	require.NotNil(t, duty.Schedule.FullProfessional)
	assert.Equal(t, "周八", *duty.Schedule.FullProfessional)
	duty, err = svc.GetDuty("2026-09-02")
	require.NoError(t, err)
	require.NotNil(t, duty.Schedule.CsComplaint)
	assert.Equal(t, "张三", *duty.Schedule.CsComplaint)

	// The swap left exactly one audit entry
	logs, err := svc.SwapLogs()
	require.NoError(t, err)
	require.Equal(t, 1, logs.Count)
	assert.Contains(t, logs.Logs[0], "张三")
	assert.Contains(t, logs.Logs[0], "周八")
}

func TestSwapByNameSameDate(t *testing.T) {
	svc := newTestService(t)
	seedRoster(t, svc)

	// Both names fall on 09-02: full professional and CS fault
	_, err := svc.SwapByName(
		rosterd.SwapIdentifier{DutyDate: "2026-09-02", EmployeeName: "孙七"},
		rosterd.SwapIdentifier{DutyDate: "2026-09-02", EmployeeName: "吴九"},
	)
	require.NoError(t, err)

	duty, err := svc.GetDuty("2026-09-02")
	require.NoError(t, err)
	require.NotNil(t, duty.Schedule.FullProfessional)
	assert.Equal(t, "吴九", *duty.Schedule.FullProfessional)
	require.NotNil(t, duty.Schedule.CsFault)
	assert.Equal(t, "孙七", *duty.Schedule.CsFault)
}

func TestSwapByNameTwiceRestoresRoster(t *testing.T) {
	svc := newTestService(t)
	seedRoster(t, svc)

	info1 := rosterd.SwapIdentifier{
		DutyDate:     "2026-09-01",
		EmployeeName: "李四",
	}
	info2 := rosterd.SwapIdentifier{
		DutyDate:     "2026-09-02",
		EmployeeName: "郑十",
	}
	_, err := svc.SwapByName(info1, info2)
	require.NoError(t, err)

	// Swapping back uses the swapped positions
	_, err = svc.SwapByName(
		rosterd.SwapIdentifier{DutyDate: "2026-09-01", EmployeeName: "郑十"},
		rosterd.SwapIdentifier{DutyDate: "2026-09-02", EmployeeName: "李四"},
	)
	require.NoError(t, err)

	duty, err := svc.GetDuty("2026-09-01")
	require.NoError(t, err)
	require.NotNil(t, duty.Schedule.CsComplaint)
	assert.Equal(t, "李四", *duty.Schedule.CsComplaint)
	duty, err = svc.GetDuty("2026-09-02")
	require.NoError(t, err)
	require.NotNil(t, duty.Schedule.PsProfessional)
	assert.Equal(t, "郑十", *duty.Schedule.PsProfessional)

	// Both swaps remain in the audit trail
	logs, err := svc.SwapLogs()
	require.NoError(t, err)
	assert.Equal(t, 2, logs.Count)
}

func TestSwapByNameNameNotFound(t *testing.T) {
	svc := newTestService(t)
	seedRoster(t, svc)

	_, err := svc.SwapByName(
		rosterd.SwapIdentifier{DutyDate: "2026-09-01", EmployeeName: "孙七"},
		rosterd.SwapIdentifier{DutyDate: "2026-09-02", EmployeeName: "周八"},
	)
	require.Error(t, err)
	var notFoundErr *rosterd.NameNotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, "孙七", notFoundErr.Name)
	assert.Equal(t, "name_not_found", rosterd.ErrorKind(err))
}

func TestSwapByNameAmbiguousRole(t *testing.T) {
	svc := newTestService(t)
	// 张三 holds two roles on 09-01
	wb := rosterWorkbook(t, [][]any{
		{"2026-09-01", "张三", "张三", "王五", "赵六"},
		{"2026-09-02", "孙七", "周八", "吴九", "郑十"},
	})
	_, err := svc.ImportFromBytes(wb)
	require.NoError(t, err)

	_, err = svc.SwapByName(
		rosterd.SwapIdentifier{DutyDate: "2026-09-01", EmployeeName: "张三"},
		rosterd.SwapIdentifier{DutyDate: "2026-09-02", EmployeeName: "周八"},
	)
	require.Error(t, err)
	var ambiguousErr *rosterd.AmbiguousRoleError
	require.ErrorAs(t, err, &ambiguousErr)
	assert.Len(t, ambiguousErr.Roles, 2)
	assert.Equal(t, "ambiguous_role", rosterd.ErrorKind(err))

	// Nothing was written: the roster and the audit log are untouched
	duty, err := svc.GetDuty("2026-09-02")
	require.NoError(t, err)
	require.NotNil(t, duty.Schedule.CsComplaint)
	assert.Equal(t, "周八", *duty.Schedule.CsComplaint)
	logs, err := svc.SwapLogs()
	require.NoError(t, err)
	assert.Equal(t, 0, logs.Count)
}

func TestSwapByNameRosterNotFound(t *testing.T) {
	svc := newTestService(t)
	seedRoster(t, svc)

	_, err := svc.SwapByName(
		rosterd.SwapIdentifier{DutyDate: "2026-12-24", EmployeeName: "张三"},
		rosterd.SwapIdentifier{DutyDate: "2026-12-25", EmployeeName: "周八"},
	)
	require.Error(t, err)
	var rosterErr *rosterd.RosterNotFoundError
	require.ErrorAs(t, err, &rosterErr)
	assert.Len(t, rosterErr.Dates, 2)
	assert.Equal(t, "not_found", rosterd.ErrorKind(err))
}

func TestSwapByNameValidation(t *testing.T) {
	svc := newTestService(t)
	seedRoster(t, svc)

	// Empty employee name
	_, err := svc.SwapByName(
		rosterd.SwapIdentifier{DutyDate: "2026-09-01", EmployeeName: "  "},
		rosterd.SwapIdentifier{DutyDate: "2026-09-02", EmployeeName: "周八"},
	)
	require.Error(t, err)
	assert.Equal(t, "validation", rosterd.ErrorKind(err))

	// Malformed date
	_, err = svc.SwapByName(
		rosterd.SwapIdentifier{DutyDate: "09/01/2026", EmployeeName: "张三"},
		rosterd.SwapIdentifier{DutyDate: "2026-09-02", EmployeeName: "周八"},
	)
	require.Error(t, err)
	var validationErr *rosterd.ValidationError
	assert.True(t, errors.As(err, &validationErr))
}
