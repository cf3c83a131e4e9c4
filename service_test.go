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
	"testing"

	"github.com/shiftcal/rosterd"
	"github.com/shiftcal/rosterd/database"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// newTestService creates a roster service backed by a throwaway sqlite
// database in a per-test temp dir.
func newTestService(
	t *testing.T,
	opts ...rosterd.ServiceOptionFunc,
) *rosterd.Service {
	t.Helper()
	db, err := database.New(&database.Config{
		DataDir: t.TempDir(),
	})
	require.NoError(t, err)
	opts = append(
		[]rosterd.ServiceOptionFunc{rosterd.WithDatabase(db)},
		opts...,
	)
	svc, err := rosterd.NewService(opts...)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = svc.Close()
	})
	return svc
}

// rosterWorkbook builds an in-memory xlsx workbook with the standard header
// followed by the given data rows.
func rosterWorkbook(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)
	header := []any{
		"duty date",
		"full professional",
		"CS complaint",
		"CS fault",
		"PS professional",
	}
	err := f.SetSheetRow(sheet, "A1", &header)
	require.NoError(t, err)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		err = f.SetSheetRow(sheet, cell, &row)
		require.NoError(t, err)
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

// seedRoster imports a three-day roster used by most tests. The last day has
// an unassigned PS slot.
func seedRoster(t *testing.T, svc *rosterd.Service) {
	t.Helper()
	wb := rosterWorkbook(t, [][]any{
		{"2026-09-01", "张三", "李四", "王五", "赵六"},
		{"2026-09-02", "孙七", "周八", "吴九", "郑十"},
		{"2026-09-03", "张三", "王五", "李四", ""},
	})
	report, err := svc.ImportFromBytes(wb)
	require.NoError(t, err)
	require.Equal(t, int64(3), report.Inserted)
}

func TestNewServiceRequiresDatabase(t *testing.T) {
	_, err := rosterd.NewService()
	require.ErrorContains(t, err, "no database provided")
}
