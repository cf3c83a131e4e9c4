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
	"time"

	"github.com/shiftcal/rosterd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(year int, month time.Month, day int) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, day, 15, 4, 5, 0, time.UTC)
	}
}

func TestGetDutyEmptyStore(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.GetDuty("2026-09-01")
	require.ErrorIs(t, err, rosterd.ErrEmptyStore)
	assert.Equal(t, "empty_store", rosterd.ErrorKind(err))
}

func TestGetDutyNotFound(t *testing.T) {
	svc := newTestService(t)
	seedRoster(t, svc)

	// An unknown date is a not-found result, not an error
	result, err := svc.GetDuty("2030-01-01")
	require.NoError(t, err)
	assert.False(t, result.Found)
	assert.Nil(t, result.Schedule)
	assert.Contains(t, result.Message, "no duty schedule found")
}

func TestGetDutyInvalidDate(t *testing.T) {
	svc := newTestService(t)
	seedRoster(t, svc)

	_, err := svc.GetDuty("09/01/2026")
	require.Error(t, err)
	assert.Equal(t, "validation", rosterd.ErrorKind(err))
}

func TestGetDutyToday(t *testing.T) {
	svc := newTestService(
		t,
		rosterd.WithTimeSource(fixedClock(2026, time.September, 2)),
	)
	seedRoster(t, svc)

	result, err := svc.GetDuty("today")
	require.NoError(t, err)
	require.True(t, result.Found)
	assert.Equal(
		t,
		"2026-09-02",
		result.DutyDate.Format(time.DateOnly),
	)
	// Not the last scheduled day, so no advisory
	assert.Empty(t, result.Warnings)

	// The sentinel is case-insensitive
	result, err = svc.GetDuty("  Today ")
	require.NoError(t, err)
	assert.True(t, result.Found)
}

func TestGetDutyTodayLastDayAdvisory(t *testing.T) {
	svc := newTestService(
		t,
		rosterd.WithTimeSource(fixedClock(2026, time.September, 3)),
	)
	seedRoster(t, svc)

	result, err := svc.GetDuty("today")
	require.NoError(t, err)
	require.True(t, result.Found)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "last day")

	// The same date queried explicitly carries no advisory
	result, err = svc.GetDuty("2026-09-03")
	require.NoError(t, err)
	require.True(t, result.Found)
	assert.Empty(t, result.Warnings)
}

func TestGetDutyTodayBeyondRoster(t *testing.T) {
	svc := newTestService(
		t,
		rosterd.WithTimeSource(fixedClock(2026, time.October, 15)),
	)
	seedRoster(t, svc)

	result, err := svc.GetDuty("today")
	require.NoError(t, err)
	assert.False(t, result.Found)
	assert.Empty(t, result.Warnings)
}
