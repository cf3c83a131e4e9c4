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

package postgres

import (
	"errors"
	"fmt"
	"time"

	"github.com/shiftcal/rosterd/database/models"
	"gorm.io/gorm"
)

// GetSchedule returns the duty schedule for a single date, or nil if no
// schedule exists for that date.
func (d *MetadataStorePostgres) GetSchedule(
	date time.Time,
	txn *gorm.DB,
) (*models.DutySchedule, error) {
	var ret models.DutySchedule
	db := d.resolveDB(txn)
	result := db.Where("duty_date = ?", models.NormalizeDate(date)).
		First(&ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf(
			"GetSchedule: query: %w", result.Error,
		)
	}
	return &ret, nil
}

// GetSchedules returns all duty schedules ordered by date.
func (d *MetadataStorePostgres) GetSchedules(
	txn *gorm.DB,
) ([]models.DutySchedule, error) {
	var ret []models.DutySchedule
	db := d.resolveDB(txn)
	result := db.Order("duty_date").Find(&ret)
	if result.Error != nil {
		return nil, fmt.Errorf(
			"GetSchedules: query: %w", result.Error,
		)
	}
	return ret, nil
}

// GetLatestDutyDate returns the maximum duty date present in the store, or
// nil when no schedules exist.
func (d *MetadataStorePostgres) GetLatestDutyDate(
	txn *gorm.DB,
) (*time.Time, error) {
	var ret models.DutySchedule
	db := d.resolveDB(txn)
	result := db.Order("duty_date DESC").First(&ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf(
			"GetLatestDutyDate: query: %w", result.Error,
		)
	}
	latest := ret.DutyDate
	return &latest, nil
}

// HasSchedules returns true if at least one duty schedule exists.
func (d *MetadataStorePostgres) HasSchedules(
	txn *gorm.DB,
) (bool, error) {
	var count int64
	db := d.resolveDB(txn)
	result := db.Model(&models.DutySchedule{}).Limit(1).Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf(
			"HasSchedules: query: %w", result.Error,
		)
	}
	return count > 0, nil
}

// ReplaceSchedules deletes every existing duty schedule and every swap log
// entry, then inserts the given schedules. The swap log is cleared together
// with the schedules so audit entries never outlive the roster version they
// refer to. Callers are expected to run this inside a transaction.
func (d *MetadataStorePostgres) ReplaceSchedules(
	schedules []models.DutySchedule,
	txn *gorm.DB,
) (int64, int64, error) {
	db := d.resolveDB(txn)
	// Serialize concurrent replaces: the delete-then-insert of a later
	// import must not interleave with an earlier one. LOCK TABLE is only
	// valid inside a transaction block.
	if txn != nil {
		lock := db.Exec(
			"LOCK TABLE duty_schedule, swap_log IN ACCESS EXCLUSIVE MODE",
		)
		if lock.Error != nil {
			return 0, 0, fmt.Errorf(
				"ReplaceSchedules: lock tables: %w", lock.Error,
			)
		}
	}
	delSchedules := db.Where("1 = 1").Delete(&models.DutySchedule{})
	if delSchedules.Error != nil {
		return 0, 0, fmt.Errorf(
			"ReplaceSchedules: delete schedules: %w", delSchedules.Error,
		)
	}
	delLogs := db.Where("1 = 1").Delete(&models.SwapLog{})
	if delLogs.Error != nil {
		return 0, 0, fmt.Errorf(
			"ReplaceSchedules: delete swap logs: %w", delLogs.Error,
		)
	}
	if len(schedules) > 0 {
		if result := db.Create(&schedules); result.Error != nil {
			return 0, 0, fmt.Errorf(
				"ReplaceSchedules: insert: %w", result.Error,
			)
		}
	}
	return delSchedules.RowsAffected, delLogs.RowsAffected, nil
}

// SetScheduleEmployee overwrites a single role slot on the schedule for the
// given date.
func (d *MetadataStorePostgres) SetScheduleEmployee(
	date time.Time,
	role models.Role,
	name *string,
	txn *gorm.DB,
) error {
	db := d.resolveDB(txn)
	result := db.Model(&models.DutySchedule{}).
		Where("duty_date = ?", models.NormalizeDate(date)).
		Update(role.Column(), name)
	if result.Error != nil {
		return fmt.Errorf(
			"SetScheduleEmployee: update: %w", result.Error,
		)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf(
			"SetScheduleEmployee: no schedule for date %s",
			models.NormalizeDate(date).Format(time.DateOnly),
		)
	}
	return nil
}
