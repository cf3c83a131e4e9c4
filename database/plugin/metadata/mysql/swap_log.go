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

package mysql

import (
	"fmt"

	"github.com/shiftcal/rosterd/database/models"
	"gorm.io/gorm"
)

// AddSwapLog appends one audit entry for a completed swap.
func (d *MetadataStoreMysql) AddSwapLog(
	entry *models.SwapLog,
	txn *gorm.DB,
) error {
	db := d.resolveDB(txn)
	if result := db.Create(entry); result.Error != nil {
		return fmt.Errorf(
			"AddSwapLog: insert: %w", result.Error,
		)
	}
	return nil
}

// GetSwapLogs returns all swap audit entries, most recent first. Entries
// with the same timestamp are returned in reverse insertion order.
func (d *MetadataStoreMysql) GetSwapLogs(
	txn *gorm.DB,
) ([]models.SwapLog, error) {
	var ret []models.SwapLog
	db := d.resolveDB(txn)
	result := db.Order("log_time DESC").Order("id DESC").Find(&ret)
	if result.Error != nil {
		return nil, fmt.Errorf(
			"GetSwapLogs: query: %w", result.Error,
		)
	}
	return ret, nil
}
