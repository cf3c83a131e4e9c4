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

// SwapLog is one append-only audit record of a completed duty swap. Entries
// are immutable once created and are only removed when a full roster replace
// discards the schedule version they refer to.
type SwapLog struct {
	ID                uint      `gorm:"primarykey"`
	LogTime           time.Time `gorm:"autoCreateTime;index"`
	Date1             time.Time `gorm:"not null"`
	Role1             Role      `gorm:"not null"`
	OriginalEmployee1 string    `gorm:"size:255"`
	NewEmployee1      string    `gorm:"size:255"`
	Date2             time.Time `gorm:"not null"`
	Role2             Role      `gorm:"not null"`
	OriginalEmployee2 string    `gorm:"size:255"`
	NewEmployee2      string    `gorm:"size:255"`
}

func (SwapLog) TableName() string {
	return "swap_log"
}
