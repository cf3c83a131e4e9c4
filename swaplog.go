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
	"time"

	"github.com/shiftcal/rosterd/database"
	"github.com/shiftcal/rosterd/database/models"
)

// SwapLogReport lists the swap audit trail for the current roster version.
type SwapLogReport struct {
	Count   int      `json:"log_count"`
	Logs    []string `json:"logs"`
	Message string   `json:"message"`
}

// SwapLogs returns every swap audit entry as a formatted sentence, most
// recent first. The read path performs no mutation.
func (s *Service) SwapLogs() (*SwapLogReport, error) {
	var entries []models.SwapLog
	txn := s.db.Transaction(false)
	err := txn.Do(func(txn *database.Txn) error {
		var storeErr error
		entries, storeErr = s.db.Metadata().GetSwapLogs(txn.Metadata())
		if storeErr != nil {
			return &PersistenceError{Err: storeErr}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logs := make([]string, 0, len(entries))
	for _, entry := range entries {
		logs = append(logs, formatSwapLogEntry(entry))
	}
	return &SwapLogReport{
		Count: len(logs),
		Logs:  logs,
		Message: fmt.Sprintf(
			"found %d swap log entries",
			len(logs),
		),
	}, nil
}

// formatSwapLogEntry renders one audit entry as a human-readable sentence.
func formatSwapLogEntry(entry models.SwapLog) string {
	return fmt.Sprintf(
		"[%s] swap request: %q (%s on %s) exchanged duties with %q (%s on %s)",
		entry.LogTime.Format(time.DateTime),
		entry.OriginalEmployee1,
		entry.Role1.Label(),
		entry.Date1.Format(time.DateOnly),
		entry.OriginalEmployee2,
		entry.Role2.Label(),
		entry.Date2.Format(time.DateOnly),
	)
}
