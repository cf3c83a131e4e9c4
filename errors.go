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
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shiftcal/rosterd/database/models"
)

// ErrEmptyStore is returned when a query is made against a store that holds
// no duty schedules at all. It is distinct from a not-found result for a
// single date.
var ErrEmptyStore = errors.New(
	"no duty schedules are loaded; import a roster first",
)

// ValidationError reports malformed input: a bad date format, a roster file
// with too few columns, or an empty employee name.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// RosterNotFoundError is returned by swap resolution when one or both dates
// have no duty schedule.
type RosterNotFoundError struct {
	Dates []time.Time
}

func (e *RosterNotFoundError) Error() string {
	dates := make([]string, 0, len(e.Dates))
	for _, d := range e.Dates {
		dates = append(dates, d.Format(time.DateOnly))
	}
	return fmt.Sprintf(
		"no duty schedule found for date(s): %s",
		strings.Join(dates, ", "),
	)
}

// NameNotFoundError is returned when the named employee does not occupy any
// role slot on the given date.
type NameNotFoundError struct {
	Date time.Time
	Name string
}

func (e *NameNotFoundError) Error() string {
	return fmt.Sprintf(
		"employee %q not found in the duty schedule for %s",
		e.Name,
		e.Date.Format(time.DateOnly),
	)
}

// AmbiguousRoleError is returned when the named employee occupies more than
// one role slot on the given date. The caller must disambiguate explicitly;
// the engine does not guess.
type AmbiguousRoleError struct {
	Date  time.Time
	Name  string
	Roles []models.Role
}

func (e *AmbiguousRoleError) Error() string {
	roles := make([]string, 0, len(e.Roles))
	for _, r := range e.Roles {
		roles = append(roles, r.String())
	}
	return fmt.Sprintf(
		"employee %q holds multiple duty roles (%s) on %s; specify the role explicitly",
		e.Name,
		strings.Join(roles, ", "),
		e.Date.Format(time.DateOnly),
	)
}

// PersistenceError wraps a storage-layer failure. The enclosing transaction
// is rolled back before this error is returned.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("storage error: %s", e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// ErrorKind maps an engine error to its machine-readable kind. The transport
// layer uses this to pick status codes and error bodies.
func ErrorKind(err error) string {
	var validationErr *ValidationError
	var rosterNotFoundErr *RosterNotFoundError
	var nameNotFoundErr *NameNotFoundError
	var ambiguousErr *AmbiguousRoleError
	var persistenceErr *PersistenceError
	switch {
	case errors.Is(err, ErrEmptyStore):
		return "empty_store"
	case errors.As(err, &validationErr):
		return "validation"
	case errors.As(err, &rosterNotFoundErr):
		return "not_found"
	case errors.As(err, &nameNotFoundErr):
		return "name_not_found"
	case errors.As(err, &ambiguousErr):
		return "ambiguous_role"
	case errors.As(err, &persistenceErr):
		return "persistence"
	default:
		return "internal"
	}
}
