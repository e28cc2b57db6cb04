// Copyright 2025 Lampstand Labs
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


package core

import (
	"fmt"
	"time"
)

// ValidateSermon validates a Sermon according to domain rules.
//
// Validation rules:
//   - Title, Description, Channel and MessageLink must not be empty
//   - Date, when set, must parse as YYYY-MM-DD
//
// NOT validated (populated by the store):
//   - Id (0 is valid before insertion)
//   - CreatedAt / UpdatedAt
func ValidateSermon(sermon *Sermon) error {
	if sermon == nil {
		return fmt.Errorf("%w: sermon is nil", ErrInvalidSermon)
	}

	if sermon.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSermon, ErrEmptyTitle)
	}

	if sermon.Description == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSermon, ErrEmptyDescription)
	}

	if sermon.Channel == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSermon, ErrEmptyChannel)
	}

	if sermon.MessageLink == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSermon, ErrEmptyMessageLink)
	}

	if sermon.Date != "" {
		if _, err := time.Parse("2006-01-02", sermon.Date); err != nil {
			return fmt.Errorf("%w: %w: %q", ErrInvalidSermon, ErrInvalidDate, sermon.Date)
		}
	}

	return nil
}
