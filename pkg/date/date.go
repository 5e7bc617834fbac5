// Copyright (c) 2026 Jogakzip. All rights reserved.
// Author: dev@jogakzip.app

// Package date provides a calendar-date type (no time-of-day component)
// that travels as "YYYY-MM-DD" in JSON and maps to a SQL DATE column.
package date

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Layout is the wire format for calendar dates.
const Layout = "2006-01-02"

// Date represents a calendar date without a time-of-day component.
type Date struct {
	time.Time
}

// Parse converts a "YYYY-MM-DD" string into a [Date].
func Parse(value string) (Date, error) {
	parsed, err := time.Parse(Layout, value)
	if err != nil {
		return Date{}, fmt.Errorf("date: invalid value %q: %w", value, err)
	}
	return Date{Time: parsed}, nil
}

// String returns the date in "YYYY-MM-DD" form.
func (d Date) String() string {
	return d.Format(Layout)
}

// MarshalJSON encodes the date as a quoted "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(Layout) + `"`), nil
}

// UnmarshalJSON decodes a quoted "YYYY-MM-DD" string.
func (d *Date) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		return nil
	}
	parsed, err := Parse(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Scan implements sql.Scanner so a DATE column can hydrate a [Date].
func (d *Date) Scan(src any) error {
	switch value := src.(type) {
	case time.Time:
		d.Time = value
		return nil
	case string:
		parsed, err := Parse(value)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case nil:
		return nil
	default:
		return fmt.Errorf("date: cannot scan %T", src)
	}
}

// Value implements driver.Valuer for writing DATE columns.
func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}
