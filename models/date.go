package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"pb01/pkg/profilesync"
)

// Date is a nullable DATE column carried as a plain string on the wire.
// The editor submits either "YYYY-MM" (month picker) or a full
// "YYYY-MM-DD"; the empty string means NULL and marshals as JSON null,
// so an empty string can never leak into a date column.
type Date string

func (d Date) Value() (driver.Value, error) {
	s := profilesync.NormalizeDate(string(d))
	if s == "" {
		return nil, nil
	}
	return s, nil
}

func (d *Date) Scan(v any) error {
	switch t := v.(type) {
	case nil:
		*d = ""
	case time.Time:
		*d = Date(t.Format("2006-01-02"))
	case string:
		*d = Date(t)
	case []byte:
		*d = Date(t)
	default:
		return fmt.Errorf("cannot scan %T into Date", v)
	}
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(d))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*d = Date(s)
	return nil
}

// GormDataType tells AutoMigrate to create a DATE column.
func (Date) GormDataType() string { return "date" }
