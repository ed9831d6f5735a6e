package types

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Compile-time interface assertions.
// These ensure all JSONB types implement both sql.Scanner and driver.Valuer,
// catching any method signature drift at compile time rather than at runtime.
// Scan is on pointer receivers; Value is on value receivers.
var (
	_ sql.Scanner   = (*WaterQualitySummary)(nil)
	_ driver.Valuer = WaterQualitySummary{}
	_ sql.Scanner   = (*Facilities)(nil)
	_ driver.Valuer = Facilities{}
	_ sql.Scanner   = (*AuditDetails)(nil)
	_ driver.Valuer = AuditDetails{}
)

// scanJSONB is a generic helper that scans a JSONB database value into a Go
// pointer. It handles nil values, []byte, and string representations from
// different database drivers.
func scanJSONB(dest interface{}, value interface{}) error {
	if value == nil {
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("jsonb: unsupported scan type %T", value)
	}
	return json.Unmarshal(data, dest)
}

// Scan implements the sql.Scanner interface for reading JSONB from the database.
func (s *WaterQualitySummary) Scan(value interface{}) error {
	return scanJSONB(s, value)
}

// Value implements the driver.Valuer interface for writing JSONB to the database.
func (s WaterQualitySummary) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements the sql.Scanner interface for reading JSONB from the database.
func (f *Facilities) Scan(value interface{}) error {
	return scanJSONB(f, value)
}

// Value implements the driver.Valuer interface for writing JSONB to the database.
func (f Facilities) Value() (driver.Value, error) {
	return json.Marshal(f)
}

// Scan implements the sql.Scanner interface for reading JSONB from the database.
func (d *AuditDetails) Scan(value interface{}) error {
	return scanJSONB(d, value)
}

// Value implements the driver.Valuer interface for writing JSONB to the database.
func (d AuditDetails) Value() (driver.Value, error) {
	return json.Marshal(d)
}
