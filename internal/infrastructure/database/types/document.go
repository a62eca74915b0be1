package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Document is a serialized JSON slot value stored in a text/blob column.
type Document []byte

// Scan implements sql.Scanner
func (d *Document) Scan(src any) error {
	if src == nil {
		*d = nil
		return nil
	}
	switch data := src.(type) {
	case []byte:
		*d = append(Document(nil), data...)
		return nil
	case string:
		*d = Document(data)
		return nil
	default:
		return fmt.Errorf("Document: unsupported src type %T", src)
	}
}

// Value implements driver.Valuer
func (d Document) Value() (driver.Value, error) {
	if d == nil {
		return "null", nil
	}
	if !json.Valid(d) {
		return nil, fmt.Errorf("Document: value is not valid JSON")
	}
	return string(d), nil
}
