package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// JSON stores an arbitrary document in a jsonb column. Used for the archived
// applicant payload on search history rows and the risk settings record.
type JSON map[string]interface{}

// Value implements the driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	return json.Marshal(j)
}

// Scan implements the sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, &j)
}

// MarshalJSON returns the JSON encoding
func (j JSON) MarshalJSON() ([]byte, error) {
	if j == nil {
		return []byte("null"), nil
	}
	return json.Marshal(map[string]interface{}(j))
}

// UnmarshalJSON sets the JSON encoding
func (j *JSON) UnmarshalJSON(data []byte) error {
	if j == nil {
		return errors.New("nil pointer")
	}
	return json.Unmarshal(data, (*map[string]interface{})(j))
}

// AsJSON round-trips any struct through encoding/json into a JSON document.
func AsJSON(v interface{}) (JSON, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc JSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Decode unpacks the document into the given struct.
func (j JSON) Decode(dest interface{}) error {
	data, err := json.Marshal(map[string]interface{}(j))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}
