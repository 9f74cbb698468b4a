package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

func jsonbValue(v interface{}) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal jsonb: %w", err)
	}
	return data, nil
}

func jsonbScan(dst interface{}, src interface{}) error {
	if src == nil {
		return nil
	}

	var data []byte
	switch s := src.(type) {
	case []byte:
		data = s
	case string:
		data = []byte(s)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}

	if len(data) == 0 {
		return nil
	}

	return json.Unmarshal(data, dst)
}

func (v VectorSet) Value() (driver.Value, error) { return jsonbValue(v) }

func (v *VectorSet) Scan(src interface{}) error { return jsonbScan(v, src) }

type StringList []string

func (l StringList) Value() (driver.Value, error) { return jsonbValue(l) }

func (l *StringList) Scan(src interface{}) error { return jsonbScan(l, src) }

type StringMap map[string]string

func (m StringMap) Value() (driver.Value, error) { return jsonbValue(m) }

func (m *StringMap) Scan(src interface{}) error { return jsonbScan(m, src) }

// JSONMap stores opaque JSON blobs such as external coding-platform stats.
type JSONMap map[string]interface{}

func (m JSONMap) Value() (driver.Value, error) { return jsonbValue(m) }

func (m *JSONMap) Scan(src interface{}) error { return jsonbScan(m, src) }
