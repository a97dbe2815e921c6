package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// scanJSONB unmarshals a jsonb column into dest, accepting the raw
// representations both the postgres and sqlite drivers hand back.
func scanJSONB(value any, dest any) error {
	if value == nil {
		return nil
	}
	switch raw := value.(type) {
	case []byte:
		return json.Unmarshal(raw, dest)
	case string:
		return json.Unmarshal([]byte(raw), dest)
	default:
		return fmt.Errorf("jsonb: unsupported source type %T", value)
	}
}

func valueJSONB(src any) (driver.Value, error) {
	raw, err := json.Marshal(src)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}
