package jsonutil

import (
	"encoding/json"
	"fmt"
)

// MapToStruct converts a map[string]any to a struct
// target is a pointer of the target struct
func MapToStruct(dict map[string]any, target any) error {
	body, err := json.Marshal(dict)
	if err != nil {
		return fmt.Errorf("failed to marshal map, %w", err)
	}

	return json.Unmarshal(body, target)
}
