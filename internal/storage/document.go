package storage

import (
	"encoding/json"
	"fmt"
)

// DecodeDocument decodes a persisted JSON document and keeps every key.
// Non-string values written by older pipeline versions are rendered with fmt.
func DecodeDocument(raw []byte) (map[string]string, error) {
	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}

	doc := make(map[string]string, len(generic))
	for k, v := range generic {
		switch val := v.(type) {
		case nil:
			doc[k] = ""
		case string:
			doc[k] = val
		default:
			doc[k] = fmt.Sprint(val)
		}
	}
	return doc, nil
}
