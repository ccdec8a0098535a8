package event

import (
	"encoding/json"
	"fmt"
)

// DecodePayload extracts a typed payload from an event. Payloads published
// in-process still carry their concrete struct, so the type assertion wins;
// payloads that crossed a serialization boundary fall back to a JSON
// round-trip.
func DecodePayload[T any](evt Event) (T, error) {
	if v, ok := evt.Payload.(T); ok {
		return v, nil
	}

	var decoded T
	raw, err := json.Marshal(evt.Payload)
	if err != nil {
		return decoded, fmt.Errorf("cannot re-encode %s payload: %w", evt.Type, err)
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return decoded, fmt.Errorf("cannot decode %s payload: %w", evt.Type, err)
	}
	return decoded, nil
}
