package gemini

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// extractJSON strips markdown code fences that models like to wrap JSON
// responses in.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

// decodeJSON unmarshals a possibly fenced JSON object and decodes it into
// target with weak typing. Models occasionally emit objects where strings are
// expected; those are flattened into a single string instead of failing the
// request.
func decodeJSON(raw string, target any) error {
	var data map[string]any
	if err := json.Unmarshal([]byte(extractJSON(raw)), &data); err != nil {
		return fmt.Errorf("parse model response: %w", err)
	}

	cfg := &mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
		DecodeHook:       flattenObjectHook,
	}

	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return fmt.Errorf("build decoder: %w", err)
	}

	if err := decoder.Decode(data); err != nil {
		return fmt.Errorf("decode model response: %w", err)
	}

	return nil
}

// flattenObjectHook joins an object's values into one string when the target
// field is a string.
func flattenObjectHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.Map || to.Kind() != reflect.String {
		return data, nil
	}

	object, ok := data.(map[string]any)
	if !ok {
		return data, nil
	}

	keys := make([]string, 0, len(object))
	for key := range object {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		value := object[key]
		if value == nil {
			continue
		}
		text := strings.TrimSpace(fmt.Sprintf("%v", value))
		if text == "" {
			continue
		}
		parts = append(parts, text)
	}

	return strings.Join(parts, " "), nil
}
