package tools

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
)

// validateArguments checks raw tool arguments against the declared JSON
// schema before execution: required fields must be present, known fields
// must match their declared primitive type, and unknown fields are rejected
// only when the schema sets additionalProperties to false.
func validateArguments(schema, arguments json.RawMessage) error {
	schemaMap, err := decodeObject(schema)
	if err != nil {
		return fmt.Errorf("invalid tool schema: %w", err)
	}
	if len(schemaMap) == 0 {
		return nil
	}

	args, err := decodeObject(arguments)
	if err != nil {
		return fmt.Errorf("invalid tool arguments: %w", err)
	}

	required, err := parseRequiredFields(schemaMap["required"])
	if err != nil {
		return err
	}
	for _, field := range required {
		if _, ok := args[field]; !ok {
			return fmt.Errorf("missing required argument %q", field)
		}
	}

	properties, hasProperties := asObject(schemaMap["properties"])
	additionalAllowed, err := parseAdditionalProperties(schemaMap["additionalProperties"])
	if err != nil {
		return err
	}

	for _, key := range sortedKeys(args) {
		value := args[key]
		propertySchema, known := properties[key]
		if !known {
			if hasProperties && !additionalAllowed {
				return fmt.Errorf("unknown argument %q", key)
			}
			continue
		}

		expectedType, hasType, err := parsePropertyType(propertySchema)
		if err != nil {
			return err
		}
		if !hasType {
			continue
		}
		if !matchesType(expectedType, value) {
			return fmt.Errorf("argument %q must be %q", key, expectedType)
		}
	}

	return nil
}

func parseRequiredFields(raw any) ([]string, error) {
	switch value := raw.(type) {
	case nil:
		return nil, nil
	case []any:
		out := make([]string, 0, len(value))
		for _, item := range value {
			field, ok := item.(string)
			if !ok {
				return nil, errors.New(`schema "required" entries must be strings`)
			}
			out = append(out, field)
		}
		return out, nil
	default:
		return nil, errors.New(`schema "required" must be an array`)
	}
}

func parseAdditionalProperties(raw any) (bool, error) {
	switch value := raw.(type) {
	case nil:
		return true, nil
	case bool:
		return value, nil
	default:
		return false, errors.New(`schema "additionalProperties" must be a bool`)
	}
}

func parsePropertyType(propertySchema any) (string, bool, error) {
	propertyMap, ok := asObject(propertySchema)
	if !ok {
		return "", false, errors.New(`schema "properties" entries must be objects`)
	}
	rawType, ok := propertyMap["type"]
	if !ok {
		return "", false, nil
	}
	typeName, ok := rawType.(string)
	if !ok {
		return "", false, errors.New(`schema property "type" must be a string`)
	}
	return typeName, true, nil
}

func asObject(raw any) (map[string]any, bool) {
	value, ok := raw.(map[string]any)
	return value, ok
}

func sortedKeys(args map[string]any) []string {
	keys := make([]string, 0, len(args))
	for key := range args {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// matchesType checks a decoded JSON value against a schema primitive type.
// Decoded JSON numbers are always float64, so "integer" accepts any numeric
// value without a fractional part.
func matchesType(expected string, value any) bool {
	switch expected {
	case "string":
		_, ok := value.(string)
		return ok
	case "boolean":
		_, ok := value.(bool)
		return ok
	case "number":
		_, ok := value.(float64)
		return ok
	case "integer":
		num, ok := value.(float64)
		return ok && num == math.Trunc(num)
	case "object":
		_, ok := value.(map[string]any)
		return ok
	case "array":
		_, ok := value.([]any)
		return ok
	default:
		return true
	}
}
