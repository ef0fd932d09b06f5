package core

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNewToolSpecFromStruct(t *testing.T) {
	t.Parallel()

	type weatherParams struct {
		City string `json:"city" jsonschema:"description=City name to look up"`
	}

	spec, err := NewToolSpecFromStruct("get_weather", "Look up current weather.", weatherParams{})
	if err != nil {
		t.Fatalf("NewToolSpecFromStruct() error = %v", err)
	}
	if spec.Name != "get_weather" {
		t.Fatalf("Name = %q, want %q", spec.Name, "get_weather")
	}

	decoded, err := DecodeToolJSONSchema(spec.Schema)
	if err != nil {
		t.Fatalf("DecodeToolJSONSchema() error = %v", err)
	}
	if decoded.Type != "object" {
		t.Fatalf("schema type = %q, want object", decoded.Type)
	}
	if _, ok := decoded.Properties["city"]; !ok {
		t.Fatalf("schema properties missing city: %v", decoded.Properties)
	}
	if len(decoded.Required) != 1 || decoded.Required[0] != "city" {
		t.Fatalf("schema required = %v, want [city]", decoded.Required)
	}
}

func TestNewToolSpecFromStructRejectsNonStruct(t *testing.T) {
	t.Parallel()

	if _, err := NewToolSpecFromStruct("bad", "", 42); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("NewToolSpecFromStruct() error = %v, want ErrInvalidRequest", err)
	}
	if _, err := NewToolSpecFromStruct("bad", "", nil); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("NewToolSpecFromStruct(nil) error = %v, want ErrInvalidRequest", err)
	}
}

func TestDecodeToolJSONSchema(t *testing.T) {
	t.Parallel()

	decoded, err := DecodeToolJSONSchema(nil)
	if err != nil {
		t.Fatalf("DecodeToolJSONSchema(nil) error = %v", err)
	}
	if decoded.Type != "object" || decoded.Properties == nil {
		t.Fatalf("empty schema normalized to %+v", decoded)
	}

	if _, err := DecodeToolJSONSchema(json.RawMessage(`{"type":"array"}`)); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("non-object schema error = %v, want ErrInvalidRequest", err)
	}
	if _, err := DecodeToolJSONSchema(json.RawMessage(`{not json`)); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("invalid json error = %v, want ErrInvalidRequest", err)
	}
}

func TestDecodeJSONObject(t *testing.T) {
	t.Parallel()

	obj, err := DecodeJSONObject(json.RawMessage(`{"operation":"add","a":2,"b":3}`))
	if err != nil {
		t.Fatalf("DecodeJSONObject() error = %v", err)
	}
	if obj["operation"] != "add" {
		t.Fatalf("operation = %v, want add", obj["operation"])
	}

	if _, err := DecodeJSONObject(json.RawMessage(`{bad`)); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("invalid payload error = %v, want ErrInvalidRequest", err)
	}

	fallback := DecodeJSONObjectOrEmpty(json.RawMessage(`{bad`))
	if len(fallback) != 0 {
		t.Fatalf("DecodeJSONObjectOrEmpty() = %v, want empty map", fallback)
	}
}

func TestMarshalToolInput(t *testing.T) {
	t.Parallel()

	raw, err := MarshalToolInput(map[string]any{"query": "ai agents"})
	if err != nil {
		t.Fatalf("MarshalToolInput() error = %v", err)
	}
	if !json.Valid(raw) {
		t.Fatalf("MarshalToolInput() produced invalid json: %s", raw)
	}

	empty, err := MarshalToolInput(nil)
	if err != nil {
		t.Fatalf("MarshalToolInput(nil) error = %v", err)
	}
	if string(empty) != "{}" {
		t.Fatalf("MarshalToolInput(nil) = %s, want {}", empty)
	}
}
