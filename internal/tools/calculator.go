package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

const calculatorToolName = "calculator"

// CalculatorTool performs basic arithmetic. Division by zero and unknown
// operations are reported inside the result string, never as faults.
type CalculatorTool struct{}

// NewCalculatorTool constructs the calculator tool.
func NewCalculatorTool() CalculatorTool {
	return CalculatorTool{}
}

func (CalculatorTool) Name() string { return calculatorToolName }

func (CalculatorTool) Description() string {
	return "Perform a basic math calculation. Use this when the user asks you to calculate, add, subtract, multiply, or divide numbers."
}

func (CalculatorTool) Schema() json.RawMessage {
	return json.RawMessage(`{"type":"object","properties":{"operation":{"type":"string","enum":["add","subtract","multiply","divide"],"description":"The math operation to perform"},"a":{"type":"number","description":"The first number"},"b":{"type":"number","description":"The second number"}},"required":["operation","a","b"]}`)
}

func (CalculatorTool) Execute(ctx context.Context, params json.RawMessage) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	var input struct {
		Operation string  `json:"operation"`
		A         float64 `json:"a"`
		B         float64 `json:"b"`
	}
	if err := decodeParams(params, &input); err != nil {
		return "", fmt.Errorf("decode calculator params: %w", err)
	}

	var result string
	switch input.Operation {
	case "add":
		result = formatNumber(input.A + input.B)
	case "subtract":
		result = formatNumber(input.A - input.B)
	case "multiply":
		result = formatNumber(input.A * input.B)
	case "divide":
		if input.B == 0 {
			result = "Error: Cannot divide by zero"
		} else {
			result = formatNumber(input.A / input.B)
		}
	default:
		result = fmt.Sprintf("Unknown operation: %s", input.Operation)
	}

	return fmt.Sprintf("%s %s %s = %s", formatNumber(input.A), input.Operation, formatNumber(input.B), result), nil
}

// formatNumber renders a JSON number the way users write it: integral
// values without a decimal point or exponent where possible.
func formatNumber(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
