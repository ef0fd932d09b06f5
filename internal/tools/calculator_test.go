package tools

import (
	"context"
	"encoding/json"
	"testing"
)

func TestCalculatorExecute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args string
		want string
	}{
		{
			name: "multiply integers",
			args: `{"operation": "multiply", "a": 247, "b": 38}`,
			want: "247 multiply 38 = 9386",
		},
		{
			name: "add decimals",
			args: `{"operation": "add", "a": 1.5, "b": 2}`,
			want: "1.5 add 2 = 3.5",
		},
		{
			name: "subtract below zero",
			args: `{"operation": "subtract", "a": 5, "b": 8}`,
			want: "5 subtract 8 = -3",
		},
		{
			name: "divide",
			args: `{"operation": "divide", "a": 10, "b": 4}`,
			want: "10 divide 4 = 2.5",
		},
		{
			name: "divide by zero",
			args: `{"operation": "divide", "a": 10, "b": 0}`,
			want: "10 divide 0 = Error: Cannot divide by zero",
		},
		{
			name: "unknown operation",
			args: `{"operation": "modulo", "a": 1, "b": 2}`,
			want: "1 modulo 2 = Unknown operation: modulo",
		},
		{
			name: "large integers stay plain",
			args: `{"operation": "multiply", "a": 123456789, "b": 10}`,
			want: "123456789 multiply 10 = 1234567890",
		},
	}

	tool := NewCalculatorTool()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tool.Execute(context.Background(), json.RawMessage(tt.args))
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("Execute() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCalculatorExecuteBadParams(t *testing.T) {
	t.Parallel()

	tool := NewCalculatorTool()
	if _, err := tool.Execute(context.Background(), json.RawMessage(`{"a": "not a number"}`)); err == nil {
		t.Fatal("Execute() error = nil, want decode failure")
	}
}

func TestCalculatorExecuteCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tool := NewCalculatorTool()
	if _, err := tool.Execute(ctx, json.RawMessage(`{"operation": "add", "a": 1, "b": 2}`)); err == nil {
		t.Fatal("Execute() error = nil, want context error")
	}
}
