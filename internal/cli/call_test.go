// internal/cli/call_test.go
package opsdeck

import "testing"

func TestParseCallArguments(t *testing.T) {
	t.Parallel()

	t.Run("empty defaults to empty object", func(t *testing.T) {
		args, err := parseCallArguments("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if args == nil || len(args) != 0 {
			t.Fatalf("expected empty map, got %#v", args)
		}
	})

	t.Run("valid object", func(t *testing.T) {
		args, err := parseCallArguments(`{"groupStates":["alert"],"name":"checkout"}`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if args["name"] != "checkout" {
			t.Fatalf("unexpected arguments: %#v", args)
		}
	})

	t.Run("null arguments dropped", func(t *testing.T) {
		args, err := parseCallArguments(`{"name":null,"tags":["team:sre"]}`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := args["name"]; ok {
			t.Fatalf("null argument not dropped: %#v", args)
		}
		if len(args) != 1 {
			t.Fatalf("unexpected arguments: %#v", args)
		}
	})

	t.Run("non-object rejected", func(t *testing.T) {
		if _, err := parseCallArguments(`["alert"]`); err == nil {
			t.Fatal("expected error for a JSON array")
		}
	})

	t.Run("malformed rejected", func(t *testing.T) {
		if _, err := parseCallArguments(`{broken`); err == nil {
			t.Fatal("expected error for malformed JSON")
		}
	})
}
