package main

import (
	"context"
	"encoding/json"
	"testing"
)

func TestHandlerRunsInlineLedger(t *testing.T) {
	evt := json.RawMessage(`{"workers": 1, "initialAccounts": 3, "ledger": "1 0 50 0\n0 0 30 1\n1 2 20 2\n"}`)

	output, err := handler(context.Background(), evt)
	if err != nil {
		t.Fatal(err)
	}
	if output.Succeeded != 2 || output.Failed != 1 {
		t.Fatalf("Expected 2 successes and 1 failure, got %v/%v", output.Succeeded, output.Failed)
	}
	if len(output.Accounts) != 3 || output.Accounts[1].Balance != 30 || output.Accounts[2].Balance != 20 {
		t.Fatalf("Unexpected accounts %+v", output.Accounts)
	}
	if last := output.Lines[len(output.Lines)-1]; last != "Success: 2 Fails: 1" {
		t.Fatalf("Unexpected last line %q", last)
	}
	if output.RunId == "" {
		t.Fatal("Run id not set")
	}
}

func TestHandlerRejectsBadInput(t *testing.T) {
	if _, err := handler(context.Background(), json.RawMessage(`{"workers": 0}`)); err == nil {
		t.Fatal("Expected an error for zero workers")
	}
	if _, err := handler(context.Background(), json.RawMessage(`not json`)); err == nil {
		t.Fatal("Expected an error for a malformed event")
	}
}
