package main

import (
	"encoding/json"
	"net/http"
	"testing"

	"resume-builder/internal/shared/server/respond"
)

func TestErrorResponseUsesEnvelope(t *testing.T) {
	resp := errorResponse("bootstrap_failed", "resume builder failed to start")
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	var body respond.ErrorResponse
	if err := json.Unmarshal([]byte(resp.Body), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error.Code != "bootstrap_failed" {
		t.Fatalf("unexpected code: %q", body.Error.Code)
	}
}
