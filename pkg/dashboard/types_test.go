package dashboard

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestAgentStateRequiredFields(t *testing.T) {
	full := map[string]any{
		"agentId":        "a1",
		"teamType":       "qa",
		"status":         "idle",
		"currentTask":    nil,
		"tasksCompleted": 3,
		"tasksFailed":    0,
		"uptime":         120,
	}

	for _, field := range []string{"agentId", "teamType", "status", "tasksCompleted", "tasksFailed", "uptime"} {
		t.Run("without "+field, func(t *testing.T) {
			partial := map[string]any{}
			for k, v := range full {
				if k != field {
					partial[k] = v
				}
			}
			raw, _ := json.Marshal(partial)

			var got AgentState
			err := json.Unmarshal(raw, &got)
			if err == nil {
				t.Fatalf("decoded %+v despite missing %s", got, field)
			}
			var missing *MissingFieldError
			if !errors.As(err, &missing) || missing.Field != field {
				t.Errorf("err = %v, want MissingFieldError for %s", err, field)
			}
		})
	}
}

func TestAgentStateCurrentTaskIsOptional(t *testing.T) {
	// Absent and null are both "no task in flight".
	for _, raw := range []string{
		`{"agentId":"a1","teamType":"qa","status":"idle","tasksCompleted":1,"tasksFailed":0,"uptime":9}`,
		`{"agentId":"a1","teamType":"qa","status":"idle","currentTask":null,"tasksCompleted":1,"tasksFailed":0,"uptime":9}`,
	} {
		var got AgentState
		if err := json.Unmarshal([]byte(raw), &got); err != nil {
			t.Fatalf("Unmarshal(%s): %v", raw, err)
		}
		if got.CurrentTask != nil {
			t.Errorf("CurrentTask = %v, want nil", got.CurrentTask)
		}
	}
}

func TestNegativeCounterIsDecodeFailure(t *testing.T) {
	raw := `{"agentId":"a1","teamType":"qa","status":"idle","currentTask":null,"tasksCompleted":-3,"tasksFailed":0,"uptime":120}`
	var got AgentState
	if err := json.Unmarshal([]byte(raw), &got); err == nil {
		t.Fatalf("decoded negative counter into %+v", got)
	}
}

func TestDashboardStateRejectsNullAgents(t *testing.T) {
	raw := `{"systemHealth":1,"agents":null,"activeWorkflows":0,"totalTasksCompleted":0,"totalTasksFailed":0,"uptime":1,"timestamp":"2025-06-01T00:00:00Z"}`
	var got DashboardState
	err := json.Unmarshal([]byte(raw), &got)
	if err == nil {
		t.Fatal("expected error for null agents sequence")
	}
	var missing *MissingFieldError
	if !errors.As(err, &missing) || missing.Field != "agents" {
		t.Errorf("err = %v, want MissingFieldError for agents", err)
	}
}

func TestDashboardStateMissingFieldInsideAgent(t *testing.T) {
	raw := `{"systemHealth":1,"agents":[{"agentId":"a1","teamType":"qa","status":"idle"}],"activeWorkflows":0,"totalTasksCompleted":0,"totalTasksFailed":0,"uptime":1,"timestamp":"t"}`
	var got DashboardState
	err := json.Unmarshal([]byte(raw), &got)
	if err == nil {
		t.Fatal("expected error for incomplete agent element")
	}
	var missing *MissingFieldError
	if !errors.As(err, &missing) {
		t.Errorf("err = %v, want MissingFieldError", err)
	}
}

func TestUnknownFieldsAreIgnored(t *testing.T) {
	raw := `{"status":"healthy","health":1,"region":"eu-west-1"}`
	var got HealthStatus
	if err := json.Unmarshal([]byte(raw), &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Status != "healthy" || got.Health != 1 {
		t.Errorf("decoded %+v", got)
	}
}

func TestTaskReceiptRequiredFields(t *testing.T) {
	var got TaskReceipt
	if err := json.Unmarshal([]byte(`{"taskId":"t-9"}`), &got); err == nil {
		t.Fatal("expected error for receipt without status")
	}
	if err := json.Unmarshal([]byte(`{"status":"queued"}`), &got); err == nil {
		t.Fatal("expected error for receipt without taskId")
	}
	if err := json.Unmarshal([]byte(`{"taskId":"t-9","status":"queued"}`), &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.TaskID != "t-9" || got.Status != "queued" {
		t.Errorf("decoded %+v", got)
	}
}

func TestTaskSubmissionRoundTrip(t *testing.T) {
	tests := []TaskSubmission{
		{Name: "build-x", Description: "desc"},
		{Name: "", Description: ""},
		{Name: `he said "ship it"`, Description: "line1\nline2\ttabbed"},
		{Name: "构建", Description: "emoji 🚀"},
	}
	for _, sub := range tests {
		raw, err := json.Marshal(sub)
		if err != nil {
			t.Fatalf("Marshal(%+v): %v", sub, err)
		}
		var back TaskSubmission
		if err := json.Unmarshal(raw, &back); err != nil {
			t.Fatalf("Unmarshal(%s): %v", raw, err)
		}
		if back != sub {
			t.Errorf("round trip changed %+v into %+v", sub, back)
		}
	}
}

func TestMissingFieldErrorText(t *testing.T) {
	err := &MissingFieldError{Field: "timestamp"}
	if !strings.Contains(err.Error(), `"timestamp"`) {
		t.Errorf("error text %q does not name the field", err.Error())
	}
}
