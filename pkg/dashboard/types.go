package dashboard

import (
	"encoding/json"
	"fmt"
)

// HealthStatus is a snapshot of backend liveness.
type HealthStatus struct {
	Status string  `json:"status"`
	Health float64 `json:"health"`
}

// AgentState is one agent's observable state as the backend reports it.
// CurrentTask is nil when the agent is between tasks.
type AgentState struct {
	AgentID        string  `json:"agentId"`
	TeamType       string  `json:"teamType"`
	Status         string  `json:"status"`
	CurrentTask    *string `json:"currentTask"`
	TasksCompleted uint64  `json:"tasksCompleted"`
	TasksFailed    uint64  `json:"tasksFailed"`
	Uptime         uint64  `json:"uptime"` // seconds
}

// DashboardState is the aggregate view of the whole system.
type DashboardState struct {
	SystemHealth        float64      `json:"systemHealth"`
	Agents              []AgentState `json:"agents"`
	ActiveWorkflows     uint64       `json:"activeWorkflows"`
	TotalTasksCompleted uint64       `json:"totalTasksCompleted"`
	TotalTasksFailed    uint64       `json:"totalTasksFailed"`
	Uptime              uint64       `json:"uptime"` // seconds
	Timestamp           string       `json:"timestamp"`
}

// TaskSubmission is the outbound payload for submitting a task.
type TaskSubmission struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// TaskReceipt echoes an accepted submission.
type TaskReceipt struct {
	TaskID string `json:"taskId"`
	Status string `json:"status"`
}

// MissingFieldError reports a required field absent from a response body.
// Decoding never fills defaults: a body without the field is rejected.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

func (h *HealthStatus) UnmarshalJSON(data []byte) error {
	var w struct {
		Status *string  `json:"status"`
		Health *float64 `json:"health"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch {
	case w.Status == nil:
		return &MissingFieldError{Field: "status"}
	case w.Health == nil:
		return &MissingFieldError{Field: "health"}
	}
	h.Status = *w.Status
	h.Health = *w.Health
	return nil
}

func (a *AgentState) UnmarshalJSON(data []byte) error {
	var w struct {
		AgentID        *string `json:"agentId"`
		TeamType       *string `json:"teamType"`
		Status         *string `json:"status"`
		CurrentTask    *string `json:"currentTask"`
		TasksCompleted *uint64 `json:"tasksCompleted"`
		TasksFailed    *uint64 `json:"tasksFailed"`
		Uptime         *uint64 `json:"uptime"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch {
	case w.AgentID == nil:
		return &MissingFieldError{Field: "agentId"}
	case w.TeamType == nil:
		return &MissingFieldError{Field: "teamType"}
	case w.Status == nil:
		return &MissingFieldError{Field: "status"}
	case w.TasksCompleted == nil:
		return &MissingFieldError{Field: "tasksCompleted"}
	case w.TasksFailed == nil:
		return &MissingFieldError{Field: "tasksFailed"}
	case w.Uptime == nil:
		return &MissingFieldError{Field: "uptime"}
	}
	a.AgentID = *w.AgentID
	a.TeamType = *w.TeamType
	a.Status = *w.Status
	a.CurrentTask = w.CurrentTask
	a.TasksCompleted = *w.TasksCompleted
	a.TasksFailed = *w.TasksFailed
	a.Uptime = *w.Uptime
	return nil
}

func (d *DashboardState) UnmarshalJSON(data []byte) error {
	var w struct {
		SystemHealth        *float64      `json:"systemHealth"`
		Agents              *[]AgentState `json:"agents"`
		ActiveWorkflows     *uint64       `json:"activeWorkflows"`
		TotalTasksCompleted *uint64       `json:"totalTasksCompleted"`
		TotalTasksFailed    *uint64       `json:"totalTasksFailed"`
		Uptime              *uint64       `json:"uptime"`
		Timestamp           *string       `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch {
	case w.SystemHealth == nil:
		return &MissingFieldError{Field: "systemHealth"}
	case w.Agents == nil:
		return &MissingFieldError{Field: "agents"}
	case w.ActiveWorkflows == nil:
		return &MissingFieldError{Field: "activeWorkflows"}
	case w.TotalTasksCompleted == nil:
		return &MissingFieldError{Field: "totalTasksCompleted"}
	case w.TotalTasksFailed == nil:
		return &MissingFieldError{Field: "totalTasksFailed"}
	case w.Uptime == nil:
		return &MissingFieldError{Field: "uptime"}
	case w.Timestamp == nil:
		return &MissingFieldError{Field: "timestamp"}
	}
	d.SystemHealth = *w.SystemHealth
	d.Agents = *w.Agents
	d.ActiveWorkflows = *w.ActiveWorkflows
	d.TotalTasksCompleted = *w.TotalTasksCompleted
	d.TotalTasksFailed = *w.TotalTasksFailed
	d.Uptime = *w.Uptime
	d.Timestamp = *w.Timestamp
	return nil
}

func (r *TaskReceipt) UnmarshalJSON(data []byte) error {
	var w struct {
		TaskID *string `json:"taskId"`
		Status *string `json:"status"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch {
	case w.TaskID == nil:
		return &MissingFieldError{Field: "taskId"}
	case w.Status == nil:
		return &MissingFieldError{Field: "status"}
	}
	r.TaskID = *w.TaskID
	r.Status = *w.Status
	return nil
}

// agentsEnvelope is the wire wrapper around the agent listing. Callers of the
// client never see it; Agents returns the inner slice.
type agentsEnvelope struct {
	Agents []AgentState
}

func (e *agentsEnvelope) UnmarshalJSON(data []byte) error {
	var w struct {
		Agents *[]AgentState `json:"agents"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Agents == nil {
		return &MissingFieldError{Field: "agents"}
	}
	e.Agents = *w.Agents
	return nil
}
