package bench

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/agentdeck/agentdeck/pkg/app"
	"github.com/agentdeck/agentdeck/pkg/config"
	"github.com/agentdeck/agentdeck/pkg/dashboard"
)

const benchSnapshotBody = `{"systemHealth":96.5,"agents":[` +
	`{"agentId":"agent-1","teamType":"research","status":"working","currentTask":"summarize briefing","tasksCompleted":120,"tasksFailed":4,"uptime":86400},` +
	`{"agentId":"agent-2","teamType":"engineering","status":"idle","currentTask":null,"tasksCompleted":87,"tasksFailed":1,"uptime":43200},` +
	`{"agentId":"agent-3","teamType":"ops","status":"working","currentTask":"rotate credentials","tasksCompleted":64,"tasksFailed":9,"uptime":21600}` +
	`],"activeWorkflows":5,"totalTasksCompleted":271,"totalTasksFailed":14,"uptime":172800,"timestamp":"2026-08-25T12:00:00Z"}`

const benchAgentsBody = `{"agents":[` +
	`{"agentId":"agent-1","teamType":"research","status":"working","currentTask":"summarize briefing","tasksCompleted":120,"tasksFailed":4,"uptime":86400},` +
	`{"agentId":"agent-2","teamType":"engineering","status":"idle","currentTask":null,"tasksCompleted":87,"tasksFailed":1,"uptime":43200}` +
	`]}`

func newBenchBackend(b *testing.B) *httptest.Server {
	b.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/health":
			io.WriteString(w, `{"status":"healthy","health":99.0}`)
		case "/api/snapshot":
			io.WriteString(w, benchSnapshotBody)
		case "/api/agents":
			io.WriteString(w, benchAgentsBody)
		case "/api/tasks":
			io.WriteString(w, `{"taskId":"bench-task","status":"queued"}`)
		default:
			http.NotFound(w, r)
		}
	}))
	b.Cleanup(srv.Close)
	return srv
}

func newBenchApp(b *testing.B) *app.Application {
	b.Helper()
	gin.SetMode(gin.ReleaseMode)

	backend := newBenchBackend(b)

	cfg := &config.Config{
		Port:                  0,
		DashboardBaseURL:      backend.URL + "/api",
		RequestTimeoutSeconds: 5,
		LogLevel:              "error",
		LogFormat:             "json",
		Env:                   "dev",
	}
	a, err := app.NewApplication(cfg)
	if err != nil {
		b.Fatalf("app init: %v", err)
	}
	app.SetupMappings(a)
	b.Cleanup(func() { _ = a.TracingShutdown(context.Background()) })
	return a
}

func doJSONRequest(b *testing.B, h http.Handler, method, path string, body []byte) (int, []byte) {
	b.Helper()

	var rbody *bytes.Reader
	if body == nil {
		rbody = bytes.NewReader([]byte{})
	} else {
		rbody = bytes.NewReader(body)
	}

	req := httptest.NewRequest(method, path, rbody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w.Code, w.Body.Bytes()
}

func BenchmarkHTTP_GetSnapshot(b *testing.B) {
	a := newBenchApp(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		status, resp := doJSONRequest(b, a.Engine, http.MethodGet, "/v1/dashboard/snapshot", nil)
		if status != http.StatusOK {
			b.Fatalf("snapshot status %d body=%s", status, string(resp))
		}
	}
}

func BenchmarkHTTP_GetAgents(b *testing.B) {
	a := newBenchApp(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		status, resp := doJSONRequest(b, a.Engine, http.MethodGet, "/v1/dashboard/agents", nil)
		if status != http.StatusOK {
			b.Fatalf("agents status %d body=%s", status, string(resp))
		}
	}
}

func BenchmarkHTTP_SubmitTask(b *testing.B) {
	a := newBenchApp(b)
	body := []byte(`{"name":"bench-task","description":"benchmark submission"}`)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		status, resp := doJSONRequest(b, a.Engine, http.MethodPost, "/v1/dashboard/tasks", body)
		if status != http.StatusAccepted {
			b.Fatalf("submit status %d body=%s", status, string(resp))
		}
	}
}

// Client-level counterpart of the HTTP benchmarks: same decode work without
// the gin handler chain in front.
func BenchmarkClient_Snapshot(b *testing.B) {
	backend := newBenchBackend(b)
	client := dashboard.NewClient(backend.URL + "/api")
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := client.Snapshot(ctx); err != nil {
			b.Fatalf("Snapshot: %v", err)
		}
	}
}

func BenchmarkClient_Agents(b *testing.B) {
	backend := newBenchBackend(b)
	client := dashboard.NewClient(backend.URL + "/api")
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := client.Agents(ctx); err != nil {
			b.Fatalf("Agents: %v", err)
		}
	}
}
