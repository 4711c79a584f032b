package controllers

import (
	"time"

	"github.com/agentdeck/agentdeck/internal/metrics"
	"github.com/agentdeck/agentdeck/pkg/dashboard"
)

// Command labels match the command names exposed to the desktop shell.
const (
	commandGetHealth   = "getHealth"
	commandGetSnapshot = "getSnapshot"
	commandGetAgents   = "getAgents"
	commandSubmitTask  = "submitTask"
)

func observe(command string, started time.Time, err error) {
	metrics.CommandInvocationsTotal.WithLabelValues(command).Inc()
	metrics.CommandDurationSeconds.WithLabelValues(command).Observe(time.Since(started).Seconds())
	if err != nil {
		metrics.CommandFailuresTotal.WithLabelValues(command, failureKind(err)).Inc()
	}
}

func failureKind(err error) string {
	switch {
	case dashboard.IsTransport(err):
		return string(dashboard.KindTransport)
	case dashboard.IsDecode(err):
		return string(dashboard.KindDecode)
	default:
		return "unknown"
	}
}
