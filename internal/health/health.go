// Package health evaluates dependency probes for the readiness endpoint.
package health

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Status encodes the outcome of a probe.
type Status string

const (
	StatusUp       Status = "up"
	StatusDown     Status = "down"
	StatusDegraded Status = "degraded"
)

// Result captures a single dependency check outcome.
type Result struct {
	Component string        `json:"component"`
	Status    Status        `json:"status"`
	Details   string        `json:"details,omitempty"`
	Duration  time.Duration `json:"duration"`
}

// Report aggregates probe results. Success is false when any probe is down or degraded.
type Report struct {
	Success bool     `json:"success"`
	Status  Status   `json:"status"`
	Checks  []Result `json:"checks"`
}

// Check is a named dependency probe.
type Check struct {
	Name string
	Run  func(ctx context.Context) Result
}

// Manager runs registered probes in registration order.
type Manager struct {
	checks []Check
}

// NewManager constructs a manager with the given probes. Unnamed or nil probes are ignored.
func NewManager(checks ...Check) *Manager {
	m := &Manager{}
	for _, check := range checks {
		m.Register(check)
	}
	return m
}

// Register appends a probe.
func (m *Manager) Register(check Check) {
	if check.Name == "" || check.Run == nil {
		return
	}
	m.checks = append(m.checks, check)
}

// Evaluate executes every probe and folds the results into a report.
func (m *Manager) Evaluate(ctx context.Context) Report {
	report := Report{Success: true, Status: StatusUp, Checks: make([]Result, 0, len(m.checks))}

	for _, check := range m.checks {
		result := run(ctx, check)
		report.Checks = append(report.Checks, result)

		switch result.Status {
		case StatusDown:
			report.Success = false
			report.Status = StatusDown
		case StatusDegraded:
			report.Success = false
			if report.Status != StatusDown {
				report.Status = StatusDegraded
			}
		}
	}
	return report
}

func run(ctx context.Context, check Check) (result Result) {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()

	defer func() {
		if rec := recover(); rec != nil {
			result = Result{Status: StatusDown, Details: fmt.Sprint(rec)}
		}
		if result.Status == "" {
			result.Status = StatusDown
		}
		if result.Duration == 0 {
			result.Duration = time.Since(start)
		}
		result.Component = check.Name
	}()

	return check.Run(ctx)
}

// FromError converts err into a Result. Timeouts and cancellations count as degraded.
func FromError(err error) Result {
	if err == nil {
		return Result{Status: StatusUp}
	}
	status := StatusDown
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		status = StatusDegraded
	}
	return Result{Status: status, Details: err.Error()}
}
