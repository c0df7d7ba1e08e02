// Package health runs named dependency checks and aggregates them into a
// single status. The storefront has no HTTP surface; callers read the report
// directly (CLI status output, logs).
package health

import (
	"context"
	"sync"
	"time"
)

// Checker is a function that checks the health of a dependency.
type Checker func(ctx context.Context) error

// Status is the aggregated or per-check health state.
type Status string

const (
	StatusUp       Status = "up"
	StatusDegraded Status = "degraded"
	StatusDown     Status = "down"
)

// CheckResult is the result of a single check.
type CheckResult struct {
	Status   Status `json:"status"`
	Critical bool   `json:"critical"`
	Error    string `json:"error,omitempty"`
}

// Report is the aggregated result of all registered checks. A failed
// critical check makes the report down; a failed non-critical check only
// degrades it.
type Report struct {
	Status    Status                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
}

type entry struct {
	checker  Checker
	critical bool
}

// Registry holds named checkers. Safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds a critical checker. Registering an existing name replaces it.
func (r *Registry) Register(name string, checker Checker) {
	r.add(name, checker, true)
}

// RegisterNonCritical adds a checker whose failure degrades the report
// instead of taking it down.
func (r *Registry) RegisterNonCritical(name string, checker Checker) {
	r.add(name, checker, false)
}

func (r *Registry) add(name string, checker Checker, critical bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = entry{checker: checker, critical: critical}
}

// Check runs every registered checker and aggregates the results.
func (r *Registry) Check(ctx context.Context) Report {
	r.mu.RLock()
	entries := make(map[string]entry, len(r.entries))
	for name, e := range r.entries {
		entries[name] = e
	}
	r.mu.RUnlock()

	checks := make(map[string]CheckResult, len(entries))
	status := StatusUp

	for name, e := range entries {
		result := CheckResult{Status: StatusUp, Critical: e.critical}
		if err := e.checker(ctx); err != nil {
			result.Status = StatusDown
			result.Error = err.Error()
			if e.critical {
				status = StatusDown
			} else if status == StatusUp {
				status = StatusDegraded
			}
		}
		checks[name] = result
	}

	return Report{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Checks:    checks,
	}
}
