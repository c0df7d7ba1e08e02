package health

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheck_AllHealthy(t *testing.T) {
	r := NewRegistry()
	r.Register("storage", func(ctx context.Context) error { return nil })
	r.RegisterNonCritical("backend", func(ctx context.Context) error { return nil })

	report := r.Check(context.Background())

	assert.Equal(t, StatusUp, report.Status)
	assert.Equal(t, StatusUp, report.Checks["storage"].Status)
	assert.Equal(t, StatusUp, report.Checks["backend"].Status)
	assert.False(t, report.Timestamp.IsZero())
}

func TestCheck_CriticalDown(t *testing.T) {
	r := NewRegistry()
	r.Register("storage", func(ctx context.Context) error { return fmt.Errorf("disk full") })
	r.RegisterNonCritical("backend", func(ctx context.Context) error { return nil })

	report := r.Check(context.Background())

	assert.Equal(t, StatusDown, report.Status)
	assert.Equal(t, StatusDown, report.Checks["storage"].Status)
	assert.Equal(t, "disk full", report.Checks["storage"].Error)
	assert.True(t, report.Checks["storage"].Critical)
}

func TestCheck_NonCriticalDownDegrades(t *testing.T) {
	r := NewRegistry()
	r.Register("storage", func(ctx context.Context) error { return nil })
	r.RegisterNonCritical("backend", func(ctx context.Context) error { return fmt.Errorf("connection refused") })

	report := r.Check(context.Background())

	assert.Equal(t, StatusDegraded, report.Status)
	assert.Equal(t, StatusDown, report.Checks["backend"].Status)
	assert.False(t, report.Checks["backend"].Critical)
}

func TestCheck_CriticalOutranksDegraded(t *testing.T) {
	r := NewRegistry()
	r.Register("storage", func(ctx context.Context) error { return fmt.Errorf("disk full") })
	r.RegisterNonCritical("backend", func(ctx context.Context) error { return fmt.Errorf("unreachable") })

	report := r.Check(context.Background())

	assert.Equal(t, StatusDown, report.Status)
}

func TestCheck_NoCheckers(t *testing.T) {
	r := NewRegistry()

	report := r.Check(context.Background())

	assert.Equal(t, StatusUp, report.Status)
	assert.Empty(t, report.Checks)
}

func TestRegister_Overwrites(t *testing.T) {
	r := NewRegistry()
	r.Register("storage", func(ctx context.Context) error { return fmt.Errorf("fail") })
	r.Register("storage", func(ctx context.Context) error { return nil })

	report := r.Check(context.Background())

	assert.Equal(t, StatusUp, report.Status)
}
