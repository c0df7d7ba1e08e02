// Package admin is the order-management surface for staff users. The backend
// enforces the admin role on its side; the dashboard checks locally first so
// a customer session gets a clear error without a round trip.
package admin

import (
	"context"
	"log/slog"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/pagination"
)

// OrderBackend is the slice of the backend client the dashboard needs.
type OrderBackend interface {
	GetAllOrders(ctx context.Context) ([]domain.Order, error)
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID, status string) (*domain.Order, error)
}

// UserSource reports the signed-in user, nil for guests.
type UserSource interface {
	CurrentUser() *domain.User
}

// Dashboard exposes order management to admin users.
type Dashboard struct {
	backend OrderBackend
	session UserSource
	logger  *slog.Logger
}

// NewDashboard creates an admin dashboard.
func NewDashboard(backend OrderBackend, session UserSource, logger *slog.Logger) *Dashboard {
	return &Dashboard{backend: backend, session: session, logger: logger}
}

// ListOrders returns every order in the system, optionally narrowed to a
// single status.
func (d *Dashboard) ListOrders(ctx context.Context, status string) ([]domain.Order, error) {
	if err := d.requireAdmin(); err != nil {
		return nil, err
	}
	if status != "" && !domain.IsValidStatus(status) {
		return nil, apperrors.InvalidInput("invalid order status: " + status)
	}

	orders, err := d.backend.GetAllOrders(ctx)
	if err != nil || status == "" {
		return orders, err
	}

	filtered := orders[:0]
	for _, o := range orders {
		if o.Status == status {
			filtered = append(filtered, o)
		}
	}
	return filtered, nil
}

// ListOrdersPage returns one page of the (optionally status-filtered) order
// list for rendering.
func (d *Dashboard) ListOrdersPage(ctx context.Context, status string, params pagination.Params) (pagination.Result[domain.Order], error) {
	orders, err := d.ListOrders(ctx, status)
	if err != nil {
		return pagination.Result[domain.Order]{}, err
	}
	return pagination.Paginate(orders, params), nil
}

// GetOrder fetches a single order for inspection.
func (d *Dashboard) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	if err := d.requireAdmin(); err != nil {
		return nil, err
	}
	return d.backend.GetOrder(ctx, orderID)
}

// UpdateStatus moves an order to a new status. The transition is validated
// against the order's current status before the backend is called, so a
// shipped order cannot silently jump back to pending.
func (d *Dashboard) UpdateStatus(ctx context.Context, orderID, status string) (*domain.Order, error) {
	if err := d.requireAdmin(); err != nil {
		return nil, err
	}
	if !domain.IsValidStatus(status) {
		return nil, apperrors.InvalidInput("invalid order status: " + status)
	}

	order, err := d.backend.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.CanTransitionTo(status) {
		return nil, apperrors.Conflict("order cannot transition from " + order.Status + " to " + status)
	}

	updated, err := d.backend.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		return nil, err
	}

	d.logger.InfoContext(ctx, "order status updated",
		slog.String("order_id", orderID),
		slog.String("from", order.Status),
		slog.String("to", status),
	)
	return updated, nil
}

func (d *Dashboard) requireAdmin() error {
	user := d.session.CurrentUser()
	if user == nil {
		return apperrors.Unauthorized("sign in required")
	}
	if !user.IsAdmin() {
		return apperrors.Forbidden("admin role required")
	}
	return nil
}
