// Package checkout turns the session's cart into a submitted order.
package checkout

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/utafrali/storefront/internal/backend"
	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/store"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/validator"
)

// OrderPlacer submits orders to the backend.
type OrderPlacer interface {
	CreateOrder(ctx context.Context, input backend.CreateOrderInput) (*backend.CreateOrderResult, error)
}

// UserSource reports the signed-in user, nil for guests.
type UserSource interface {
	CurrentUser() *domain.User
}

// Service submits the cart as an order. The cart is cleared only after the
// backend confirms the order; any failure leaves it untouched so the customer
// can retry.
type Service struct {
	cart    *store.CartStore
	backend OrderPlacer
	session UserSource
	logger  *slog.Logger
}

// NewService creates a checkout service.
func NewService(cart *store.CartStore, placer OrderPlacer, session UserSource, logger *slog.Logger) *Service {
	return &Service{
		cart:    cart,
		backend: placer,
		session: session,
		logger:  logger,
	}
}

// Submit validates the customer info, snapshots the cart, and places the
// order. Guest checkout is allowed; a signed-in user's ID is attached so the
// order shows up in their history.
func (s *Service) Submit(ctx context.Context, info domain.CustomerInfo) (*backend.CreateOrderResult, error) {
	if err := validator.Validate(info); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
	}

	lines := s.cart.Items()
	if len(lines) == 0 {
		return nil, apperrors.InvalidInput("cart is empty")
	}

	items := make([]domain.OrderItem, len(lines))
	for i, line := range lines {
		items[i] = domain.OrderItem{
			ProductID:  line.ProductID,
			VariantID:  line.VariantID,
			Name:       line.Name,
			Price:      line.Price,
			Quantity:   line.Quantity,
			Attributes: line.Attributes,
		}
	}

	input := backend.CreateOrderInput{
		CustomerInfo: info,
		Items:        items,
		Currency:     s.cart.Currency(),
		Reference:    uuid.New().String(),
	}
	if user := s.session.CurrentUser(); user != nil {
		input.UserID = user.ID
	}

	result, err := s.backend.CreateOrder(ctx, input)
	if err != nil {
		s.logger.WarnContext(ctx, "order submission failed, cart retained",
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	// Clear only after the backend confirmed. A persistence failure on the
	// clear is logged inside the store; the order already exists either way.
	_ = s.cart.Clear(ctx)

	s.logger.InfoContext(ctx, "order placed",
		slog.String("order_id", result.Order.ID),
		slog.Int("lines", len(items)),
		slog.Int64("total", result.Order.TotalAmount),
	)
	return result, nil
}
