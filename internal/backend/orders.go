package backend

import (
	"context"
	"net/url"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// CreateOrderInput is the payload for submitting a new order.
type CreateOrderInput struct {
	CustomerInfo domain.CustomerInfo `json:"customer_info"`
	Items        []domain.OrderItem  `json:"items"`
	UserID       string              `json:"user_id,omitempty"`
	Currency     string              `json:"currency"`
	Reference    string              `json:"reference,omitempty"`
}

// CreateOrderResult is the backend's response to a submitted order.
type CreateOrderResult struct {
	Order domain.Order       `json:"order"`
	Items []domain.OrderItem `json:"items"`
}

// CreateOrder submits a new order built from cart line items and collected
// customer info. UserID is empty for guest checkout.
func (c *Client) CreateOrder(ctx context.Context, input CreateOrderInput) (*CreateOrderResult, error) {
	if len(input.Items) == 0 {
		return nil, apperrors.InvalidInput("at least one order item is required")
	}

	var result CreateOrderResult
	if err := c.post(ctx, "/orders", input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetOrder fetches a single order by ID.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	var order domain.Order
	if err := c.get(ctx, "/orders/"+url.PathEscape(orderID), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetUserOrders lists all orders placed by a user, newest first.
func (c *Client) GetUserOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	query := url.Values{}
	query.Set("user_id", userID)

	var orders []domain.Order
	if err := c.get(ctx, "/orders", query, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetAllOrders lists every order in the system. The backend enforces the
// admin role on this endpoint.
func (c *Client) GetAllOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.get(ctx, "/admin/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus sets an order's status. The backend enforces the admin
// role; the caller validates the transition first.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID, status string) (*domain.Order, error) {
	if !domain.IsValidStatus(status) {
		return nil, apperrors.InvalidInput("invalid order status: " + status)
	}

	body := map[string]string{"status": status}
	var order domain.Order
	if err := c.patch(ctx, "/admin/orders/"+url.PathEscape(orderID)+"/status", body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
