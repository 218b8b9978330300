package gatewayhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/domain/model/negotiation"
	"ordersync/internal/core/domain/model/order"
	"ordersync/internal/core/ports"
	"ordersync/internal/pkg/errs"
)

const defaultTimeout = 15 * time.Second

// Client implements ports.OrderGateway over the authority's JSON API.
// The credential the client was built with carries the acting party; the
// authority infers the courier or client from it on operations like claim.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
	logger  *slog.Logger
}

var _ ports.OrderGateway = (*Client)(nil)

// NewClient creates a gateway client for the given base URL and bearer token.
// A nil http.Client selects a default one with a request timeout.
func NewClient(baseURL, token string, httpc *http.Client, logger *slog.Logger) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{
		baseURL: baseURL,
		token:   token,
		httpc:   httpc,
		logger:  logger.With("component", "gateway"),
	}
}

// ListOrders retrieves the full order set visible to the credential.
func (c *Client) ListOrders(ctx context.Context) ([]*order.Order, error) {
	var dtos []orderDTO
	if err := c.do(ctx, http.MethodGet, "/api/v1/orders", nil, &dtos); err != nil {
		return nil, err
	}
	return ordersToDomain(dtos)
}

// ListOrdersForActor retrieves the orders relevant to one actor.
func (c *Client) ListOrdersForActor(ctx context.Context, actorID kernel.UUID) ([]*order.Order, error) {
	if err := actorID.Validate(); err != nil {
		return nil, err
	}

	path := "/api/v1/orders?actor=" + url.QueryEscape(actorID.String())
	var dtos []orderDTO
	if err := c.do(ctx, http.MethodGet, path, nil, &dtos); err != nil {
		return nil, err
	}
	return ordersToDomain(dtos)
}

// Claim assigns the pending order to the calling courier.
func (c *Client) Claim(ctx context.Context, orderID kernel.UUID) (*order.Order, error) {
	return c.orderCall(ctx, orderID, "claim", nil)
}

// Reject terminates a non-terminal order as failed.
func (c *Client) Reject(ctx context.Context, orderID kernel.UUID) (*order.Order, error) {
	return c.orderCall(ctx, orderID, "reject", nil)
}

// Assign assigns the order to a specific courier.
func (c *Client) Assign(ctx context.Context, orderID, courierID kernel.UUID, auto bool) (*order.Order, error) {
	if err := courierID.Validate(); err != nil {
		return nil, err
	}

	return c.orderCall(ctx, orderID, "assign", assignRequest{
		CourierID: courierID.String(),
		Auto:      auto,
	})
}

// EndOrder marks an in-delivery order as delivered.
func (c *Client) EndOrder(ctx context.Context, orderID kernel.UUID) (*order.Order, error) {
	return c.orderCall(ctx, orderID, "end", nil)
}

// ProposePrice records the calling courier's price proposal.
func (c *Client) ProposePrice(
	ctx context.Context, orderID kernel.UUID, amount kernel.Price,
) (*negotiation.Negotiation, error) {
	return c.negotiationCall(ctx, orderID, "propose", amountRequest{Amount: amount.Amount()})
}

// ConfirmPrice records the calling client's confirmation and payment channel.
func (c *Client) ConfirmPrice(
	ctx context.Context, orderID kernel.UUID, amount kernel.Price, method string,
) (*negotiation.Negotiation, error) {
	return c.negotiationCall(ctx, orderID, "confirm", confirmRequest{
		Amount: amount.Amount(),
		Method: method,
	})
}

// GetNegotiation fetches the negotiation attached to an order.
func (c *Client) GetNegotiation(ctx context.Context, orderID kernel.UUID) (*negotiation.Negotiation, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto negotiationDTO
	path := "/api/v1/orders/" + orderID.String() + "/negotiation"
	if err := c.do(ctx, http.MethodGet, path, nil, &dto); err != nil {
		return nil, err
	}
	return dto.toDomain()
}

// ResolveConflict applies an admin arbitration amount.
func (c *Client) ResolveConflict(
	ctx context.Context, orderID kernel.UUID, amount kernel.Price,
) (*negotiation.Negotiation, error) {
	return c.negotiationCall(ctx, orderID, "resolve", amountRequest{Amount: amount.Amount()})
}

// orderCall posts an order lifecycle action and decodes the updated order.
func (c *Client) orderCall(
	ctx context.Context, orderID kernel.UUID, action string, body any,
) (*order.Order, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto orderDTO
	path := "/api/v1/orders/" + orderID.String() + "/" + action
	if err := c.do(ctx, http.MethodPost, path, body, &dto); err != nil {
		return nil, err
	}
	return dto.toDomain()
}

// negotiationCall posts a negotiation action and decodes the updated record.
func (c *Client) negotiationCall(
	ctx context.Context, orderID kernel.UUID, action string, body any,
) (*negotiation.Negotiation, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto negotiationDTO
	path := "/api/v1/orders/" + orderID.String() + "/negotiation/" + action
	if err := c.do(ctx, http.MethodPost, path, body, &dto); err != nil {
		return nil, err
	}
	return dto.toDomain()
}

// do issues one request and decodes the JSON response into out. Transport
// failures and 5xx responses surface as transient errors so callers know the
// last good cache may still be served.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	operation := method + " " + path

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errs.NewValueIsInvalidErrorWithCause("request body", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return errs.NewTransientNetworkErrorWithCause(operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return c.errorFromStatus(operation, resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errs.NewTransientNetworkErrorWithCause(operation,
			fmt.Errorf("decoding response: %w", err))
	}
	return nil
}

// errorFromStatus maps an authority error response onto a categorized error.
func (c *Client) errorFromStatus(operation string, resp *http.Response) error {
	detail := readErrorDetail(resp.Body)
	cause := fmt.Errorf("%s: %s", resp.Status, detail)

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		return errs.NewValueIsInvalidErrorWithCause(operation, cause)
	case resp.StatusCode == http.StatusUnauthorized,
		resp.StatusCode == http.StatusForbidden:
		return errs.NewAuthorizationErrorWithCause(operation, cause)
	case resp.StatusCode == http.StatusNotFound:
		return errs.NewObjectNotFoundErrorWithCause(operation, resp.Request.URL.Path, cause)
	case resp.StatusCode == http.StatusConflict:
		return errs.NewConflictErrorWithCause(operation, cause)
	default:
		// 5xx and anything unexpected: retryable against a healthy authority.
		return errs.NewTransientNetworkErrorWithCause(operation, cause)
	}
}

// readErrorDetail extracts the authority's error message, tolerating
// non-JSON bodies.
func readErrorDetail(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(raw) == 0 {
		return "no detail"
	}

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return string(raw)
}

func ordersToDomain(dtos []orderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := dto.toDomain()
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
