// Package orderservice is the HTTP/JSON client for the remote order
// service. Every call takes a context, non-2xx responses surface as
// wrapped sentinel errors, and response bodies are read with a size
// bound. The exact base path is deployment configuration.
package orderservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/wady/orderhub/internal/domain/catalog"
	"github.com/wady/orderhub/internal/domain/inbox"
	"github.com/wady/orderhub/internal/domain/order"
)

// maxResponseSize is the maximum allowed response size from the order
// service (10MB)
const maxResponseSize = 10 * 1024 * 1024

// Sentinel errors for the remote collaborator
var (
	ErrServiceUnavailable = errors.New("orderservice: service unavailable")
	ErrRequestFailed      = errors.New("orderservice: request failed")
	ErrInvalidResponse    = errors.New("orderservice: invalid response")
	ErrMissingBaseURL     = errors.New("orderservice: base URL is required")
)

// Config holds client configuration
type Config struct {
	BaseURL         string
	TimeoutSeconds  int
	CatalogPageSize int
}

// Validate checks required fields and applies defaults
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrMissingBaseURL
	}
	if _, err := url.Parse(c.BaseURL); err != nil {
		return fmt.Errorf("orderservice: invalid base URL: %w", err)
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 15
	}
	if c.CatalogPageSize <= 0 {
		c.CatalogPageSize = 100
	}
	return nil
}

// Client talks to the order service
type Client struct {
	config     *Config
	httpClient *http.Client
}

// NewClient creates a new order service client
func NewClient(config *Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// CatalogPageSize returns the configured catalog page size
func (c *Client) CatalogPageSize() int {
	return c.config.CatalogPageSize
}

// ListInboxItems fetches all inbound messages
func (c *Client) ListInboxItems(ctx context.Context) ([]inbox.Message, error) {
	var items []InboxItem
	if err := c.getJSON(ctx, "/inbox/items", &items); err != nil {
		return nil, err
	}
	msgs := make([]inbox.Message, 0, len(items))
	for _, item := range items {
		msgs = append(msgs, item.ToMessage())
	}
	return msgs, nil
}

// GetInboxItem fetches a single inbound message
func (c *Client) GetInboxItem(ctx context.Context, itemID string) (inbox.Message, error) {
	var item InboxItem
	if err := c.getJSON(ctx, "/inbox/items/"+url.PathEscape(itemID), &item); err != nil {
		return inbox.Message{}, err
	}
	return item.ToMessage(), nil
}

// ListOrders fetches the full order collection
func (c *Client) ListOrders(ctx context.Context) ([]order.Order, error) {
	var records []OrderRecord
	if err := c.getJSON(ctx, "/orders", &records); err != nil {
		return nil, err
	}
	return toOrders(records), nil
}

// ListOrdersForInbox fetches the orders traced back to one message
func (c *Client) ListOrdersForInbox(ctx context.Context, itemID string) ([]order.Order, error) {
	var records []OrderRecord
	if err := c.getJSON(ctx, "/orders/inbox/"+url.PathEscape(itemID), &records); err != nil {
		return nil, err
	}
	return toOrders(records), nil
}

// GetOrder fetches a single order
func (c *Client) GetOrder(ctx context.Context, orderID string) (order.Order, error) {
	var record OrderRecord
	if err := c.getJSON(ctx, "/orders/"+url.PathEscape(orderID), &record); err != nil {
		return order.Order{}, err
	}
	return record.ToOrder(), nil
}

// UpdateOrderStatus sets the order's lifecycle status
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID string, status order.Status) error {
	body := statusUpdateRequest{OrderStatus: status.String()}
	return c.writeJSON(ctx, http.MethodPut, "/orders/"+url.PathEscape(orderID)+"/status", body)
}

// UpdateDeliveryInstructions sets the order's delivery instructions
func (c *Client) UpdateDeliveryInstructions(ctx context.Context, orderID, instructions string) error {
	body := deliveryInstructionsRequest{DeliveryInstructions: instructions}
	return c.writeJSON(ctx, http.MethodPut, "/orders/"+url.PathEscape(orderID)+"/delivery-instructions", body)
}

// UpdateDeliveryDate sets the order's confirmed delivery date
// (YYYY-MM-DD); an empty date clears it.
func (c *Client) UpdateDeliveryDate(ctx context.Context, orderID, date string) error {
	body := deliveryDateRequest{}
	if date != "" {
		body.DeliveryDate = &date
	}
	return c.writeJSON(ctx, http.MethodPut, "/orders/"+url.PathEscape(orderID)+"/delivery-date", body)
}

// ListOrderItems fetches the line items of one order
func (c *Client) ListOrderItems(ctx context.Context, orderID string) ([]order.LineItem, error) {
	var items []OrderItem
	if err := c.getJSON(ctx, "/order-items/order/"+url.PathEscape(orderID), &items); err != nil {
		return nil, err
	}
	out := make([]order.LineItem, 0, len(items))
	for _, item := range items {
		out = append(out, item.ToLineItem())
	}
	return out, nil
}

// ReplaceOrderProducts replaces the full product set of the order owning
// the anchor item
func (c *Client) ReplaceOrderProducts(ctx context.Context, anchorItemID string, productIDs []string) error {
	body := replaceProductsRequest{ProductIDs: productIDs}
	return c.writeJSON(ctx, http.MethodPost, "/order-items/"+url.PathEscape(anchorItemID)+"/products", body)
}

// ListCatalogProducts fetches one page of catalog reference data
func (c *Client) ListCatalogProducts(ctx context.Context, limit int) ([]catalog.Product, error) {
	if limit <= 0 {
		limit = c.config.CatalogPageSize
	}
	var products []CatalogProduct
	path := "/catalog/products?limit=" + strconv.Itoa(limit)
	if err := c.getJSON(ctx, path, &products); err != nil {
		return nil, err
	}
	out := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		out = append(out, p.ToProduct())
	}
	return out, nil
}

// Refresh triggers a full data refresh on the service side. The
// response body is opaque to this client.
func (c *Client) Refresh(ctx context.Context) error {
	_, err := c.doRequest(ctx, http.MethodGet, "/refresh", nil)
	return err
}

func toOrders(records []OrderRecord) []order.Order {
	out := make([]order.Order, 0, len(records))
	for _, r := range records {
		out = append(out, r.ToOrder())
	}
	return out
}

// getJSON performs a GET and decodes the JSON response into out
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	respBody, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: failed to parse response: %v", ErrInvalidResponse, err)
	}
	return nil
}

// writeJSON performs a mutation request with a JSON body, discarding the
// response payload
func (c *Client) writeJSON(ctx context.Context, method, path string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("orderservice: failed to encode request: %w", err)
	}
	_, err = c.doRequest(ctx, method, path, payload)
	return err
}

// doRequest performs an HTTP request against the order service
func (c *Client) doRequest(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	endpoint := strings.TrimRight(c.config.BaseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("orderservice: failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("orderservice: failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s %s: HTTP %d", ErrRequestFailed, method, path, resp.StatusCode)
	}
	return respBody, nil
}
