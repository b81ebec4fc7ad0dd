package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент сервиса склада: списание и возврат товаров строк резерваций
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента склада
// Пустой baseURL отключает интеграцию: операции ничего не делают
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// LineKey ключ идемпотентности для строки товара
func LineKey(lineID int64) string {
	return fmt.Sprintf("product-line-%d", lineID)
}

// Consume списывает товар со склада
func (c *Client) Consume(ctx context.Context, productID int64, quantity int, key string) error {
	return c.move(ctx, "consume", productID, quantity, key)
}

// Restore возвращает товар на склад
func (c *Client) Restore(ctx context.Context, productID int64, quantity int, key string) error {
	return c.move(ctx, "restore", productID, quantity, key)
}

func (c *Client) move(ctx context.Context, action string, productID int64, quantity int, key string) error {
	if c.baseURL == "" {
		c.log.Info("Inventory disabled, skip %s of product=%d quantity=%d", action, productID, quantity)
		return nil
	}

	url := fmt.Sprintf("%s/internal/products/%d/%s", c.baseURL, productID, action)

	body, err := json.Marshal(StockMovement{Quantity: quantity, IdempotencyKey: key})
	if err != nil {
		return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", key)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return ErrProductNotFound
	case http.StatusConflict:
		return ErrInsufficientStock
	default:
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}

	var stock StockResponse
	if err := json.NewDecoder(resp.Body).Decode(&stock); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.log.Info("Inventory %s product=%d quantity=%d key=%s, remaining=%d", action, productID, quantity, key, stock.Remaining)
	return nil
}
