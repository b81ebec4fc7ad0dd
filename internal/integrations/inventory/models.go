package inventory

// StockMovement тело запроса списания/возврата
type StockMovement struct {
	Quantity       int    `json:"quantity"`
	IdempotencyKey string `json:"idempotency_key"` // Повтор с тем же ключом не меняет остаток
}

// StockResponse остаток после операции
type StockResponse struct {
	ProductID int64 `json:"product_id"`
	Remaining int   `json:"remaining"`
}

// ErrorResponse модель ошибки от сервиса склада
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
