package paymentprovider

// CreateSessionRequest описывает параметры checkout-сессии Stripe.
type CreateSessionRequest struct {
	PriceID       string
	Quantity      int
	Mode          string
	SuccessURL    string
	CancelURL     string
	CustomerEmail string
}

// CheckoutSession - ответ Stripe на создание checkout-сессии.
// Поля перечислены только те, что нужны для редиректа клиента.
type CheckoutSession struct {
	ID     string `json:"id"`
	Object string `json:"object"`
	Mode   string `json:"mode"`
	Status string `json:"status"`
	URL    string `json:"url"`
}

// apiError - тело ошибки Stripe.
type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
