package entity

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AddToCartRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

type UpdateQuantityRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Qty       int    `json:"qty"`
}

type FilterRequest struct {
	SearchText       string `json:"search_text"`
	SelectedCategory string `json:"selected_category"`
	SortKey          string `json:"sort_key" validate:"omitempty,oneof=PRICE_HIGH_TO_LOW PRICE_LOW_TO_HIGH RATING"`
}

type SearchInputRequest struct {
	Value string `json:"value"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ProductListResponse struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}

type CategoryListResponse struct {
	Categories []string `json:"categories"`
	Total      int      `json:"total"`
}

type CartResponse struct {
	Items []CartLineItem `json:"items"`
	Total float64        `json:"total"`
}

// OrderSummary - панель "Order Details" перед оформлением заказа
type OrderSummary struct {
	Products int     `json:"products"`
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

type LoginResponse struct {
	Username     string       `json:"username"`
	Balance      float64      `json:"balance"`
	Token        string       `json:"token"`
	Notification Notification `json:"notification"`
}

// BackendMessage - тело ответа backend при ошибке
// Формат: {"success": false, "message": "..."}
type BackendMessage struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
