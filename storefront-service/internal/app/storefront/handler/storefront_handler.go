package handler

import (
	"errors"
	"net/http"

	"qkart/storefront-service/internal/app/storefront/entity"
	"qkart/storefront-service/internal/app/storefront/infrastructure"
	"qkart/storefront-service/internal/app/storefront/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// StorefrontHandler обрабатывает HTTP запросы витрины
type StorefrontHandler struct {
	storefront *service.StorefrontService
	validator  *validator.Validate
}

// NewStorefrontHandler создает новый обработчик витрины
func NewStorefrontHandler(storefront *service.StorefrontService) *StorefrontHandler {
	return &StorefrontHandler{
		storefront: storefront,
		validator:  validator.New(),
	}
}

// === PRODUCTS ===

// GetProducts обрабатывает GET /products
// Возвращает текущий видимый список (локальные фильтры либо
// результат последнего серверного поиска)
func (h *StorefrontHandler) GetProducts(c *gin.Context) {
	products := h.storefront.VisibleProducts()
	c.JSON(http.StatusOK, entity.ProductListResponse{
		Products: products,
		Total:    len(products),
	})
}

// GetCategories обрабатывает GET /products/categories
func (h *StorefrontHandler) GetCategories(c *gin.Context) {
	categories := h.storefront.Categories()
	c.JSON(http.StatusOK, entity.CategoryListResponse{
		Categories: categories,
		Total:      len(categories),
	})
}

// SetFilter обрабатывает PUT /products/filter
// Заменяет состояние фильтров и возвращает пересчитанный список
func (h *StorefrontHandler) SetFilter(c *gin.Context) {
	var req entity.FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	products := h.storefront.SetFilter(entity.FilterState{
		SearchText:       req.SearchText,
		SelectedCategory: req.SelectedCategory,
		SortKey:          entity.SortKey(req.SortKey),
	})

	c.JSON(http.StatusOK, entity.ProductListResponse{
		Products: products,
		Total:    len(products),
	})
}

// SearchProducts обрабатывает GET /products/search?value=<query>
// Выполняет серверный поиск немедленно; пустой результат - это 200
// с пустым списком, а не ошибка
func (h *StorefrontHandler) SearchProducts(c *gin.Context) {
	query := c.Query("value")

	products := h.storefront.SearchNow(c.Request.Context(), query)
	c.JSON(http.StatusOK, entity.ProductListResponse{
		Products: products,
		Total:    len(products),
	})
}

// QueueSearch обрабатывает POST /products/search/input
// Ставит поиск в очередь с debounce окном: частый ввод коалесцируется,
// к backend уходит только последний запрос
func (h *StorefrontHandler) QueueSearch(c *gin.Context) {
	var req entity.SearchInputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	h.storefront.QueueSearch(req.Value)
	c.JSON(http.StatusAccepted, entity.SuccessResponse{
		Message: "Search scheduled",
	})
}

// === CART ===

// GetCart обрабатывает GET /cart
func (h *StorefrontHandler) GetCart(c *gin.Context) {
	items, err := h.storefront.FetchCart(c.Request.Context(), sessionFrom(c))
	if err != nil {
		h.respondCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.CartResponse{
		Items: items,
		Total: service.CartTotal(items),
	})
}

// GetSummary обрабатывает GET /cart/summary (панель Order Details)
func (h *StorefrontHandler) GetSummary(c *gin.Context) {
	if _, err := h.storefront.FetchCart(c.Request.Context(), sessionFrom(c)); err != nil {
		h.respondCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.storefront.Summary())
}

// AddToCart обрабатывает POST /cart (добавление с карточки каталога)
func (h *StorefrontHandler) AddToCart(c *gin.Context) {
	var req entity.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	items, err := h.storefront.AddToCart(c.Request.Context(), sessionFrom(c), req.ProductID)
	if err != nil {
		h.respondCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.CartResponse{
		Items: items,
		Total: service.CartTotal(items),
	})
}

// UpdateQuantity обрабатывает PUT /cart (явная установка количества)
func (h *StorefrontHandler) UpdateQuantity(c *gin.Context) {
	var req entity.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	items, err := h.storefront.UpdateQuantity(c.Request.Context(), sessionFrom(c), req.ProductID, req.Qty)
	if err != nil {
		h.respondCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.CartResponse{
		Items: items,
		Total: service.CartTotal(items),
	})
}

// IncrementItem обрабатывает POST /cart/items/:id/increment
func (h *StorefrontHandler) IncrementItem(c *gin.Context) {
	h.adjustItem(c, 1)
}

// DecrementItem обрабатывает POST /cart/items/:id/decrement
// Нижняя граница не проверяется: при qty <= 0 позицию удаляет backend
func (h *StorefrontHandler) DecrementItem(c *gin.Context) {
	h.adjustItem(c, -1)
}

func (h *StorefrontHandler) adjustItem(c *gin.Context, delta int) {
	productID := c.Param("id")
	if productID == "" {
		respondError(c, http.StatusBadRequest, "Invalid product ID", "")
		return
	}

	items, err := h.storefront.AdjustQuantity(c.Request.Context(), sessionFrom(c), productID, delta)
	if err != nil {
		h.respondCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.CartResponse{
		Items: items,
		Total: service.CartTotal(items),
	})
}

// === AUTH ===

// Login обрабатывает POST /auth/login
func (h *StorefrontHandler) Login(c *gin.Context) {
	var req entity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	sess, err := h.storefront.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			respondError(c, http.StatusBadRequest, "Validation failed", service.ValidationMessage(err))
		default:
			if be, ok := infrastructure.AsBackendError(err); ok && be.StatusCode == http.StatusBadRequest && be.Message != "" {
				respondError(c, http.StatusBadRequest, "Login failed", be.Message)
				return
			}
			respondError(c, http.StatusInternalServerError, "Backend unreachable", service.MsgBackendUnreachable)
		}
		return
	}

	c.JSON(http.StatusCreated, entity.LoginResponse{
		Username: sess.Username,
		Balance:  sess.Balance,
		Token:    sess.Token,
		Notification: entity.Notification{
			Level:   entity.LevelSuccess,
			Message: service.MsgLoginSuccess,
		},
	})
}

// Logout обрабатывает POST /auth/logout
func (h *StorefrontHandler) Logout(c *gin.Context) {
	sess := sessionFrom(c)
	if sess == nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", "")
		return
	}

	if err := h.storefront.Logout(c.Request.Context(), sess); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to logout", "")
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{
		Message: "Logged out successfully",
	})
}

// respondCartError маппит ошибки корзины на HTTP статусы
// Предупреждения бизнес-правил возвращаются с текстом витрины
func (h *StorefrontHandler) respondCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotLoggedIn):
		respondError(c, http.StatusUnauthorized, "Unauthorized", service.MsgLoginRequired)
	case errors.Is(err, service.ErrAlreadyInCart):
		respondError(c, http.StatusConflict, "Already in cart", service.MsgAlreadyInCart)
	default:
		if be, ok := infrastructure.AsBackendError(err); ok && be.StatusCode == http.StatusBadRequest && be.Message != "" {
			respondError(c, http.StatusBadRequest, "Cart operation rejected", be.Message)
			return
		}
		respondError(c, http.StatusInternalServerError, "Backend unreachable", service.MsgCartUnreachable)
	}
}

func respondError(c *gin.Context, status int, errText, message string) {
	c.JSON(status, entity.ErrorResponse{
		Error:   errText,
		Message: message,
	})
}
