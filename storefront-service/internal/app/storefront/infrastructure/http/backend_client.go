package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"qkart/pkg/metrics"
	"qkart/storefront-service/internal/app/storefront/entity"
	"qkart/storefront-service/internal/app/storefront/infrastructure"
)

const serviceName = "storefront-service"

// Имена исходящих вызовов для метрик
const (
	callFetchProducts  = "fetch_products"
	callSearchProducts = "search_products"
	callFetchCart      = "fetch_cart"
	callMutateCart     = "mutate_cart"
	callLogin          = "login"
)

// QKartClient - HTTP клиент QKart REST backend
// Реализует infrastructure.BackendClient
type QKartClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewQKartClient создает новый клиент backend API
func NewQKartClient(baseURL string, timeout time.Duration) *QKartClient {
	return &QKartClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// backendLoginResponse - тело успешного ответа POST /auth/login
type backendLoginResponse struct {
	Success  bool    `json:"success"`
	Token    string  `json:"token"`
	Username string  `json:"username"`
	Balance  float64 `json:"balance"`
}

// FetchProducts получает полный каталог: GET /products
func (c *QKartClient) FetchProducts(ctx context.Context) ([]entity.Product, error) {
	timer := metrics.NewBackendTimer(serviceName, callFetchProducts)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		timer.Observe("network_error")
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	defer resp.Body.Close()
	timer.Observe(strconv.Itoa(resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		return nil, c.backendError(resp)
	}

	var products []entity.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("failed to decode products response: %w", err)
	}

	return products, nil
}

// SearchProducts выполняет серверный поиск: GET /products/search?value=<query>
// 404 означает "ничего не найдено" и маппится в ErrSearchNotFound
func (c *QKartClient) SearchProducts(ctx context.Context, query string) ([]entity.Product, error) {
	timer := metrics.NewBackendTimer(serviceName, callSearchProducts)

	searchURL := fmt.Sprintf("%s/products/search?value=%s", c.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		timer.Observe("network_error")
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	defer resp.Body.Close()
	timer.Observe(strconv.Itoa(resp.StatusCode))

	if resp.StatusCode == http.StatusNotFound {
		return nil, infrastructure.ErrSearchNotFound
	}

	if resp.StatusCode != http.StatusOK {
		return nil, c.backendError(resp)
	}

	var products []entity.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	return products, nil
}

// FetchCart получает корзину пользователя: GET /cart с Bearer токеном
func (c *QKartClient) FetchCart(ctx context.Context, token string) ([]entity.CartEntry, error) {
	timer := metrics.NewBackendTimer(serviceName, callFetchCart)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/cart", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		timer.Observe("network_error")
		return nil, fmt.Errorf("failed to fetch cart: %w", err)
	}
	defer resp.Body.Close()
	timer.Observe(strconv.Itoa(resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		return nil, c.backendError(resp)
	}

	var entries []entity.CartEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode cart response: %w", err)
	}

	return entries, nil
}

// MutateCart добавляет или изменяет позицию корзины: POST /cart
// Backend отвечает полным актуальным списком позиций;
// удаление позиции при qty <= 0 - ответственность backend
func (c *QKartClient) MutateCart(ctx context.Context, token, productID string, qty int) ([]entity.CartEntry, error) {
	timer := metrics.NewBackendTimer(serviceName, callMutateCart)

	body, err := json.Marshal(entity.CartEntry{ProductID: productID, Qty: qty})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cart mutation: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/cart", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		timer.Observe("network_error")
		return nil, fmt.Errorf("failed to mutate cart: %w", err)
	}
	defer resp.Body.Close()
	timer.Observe(strconv.Itoa(resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		return nil, c.backendError(resp)
	}

	var entries []entity.CartEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode cart response: %w", err)
	}

	return entries, nil
}

// Login аутентифицирует пользователя: POST /auth/login
// Успех - HTTP 201 с токеном, именем и балансом
func (c *QKartClient) Login(ctx context.Context, username, password string) (*entity.Session, error) {
	timer := metrics.NewBackendTimer(serviceName, callLogin)

	body, err := json.Marshal(entity.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		timer.Observe("network_error")
		return nil, fmt.Errorf("failed to login: %w", err)
	}
	defer resp.Body.Close()
	timer.Observe(strconv.Itoa(resp.StatusCode))

	if resp.StatusCode != http.StatusCreated {
		return nil, c.backendError(resp)
	}

	var loginResp backendLoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}

	return &entity.Session{
		Token:    loginResp.Token,
		Username: loginResp.Username,
		Balance:  loginResp.Balance,
	}, nil
}

// backendError строит BackendError из не-2xx ответа
// Тело вида {"success": false, "message": "..."} читается на best-effort основе
func (c *QKartClient) backendError(resp *http.Response) error {
	var msg entity.BackendMessage
	// Тело может быть пустым или не-JSON, тогда останется только статус
	_ = json.NewDecoder(resp.Body).Decode(&msg)

	return &infrastructure.BackendError{
		StatusCode: resp.StatusCode,
		Message:    msg.Message,
	}
}
