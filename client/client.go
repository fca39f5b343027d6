package client

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

	"github.com/muhammadheryan/marketplace/model"
)

var (
	ErrNotAuthenticated = errors.New("Not authenticated. Please log in.")
	ErrMissingFields    = errors.New("Missing required fields: title, description, category_id, location_city")
	ErrMissingRecipient = errors.New("Must provide either recipient_name or recipient_id")
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *APIError) Error() string {
	return e.Message
}

// envelope mirrors model.Response with the payloads left raw.
type envelope struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	Code       string            `json:"code"`
	Data       json.RawMessage   `json:"data"`
	Token      string            `json:"token"`
	User       json.RawMessage   `json:"user"`
	Pagination *model.Pagination `json:"pagination"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Manager
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// New builds a client for the API rooted at baseURL, e.g. http://localhost:3000/api.
func New(baseURL string, session *Manager, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		session:    session,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Session() *Manager {
	return c.session
}

// call performs one request. Protected calls without a token fail locally, and a
// 401 on a protected call ends the session.
func (c *Client) call(ctx context.Context, method, path string, body interface{}, requiresAuth bool) (*envelope, error) {
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	if requiresAuth {
		token := c.session.Token()
		if token == "" {
			return nil, ErrNotAuthenticated
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if requiresAuth && resp.StatusCode == http.StatusUnauthorized {
			c.session.Logout()
		}
		msg := env.Message
		if decodeErr != nil || msg == "" {
			msg = fmt.Sprintf("HTTP Error %d", resp.StatusCode)
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg, Code: env.Code}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode response: %w", decodeErr)
	}
	return &env, nil
}

func decodeInto(raw json.RawMessage, out interface{}) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*model.UserEntity, error) {
	env, err := c.call(ctx, http.MethodPost, "/auth/register", model.RegisterRequest{Name: name, Email: email, Password: password}, false)
	if err != nil {
		return nil, err
	}
	var user model.UserEntity
	if err := decodeInto(env.User, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login stores the returned token and user as the current session.
func (c *Client) Login(ctx context.Context, email, password string) (*model.LoginResponse, error) {
	env, err := c.call(ctx, http.MethodPost, "/auth/login", model.LoginRequest{Email: email, Password: password}, false)
	if err != nil {
		return nil, err
	}
	var user model.UserEntity
	if err := decodeInto(env.User, &user); err != nil {
		return nil, err
	}
	if env.Token != "" {
		if err := c.session.Save(env.Token, &user); err != nil {
			return nil, fmt.Errorf("save session: %w", err)
		}
	}
	return &model.LoginResponse{Token: env.Token, User: &user}, nil
}

// Logout revokes the token server side when possible, then always ends the local session.
func (c *Client) Logout(ctx context.Context) {
	if c.session.IsLoggedIn() {
		_, err := c.call(ctx, http.MethodPost, "/auth/logout", nil, true)
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			// call already ended the session
			return
		}
	}
	c.session.Logout()
}

func (c *Client) Verify(ctx context.Context) (*model.UserEntity, error) {
	return c.userCall(ctx, http.MethodGet, "/auth/verify", nil)
}

func (c *Client) Me(ctx context.Context) (*model.UserEntity, error) {
	return c.userCall(ctx, http.MethodGet, "/users/me", nil)
}

func (c *Client) UpdateMe(ctx context.Context, req *model.UpdateProfileRequest) (*model.UserEntity, error) {
	return c.userCall(ctx, http.MethodPut, "/users/me", req)
}

func (c *Client) userCall(ctx context.Context, method, path string, body interface{}) (*model.UserEntity, error) {
	env, err := c.call(ctx, method, path, body, true)
	if err != nil {
		return nil, err
	}
	var user model.UserEntity
	if err := decodeInto(env.Data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	_, err := c.call(ctx, http.MethodPut, "/users/me/password",
		model.ChangePasswordRequest{CurrentPassword: currentPassword, NewPassword: newPassword}, true)
	return err
}

// DeleteAccount clears the local session once the server confirms the deletion.
func (c *Client) DeleteAccount(ctx context.Context) error {
	if _, err := c.call(ctx, http.MethodDelete, "/users/me", nil, true); err != nil {
		return err
	}
	return c.session.Clear()
}

func (c *Client) Categories(ctx context.Context) ([]model.Category, error) {
	env, err := c.call(ctx, http.MethodGet, "/categories", nil, false)
	if err != nil {
		return nil, err
	}
	var categories []model.Category
	return categories, decodeInto(env.Data, &categories)
}

func (c *Client) Category(ctx context.Context, slug string) (*model.Category, error) {
	env, err := c.call(ctx, http.MethodGet, "/categories/"+url.PathEscape(slug), nil, false)
	if err != nil {
		return nil, err
	}
	var category model.Category
	if err := decodeInto(env.Data, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) Subcategories(ctx context.Context, categoryID uint64) ([]model.Subcategory, error) {
	env, err := c.call(ctx, http.MethodGet, "/categories/"+strconv.FormatUint(categoryID, 10)+"/subcategories", nil, false)
	if err != nil {
		return nil, err
	}
	var subcategories []model.Subcategory
	return subcategories, decodeInto(env.Data, &subcategories)
}

func (c *Client) Products(ctx context.Context, filter model.ProductFilter, page, limit int) (*model.ProductListResponse, error) {
	q := url.Values{}
	if filter.CategoryID != 0 {
		q.Set("category_id", strconv.FormatUint(filter.CategoryID, 10))
	}
	if filter.SubcategoryID != 0 {
		q.Set("subcategory_id", strconv.FormatUint(filter.SubcategoryID, 10))
	}
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	if filter.LocationCity != "" {
		q.Set("location_city", filter.LocationCity)
	}
	if filter.MinPrice != nil {
		q.Set("min_price", strconv.FormatFloat(*filter.MinPrice, 'f', -1, 64))
	}
	if filter.MaxPrice != nil {
		q.Set("max_price", strconv.FormatFloat(*filter.MaxPrice, 'f', -1, 64))
	}
	if filter.ConditionState != "" {
		q.Set("condition_state", string(filter.ConditionState))
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	path := "/products"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	env, err := c.call(ctx, http.MethodGet, path, nil, false)
	if err != nil {
		return nil, err
	}

	res := &model.ProductListResponse{Items: []model.ProductListItem{}}
	if err := decodeInto(env.Data, &res.Items); err != nil {
		return nil, err
	}
	if env.Pagination != nil {
		res.Pagination = *env.Pagination
	}
	return res, nil
}

func (c *Client) Product(ctx context.Context, id uint64) (*model.ProductDetail, error) {
	env, err := c.call(ctx, http.MethodGet, productPath(id), nil, false)
	if err != nil {
		return nil, err
	}
	var product model.ProductDetail
	if err := decodeInto(env.Data, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct checks the required fields locally before calling the server.
func (c *Client) CreateProduct(ctx context.Context, req *model.CreateProductRequest) (uint64, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" ||
		req.CategoryID == 0 || strings.TrimSpace(req.LocationCity) == "" {
		return 0, ErrMissingFields
	}

	env, err := c.call(ctx, http.MethodPost, "/products", req, true)
	if err != nil {
		return 0, err
	}
	var res model.CreateProductResponse
	if err := decodeInto(env.Data, &res); err != nil {
		return 0, err
	}
	return res.ProductID, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id uint64, req *model.UpdateProductRequest) error {
	_, err := c.call(ctx, http.MethodPut, productPath(id), req, true)
	return err
}

func (c *Client) DeleteProduct(ctx context.Context, id uint64) error {
	_, err := c.call(ctx, http.MethodDelete, productPath(id), nil, true)
	return err
}

func (c *Client) MyProducts(ctx context.Context) ([]model.ProductListItem, error) {
	env, err := c.call(ctx, http.MethodGet, "/products/user/my-products", nil, true)
	if err != nil {
		return nil, err
	}
	items := []model.ProductListItem{}
	return items, decodeInto(env.Data, &items)
}

// MarkGiven requires a recipient name or id before calling the server.
func (c *Client) MarkGiven(ctx context.Context, id uint64, req *model.MarkGivenRequest) error {
	if (req.RecipientName == nil || strings.TrimSpace(*req.RecipientName) == "") && req.RecipientID == nil {
		return ErrMissingRecipient
	}
	_, err := c.call(ctx, http.MethodPost, productPath(id)+"/mark-given", req, true)
	return err
}

func productPath(id uint64) string {
	return "/products/" + strconv.FormatUint(id, 10)
}
