package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/muhammadheryan/marketplace/client"
	"github.com/muhammadheryan/marketplace/constant"
	"github.com/muhammadheryan/marketplace/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method string
	path   string
	query  string
	auth   string
	body   string
}

// fakeServer answers "METHOD path" keys from routes and records every request.
type fakeServer struct {
	routes map[string]func(w http.ResponseWriter)

	mu  sync.Mutex
	log []recorded
}

func newFakeServer(t *testing.T) (*fakeServer, *httptest.Server) {
	fs := &fakeServer{routes: map[string]func(w http.ResponseWriter){}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		fs.mu.Lock()
		fs.log = append(fs.log, recorded{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.RawQuery,
			auth:   r.Header.Get("Authorization"),
			body:   string(raw),
		})
		fs.mu.Unlock()
		if h, ok := fs.routes[r.Method+" "+r.URL.Path]; ok {
			h(w)
			return
		}
		reply(http.StatusNotFound, model.Response{Success: false, Message: "Endpoint not found"})(w)
	}))
	t.Cleanup(srv.Close)
	return fs, srv
}

func (fs *fakeServer) calls() []recorded {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return append([]recorded(nil), fs.log...)
}

func reply(status int, body interface{}) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
}

type harness struct {
	server      *fakeServer
	client      *client.Client
	manager     *client.Manager
	navigations int
}

func newHarness(t *testing.T, token string) *harness {
	h := &harness{}
	fs, srv := newFakeServer(t)
	h.server = fs
	h.manager = client.NewManager(client.NewMemoryStore(), client.NavigatorFunc(func() { h.navigations++ }))
	if token != "" {
		require.NoError(t, h.manager.Save(token, &model.UserEntity{ID: 1, Name: "Dana"}))
	}
	h.client = client.New(srv.URL+"/api/", h.manager)
	return h
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         interface{}
		wantErr      string
		wantLoggedIn bool
	}{
		{
			name:   "success stores session",
			status: http.StatusOK,
			body: model.Response{Success: true, Message: "Login successful", Token: "jwt",
				User: model.UserEntity{ID: 9, Name: "Dana", Email: "dana@example.com"}},
			wantLoggedIn: true,
		},
		{
			name:    "bad credentials",
			status:  http.StatusUnauthorized,
			body:    model.Response{Success: false, Message: "Invalid credentials", Code: "UNAUTHORIZED"},
			wantErr: "Invalid credentials",
		},
		{
			name:    "empty error body",
			status:  http.StatusBadGateway,
			body:    "",
			wantErr: "HTTP Error 502",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, "")
			h.server.routes["POST /api/auth/login"] = reply(tt.status, tt.body)

			res, err := h.client.Login(context.Background(), "dana@example.com", "secret1")
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				var apiErr *client.APIError
				require.True(t, errors.As(err, &apiErr))
				assert.Equal(t, tt.status, apiErr.StatusCode)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "jwt", res.Token)
				assert.Equal(t, uint64(9), h.manager.User().ID)
			}
			assert.Equal(t, tt.wantLoggedIn, h.manager.IsLoggedIn())
			// a failed login is not a session expiry
			assert.Equal(t, 0, h.navigations)
			assert.Contains(t, h.server.calls()[0].body, `"email":"dana@example.com"`)
		})
	}
}

func TestProtectedCallWithoutToken(t *testing.T) {
	h := newHarness(t, "")

	_, err := h.client.Me(context.Background())
	assert.True(t, errors.Is(err, client.ErrNotAuthenticated))
	assert.Equal(t, "Not authenticated. Please log in.", err.Error())
	assert.Empty(t, h.server.calls())
}

func TestUnauthorizedEndsSession(t *testing.T) {
	h := newHarness(t, "stale")
	h.server.routes["GET /api/products/user/my-products"] = reply(http.StatusUnauthorized,
		model.Response{Success: false, Message: "Invalid or expired token", Code: "UNAUTHORIZED"})

	_, err := h.client.MyProducts(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Invalid or expired token", err.Error())
	assert.Equal(t, "Bearer stale", h.server.calls()[0].auth)
	assert.False(t, h.manager.IsLoggedIn())
	assert.Equal(t, 1, h.navigations)
}

func TestOtherErrorsKeepSession(t *testing.T) {
	h := newHarness(t, "tok")
	h.server.routes["DELETE /api/products/5"] = reply(http.StatusNotFound,
		model.Response{Success: false, Message: "Product not found or unauthorized", Code: "NOT_FOUND"})

	err := h.client.DeleteProduct(context.Background(), 5)
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
	assert.True(t, h.manager.IsLoggedIn())
	assert.Equal(t, 0, h.navigations)
}

func TestLogout(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{name: "server ok", status: http.StatusOK},
		{name: "server down still clears", status: http.StatusInternalServerError},
		{name: "expired token navigates once", status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, "tok")
			h.server.routes["POST /api/auth/logout"] = reply(tt.status, model.Response{Success: tt.status == http.StatusOK})

			h.client.Logout(context.Background())
			assert.False(t, h.manager.IsLoggedIn())
			assert.Equal(t, 1, h.navigations)
			require.Len(t, h.server.calls(), 1)
			assert.Equal(t, "Bearer tok", h.server.calls()[0].auth)
		})
	}
}

func TestLogout_NoSessionSkipsServer(t *testing.T) {
	h := newHarness(t, "")
	h.client.Logout(context.Background())
	assert.Empty(t, h.server.calls())
	assert.Equal(t, 1, h.navigations)
}

func TestDeleteAccount(t *testing.T) {
	h := newHarness(t, "tok")
	h.server.routes["DELETE /api/users/me"] = reply(http.StatusOK, model.Response{Success: true, Message: "Account deleted successfully"})

	require.NoError(t, h.client.DeleteAccount(context.Background()))
	assert.False(t, h.manager.IsLoggedIn())
}

func TestRegisterAndProfile(t *testing.T) {
	h := newHarness(t, "tok")
	user := model.UserEntity{ID: 2, Name: "Dana", Email: "dana@example.com"}
	h.server.routes["POST /api/auth/register"] = reply(http.StatusCreated, model.Response{Success: true, User: user})
	h.server.routes["GET /api/auth/verify"] = reply(http.StatusOK, model.Response{Success: true, Data: user})
	h.server.routes["PUT /api/users/me"] = reply(http.StatusOK, model.Response{Success: true, Data: user})
	h.server.routes["PUT /api/users/me/password"] = reply(http.StatusOK, model.Response{Success: true})

	got, err := h.client.Register(context.Background(), "Dana", "dana@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), got.ID)
	assert.Empty(t, h.server.calls()[0].auth)

	got, err = h.client.Verify(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "dana@example.com", got.Email)

	name := "Dana B"
	_, err = h.client.UpdateMe(context.Background(), &model.UpdateProfileRequest{Name: &name})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Dana B","email":null}`, h.server.calls()[2].body)

	require.NoError(t, h.client.ChangePassword(context.Background(), "old", "newpass"))
	assert.JSONEq(t, `{"currentPassword":"old","newPassword":"newpass"}`, h.server.calls()[3].body)
}

func TestCatalog(t *testing.T) {
	h := newHarness(t, "")
	h.server.routes["GET /api/categories"] = reply(http.StatusOK, model.Response{Success: true,
		Data: []model.Category{{ID: 1, Name: "Furniture", Slug: "furniture"}}})
	h.server.routes["GET /api/categories/furniture"] = reply(http.StatusOK, model.Response{Success: true,
		Data: model.Category{ID: 1, Slug: "furniture", Subcategories: []model.Subcategory{{ID: 4, Name: "Chairs"}}}})
	h.server.routes["GET /api/categories/1/subcategories"] = reply(http.StatusOK, model.Response{Success: true,
		Data: []model.Subcategory{{ID: 4, CategoryID: 1, Name: "Chairs"}}})

	categories, err := h.client.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "furniture", categories[0].Slug)

	category, err := h.client.Category(context.Background(), "furniture")
	require.NoError(t, err)
	assert.Len(t, category.Subcategories, 1)

	subcategories, err := h.client.Subcategories(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Chairs", subcategories[0].Name)

	_, err = h.client.Category(context.Background(), "missing")
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Endpoint not found", apiErr.Message)
}

func TestProducts(t *testing.T) {
	h := newHarness(t, "")
	h.server.routes["GET /api/products"] = reply(http.StatusOK, model.Response{Success: true,
		Data:       []model.ProductListItem{{ProductEntity: model.ProductEntity{ID: 11, Title: "Sofa"}}},
		Pagination: &model.Pagination{Page: 2, Limit: 5, Total: 6, Pages: 2}})
	h.server.routes["GET /api/products/11"] = reply(http.StatusOK, model.Response{Success: true,
		Data: model.ProductDetail{ProductEntity: model.ProductEntity{ID: 11, Title: "Sofa"},
			Images: []model.ProductImage{{ImageURL: "a.jpg", IsPrimary: true}}}})

	minPrice := 10.5
	res, err := h.client.Products(context.Background(), model.ProductFilter{
		CategoryID:     3,
		Search:         "sofa bed",
		MinPrice:       &minPrice,
		ConditionState: constant.ConditionGood,
	}, 2, 5)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, int64(6), res.Pagination.Total)
	assert.Equal(t, "category_id=3&condition_state=good&limit=5&min_price=10.5&page=2&search=sofa+bed", h.server.calls()[0].query)

	detail, err := h.client.Product(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, "Sofa", detail.Title)
	assert.Len(t, detail.Images, 1)
}

func TestCreateProduct(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		req     *model.CreateProductRequest
		wantID  uint64
		wantErr error
		calls   int
	}{
		{
			name:  "success",
			token: "tok",
			req: &model.CreateProductRequest{CategoryID: 1, Title: "Sofa", Description: "Blue",
				LocationCity: "Haifa"},
			wantID: 42,
			calls:  1,
		},
		{
			name:    "missing fields checked locally",
			token:   "tok",
			req:     &model.CreateProductRequest{CategoryID: 1, Title: "  ", Description: "Blue", LocationCity: "Haifa"},
			wantErr: client.ErrMissingFields,
		},
		{
			name:    "not logged in",
			req:     &model.CreateProductRequest{CategoryID: 1, Title: "Sofa", Description: "Blue", LocationCity: "Haifa"},
			wantErr: client.ErrNotAuthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.token)
			h.server.routes["POST /api/products"] = reply(http.StatusCreated, model.Response{Success: true,
				Data: model.CreateProductResponse{ProductID: 42}})

			id, err := h.client.CreateProduct(context.Background(), tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantID, id)
			assert.Len(t, h.server.calls(), tt.calls)
		})
	}
}

func TestMarkGiven(t *testing.T) {
	name := "Noa"
	blank := " "
	recipient := uint64(4)

	tests := []struct {
		name    string
		req     *model.MarkGivenRequest
		wantErr error
		calls   int
	}{
		{name: "by name", req: &model.MarkGivenRequest{RecipientName: &name}, calls: 1},
		{name: "by id", req: &model.MarkGivenRequest{RecipientID: &recipient}, calls: 1},
		{name: "blank name", req: &model.MarkGivenRequest{RecipientName: &blank}, wantErr: client.ErrMissingRecipient},
		{name: "nothing", req: &model.MarkGivenRequest{}, wantErr: client.ErrMissingRecipient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, "tok")
			h.server.routes["POST /api/products/8/mark-given"] = reply(http.StatusOK, model.Response{Success: true})

			err := h.client.MarkGiven(context.Background(), 8, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Len(t, h.server.calls(), tt.calls)
		})
	}
}

func TestUpdateAndMyProducts(t *testing.T) {
	h := newHarness(t, "tok")
	h.server.routes["PUT /api/products/8"] = reply(http.StatusOK, model.Response{Success: true})
	h.server.routes["GET /api/products/user/my-products"] = reply(http.StatusOK, model.Response{Success: true,
		Data: []model.ProductListItem{}})

	status := constant.ProductStatusReserved
	require.NoError(t, h.client.UpdateProduct(context.Background(), 8, &model.UpdateProductRequest{Status: &status}))
	assert.Contains(t, h.server.calls()[0].body, `"status":"reserved"`)

	items, err := h.client.MyProducts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
