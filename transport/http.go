package transport

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	categoryapp "github.com/muhammadheryan/marketplace/application/category"
	productapp "github.com/muhammadheryan/marketplace/application/product"
	userapp "github.com/muhammadheryan/marketplace/application/user"
	"github.com/muhammadheryan/marketplace/cmd/config"
	"github.com/muhammadheryan/marketplace/model"
	"github.com/muhammadheryan/marketplace/utils/metrics"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RestHandler struct {
	UserApp     userapp.UserApp
	CategoryApp categoryapp.CategoryApp
	ProductApp  productapp.ProductApp

	development    bool
	internalAPIKey string
}

func NewTransport(cfg *config.Config, userApp userapp.UserApp, categoryApp categoryapp.CategoryApp, productApp productapp.ProductApp, m *metrics.Metrics) http.Handler {
	router := mux.NewRouter()

	rh := &RestHandler{
		UserApp:        userApp,
		CategoryApp:    categoryApp,
		ProductApp:     productApp,
		development:    cfg.IsDevelopment(),
		internalAPIKey: cfg.Internal.APIKey,
	}

	// Swagger UI
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)
	if m != nil {
		router.Handle("/metrics", m.Handler()).Methods(http.MethodGet)
	}

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", rh.Health).Methods(http.MethodGet)

	// auth
	api.HandleFunc("/auth/register", rh.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", rh.Login).Methods(http.MethodPost)
	api.Handle("/auth/verify", rh.protect(rh.Verify)).Methods(http.MethodGet)
	api.Handle("/auth/logout", rh.protect(rh.Logout)).Methods(http.MethodPost)

	// users
	api.Handle("/users/me", rh.protect(rh.GetMe)).Methods(http.MethodGet)
	api.Handle("/users/me", rh.protect(rh.UpdateMe)).Methods(http.MethodPut)
	api.Handle("/users/me", rh.protect(rh.DeleteMe)).Methods(http.MethodDelete)
	api.Handle("/users/me/password", rh.protect(rh.ChangePassword)).Methods(http.MethodPut)
	api.Handle("/users/me/products", rh.protect(rh.MyProducts)).Methods(http.MethodGet)

	// categories
	api.HandleFunc("/categories", rh.ListCategories).Methods(http.MethodGet)
	api.HandleFunc("/categories/{id:[0-9]+}/subcategories", rh.ListSubcategories).Methods(http.MethodGet)
	api.HandleFunc("/categories/{slug}", rh.GetCategory).Methods(http.MethodGet)

	// products
	api.HandleFunc("/products", rh.ListProducts).Methods(http.MethodGet)
	api.Handle("/products", rh.protect(rh.CreateProduct)).Methods(http.MethodPost)
	api.Handle("/products/user/my-products", rh.protect(rh.MyProducts)).Methods(http.MethodGet)
	api.HandleFunc("/products/{id:[0-9]+}", rh.GetProduct).Methods(http.MethodGet)
	api.Handle("/products/{id:[0-9]+}", rh.protect(rh.UpdateProduct)).Methods(http.MethodPut)
	api.Handle("/products/{id:[0-9]+}", rh.protect(rh.DeleteProduct)).Methods(http.MethodDelete)
	api.Handle("/products/{id:[0-9]+}/mark-given", rh.protect(rh.MarkGiven)).Methods(http.MethodPost)

	// internal routes
	internal := router.PathPrefix("/internal/v1").Subrouter()
	internal.Use(rh.InternalMiddleware())
	internal.HandleFunc("/categories", rh.CreateCategory).Methods(http.MethodPost)
	internal.HandleFunc("/categories/{id:[0-9]+}/subcategories", rh.CreateSubcategory).Methods(http.MethodPost)

	router.NotFoundHandler = http.HandlerFunc(rh.NotFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(rh.NotFound)

	// middleware
	router.Use(LoggingMiddleware())
	if m != nil {
		router.Use(m.Middleware())
	}

	return router
}

// Health handler
// @Summary Health check
// @Description Reports that the server is running
// @Tags Health
// @Produce json
// @Success 200 {object} model.HealthResponse
// @Router /api/health [get]
func (s *RestHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(model.HealthResponse{
		Status:    "OK",
		Message:   "Server is running",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *RestHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, model.Response{Message: "Endpoint not found"})
}

func pathID(r *http.Request, name string) (uint64, error) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 64)
	if err != nil || id == 0 {
		return 0, invalidParam(name)
	}
	return id, nil
}
