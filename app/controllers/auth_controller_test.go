package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/siddhant14g/Real-shop/app/controllers"
	"github.com/siddhant14g/Real-shop/app/models"
	"github.com/siddhant14g/Real-shop/app/routes"
	"github.com/siddhant14g/Real-shop/app/services"
	"github.com/siddhant14g/Real-shop/pkg/apperr"
	"github.com/siddhant14g/Real-shop/pkg/router"
)

type memUserStore struct {
	byEmail map[string]*models.User
}

func (f *memUserStore) Create(_ context.Context, u *models.User) error {
	u.ID = primitive.NewObjectID()
	u.CreatedAt = time.Now()
	cp := *u
	f.byEmail[u.Email] = &cp
	return nil
}

func (f *memUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, apperr.NotFound("User not found")
	}
	cp := *u
	return &cp, nil
}

func authTestRouter() *router.Router {
	svc := services.NewAuthService(&memUserStore{byEmail: map[string]*models.User{}})
	r := router.New()
	routes.RegisterAPI(r, routes.Controllers{
		Auth:           controllers.NewAuthController(svc),
		Products:       &controllers.ProductController{},
		Advertisements: &controllers.AdvertisementController{},
		Orders:         &controllers.OrderController{},
	})
	return r
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRegisterEndpoint(t *testing.T) {
	r := authTestRouter()

	rec := postJSON(t, r.Handler(), "/api/auth/register",
		`{"name":"Asha","email":"asha@example.com","password":"secret123"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var body struct {
		Message string `json:"message"`
		Data    struct {
			Token string         `json:"token"`
			User  map[string]any `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "User registered successfully", body.Message)
	assert.NotEmpty(t, body.Data.Token)
	assert.Equal(t, "customer", body.Data.User["role"])
	assert.NotContains(t, body.Data.User, "password")
}

func TestRegisterValidatesPayload(t *testing.T) {
	r := authTestRouter()

	rec := postJSON(t, r.Handler(), "/api/auth/register",
		`{"name":"A","email":"not-an-email","password":"x"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestLoginEndpoint(t *testing.T) {
	r := authTestRouter()
	postJSON(t, r.Handler(), "/api/auth/register",
		`{"name":"Asha","email":"asha@example.com","password":"secret123"}`)

	ok := postJSON(t, r.Handler(), "/api/auth/login",
		`{"email":"asha@example.com","password":"secret123"}`)
	assert.Equal(t, http.StatusOK, ok.Code)

	bad := postJSON(t, r.Handler(), "/api/auth/login",
		`{"email":"asha@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	r := authTestRouter()

	rec := postJSON(t, r.Handler(), "/api/orders", `{"items":[]}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
