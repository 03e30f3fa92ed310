package rbac

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/siddhant14g/Real-shop/pkg/middleware"
)

func TestCheckRole(t *testing.T) {
	assert.True(t, CheckRole(RoleAdmin, RoleAdmin).Allowed)
	assert.True(t, CheckRole(RoleCustomer, RoleCustomer, RoleAdmin).Allowed)

	d := CheckRole(RoleCustomer, RoleAdmin)
	assert.False(t, d.Allowed)
	assert.NotEmpty(t, d.Reason)
}

func TestCheckOwner(t *testing.T) {
	assert.True(t, CheckOwner("abc", "abc").Allowed)

	d := CheckOwner("abc", "xyz")
	assert.False(t, d.Allowed)
	assert.NotEmpty(t, d.Reason)
}

func TestHasRoleMiddleware(t *testing.T) {
	handler := HasRole(RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	cases := []struct {
		name string
		role string
		want int
	}{
		{"admin passes", RoleAdmin, http.StatusNoContent},
		{"customer blocked", RoleCustomer, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/orders", nil)
			req = req.WithContext(middleware.WithIdentity(req.Context(), "u1", tc.role))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestHasRoleWithoutIdentity(t *testing.T) {
	handler := HasRole(RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
