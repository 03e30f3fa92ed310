// Package routes declares the HTTP surface of the API.
package routes

import (
	"github.com/siddhant14g/Real-shop/app/controllers"
	"github.com/siddhant14g/Real-shop/pkg/middleware"
	"github.com/siddhant14g/Real-shop/pkg/rbac"
	"github.com/siddhant14g/Real-shop/pkg/router"
)

// Controllers bundles everything RegisterAPI mounts.
type Controllers struct {
	Auth           *controllers.AuthController
	Products       *controllers.ProductController
	Advertisements *controllers.AdvertisementController
	Orders         *controllers.OrderController
}

// RegisterAPI mounts all endpoints. Reads of the catalog and ads are public;
// everything else requires a bearer token, with admin routes double-gated by
// role.
func RegisterAPI(r *router.Router, c Controllers) {
	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", "auth.register", c.Auth.Register)
	auth.Post("/login", "auth.login", c.Auth.Login)

	// Public catalog reads.
	api.Get("/products", "products.list", c.Products.List)
	api.Get("/products/search", "products.search", c.Products.Search)
	api.Get("/advertisements", "ads.list", c.Advertisements.List)

	adminOnly := rbac.HasRole(rbac.RoleAdmin)

	admin := api.Group("", middleware.Auth, adminOnly)
	admin.Post("/products", "products.create", c.Products.Create)
	admin.Put("/products/{id}/toggle", "products.toggle", c.Products.Toggle)
	admin.Delete("/products/{id}", "products.delete", c.Products.Delete)
	admin.Post("/advertisements", "ads.create", c.Advertisements.Create)
	admin.Delete("/advertisements/{id}", "ads.delete", c.Advertisements.Delete)
	admin.Get("/orders", "orders.all", c.Orders.All)
	admin.Put("/orders/{id}/status", "orders.status", c.Orders.UpdateStatus)
	admin.Post("/orders/{id}/bill", "orders.bill", c.Orders.UploadBill)

	// Owner-scoped order routes; ownership itself is checked in the service.
	user := api.Group("", middleware.Auth)
	user.Post("/orders", "orders.place", c.Orders.Place)
	user.Get("/orders/my-orders", "orders.mine", c.Orders.MyOrders)
	user.Put("/orders/{id}", "orders.update", c.Orders.Update)
	user.Delete("/orders/{id}", "orders.delete", c.Orders.Delete)
}
