// Package kernel assembles the HTTP stack: global middleware, the metrics
// endpoint, and the API routes with their dependencies wired in.
package kernel

import (
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/siddhant14g/Real-shop/app/controllers"
	"github.com/siddhant14g/Real-shop/app/repositories"
	"github.com/siddhant14g/Real-shop/app/routes"
	"github.com/siddhant14g/Real-shop/app/services"
	"github.com/siddhant14g/Real-shop/pkg/metrics"
	"github.com/siddhant14g/Real-shop/pkg/middleware"
	"github.com/siddhant14g/Real-shop/pkg/reqid"
	"github.com/siddhant14g/Real-shop/pkg/router"
)

type HTTPKernel struct {
	router *router.Router
}

// NewHTTPKernel wires repositories, services and controllers on top of db
// and returns the ready-to-serve kernel.
func NewHTTPKernel(db *mongo.Database) *HTTPKernel {
	users := repositories.NewUserRepository(db)
	products := repositories.NewProductRepository(db)
	ads := repositories.NewAdvertisementRepository(db)
	orders := repositories.NewOrderRepository(db)

	ctrl := routes.Controllers{
		Auth:           controllers.NewAuthController(services.NewAuthService(users)),
		Products:       controllers.NewProductController(services.NewProductService(products)),
		Advertisements: controllers.NewAdvertisementController(services.NewAdvertisementService(ads)),
		Orders:         controllers.NewOrderController(services.NewOrderService(orders, products, users)),
	}

	r := router.New()

	// Outermost first: metrics wraps everything, recovery catches panics
	// before any other layer logs a half-finished request.
	r.Use(
		metrics.Middleware,
		middleware.Recovery,
		reqid.Middleware,
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(120, time.Minute),
	)

	r.HandleFunc("/metrics", metrics.Handler().ServeHTTP)

	routes.RegisterAPI(r, ctrl)

	return &HTTPKernel{router: r}
}

func (k *HTTPKernel) Handler() http.Handler {
	return k.router.Handler()
}

// Routes exposes the named route table for the route:list command.
func (k *HTTPKernel) Routes() *router.Router {
	return k.router
}
