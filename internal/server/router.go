package server

import (
	"time"

	"github.com/gin-gonic/gin"

	"storefront/internal/handlers"
	"storefront/internal/metrics"
	"storefront/internal/middleware"
	"storefront/internal/services"
)

type Deps struct {
	Services     *services.Services
	Resolver     middleware.UserResolver
	Ping         handlers.Pinger
	StoreTimeout time.Duration
}

func NewRouter(deps Deps) *gin.Engine {
	handlers.RegisterValidators()
	if deps.StoreTimeout <= 0 {
		deps.StoreTimeout = 5 * time.Second
	}
	svc := deps.Services

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		metrics.Middleware(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(),
		middleware.Deadline(deps.StoreTimeout),
	)

	r.GET("/", handlers.Home())
	r.GET("/healthz", handlers.Health(deps.Ping))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	userAuth := middleware.UserAuth(deps.Resolver)
	adminOnly := middleware.AdminOnly()

	api := r.Group("/api")

	users := api.Group("/users")
	{
		users.POST("/register", handlers.Register(svc.Users))
		users.POST("/login", handlers.Login(svc.Users))
		users.GET("/me", userAuth, handlers.GetMe())
		users.POST("/profile", userAuth, handlers.UpdateProfilePicture(svc.Users))
		users.POST("/change-password", userAuth, handlers.ChangePassword(svc.Users))
		users.GET("", userAuth, adminOnly, handlers.ListUsers(svc.Users))
		users.PUT("/:userId", userAuth, adminOnly, handlers.UpdateUserRoles(svc.Users))
		users.DELETE("/:userId", userAuth, adminOnly, handlers.DeleteUser(svc.Users))
	}

	categories := api.Group("/categories")
	{
		categories.GET("", handlers.ListCategories(svc.Catalog))
		categories.POST("", userAuth, handlers.CreateCategory(svc.Catalog))
		categories.POST("/:categoryId", userAuth, handlers.CreateSubCategory(svc.Catalog))
	}

	products := api.Group("/products", userAuth)
	{
		products.POST("", handlers.CreateProduct(svc.Products))
		products.GET("", handlers.ListProducts(svc.Products))
		products.GET("/categories/:categoryId", handlers.ListProductsByCategory(svc.Products))
		products.GET("/:productId", handlers.GetProduct(svc.Products))
		products.PUT("/:productId", handlers.UpdateProduct(svc.Products))
		products.DELETE("/:productId", handlers.DeleteProduct(svc.Products))
	}

	addresses := api.Group("/addresses", userAuth)
	{
		addresses.POST("/new", handlers.CreateAddress(svc.Addresses))
		addresses.GET("/me", handlers.GetMyAddress(svc.Addresses))
		addresses.PUT("/:addressId", handlers.UpdateAddress(svc.Addresses))
		addresses.DELETE("/:addressId", handlers.DeleteAddress(svc.Addresses))
	}

	carts := api.Group("/carts", userAuth)
	{
		carts.POST("", handlers.CreateCart(svc.Carts))
		carts.GET("/me", handlers.GetMyCart(svc.Carts))
		carts.DELETE("/me", handlers.ClearMyCart(svc.Carts))
	}

	orders := api.Group("/orders", userAuth)
	{
		orders.POST("/place", handlers.PlaceOrder(svc.Orders))
		orders.GET("/all", adminOnly, handlers.ListAllOrders(svc.Orders))
		orders.GET("/me", handlers.ListMyOrders(svc.Orders))
		orders.POST("/:orderId", handlers.UpdateOrderStatus(svc.Orders))
		orders.DELETE("/:orderId", adminOnly, handlers.DeleteOrder(svc.Orders))
	}

	return r
}
