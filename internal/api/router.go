package api

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"business-console/internal/repository"
	"business-console/internal/service"
)

// Deps is everything the router serves.
type Deps struct {
	Auth      *service.AuthService
	Tenants   *repository.TenantRepository
	Cart      *service.CartService
	Checkout  *service.CheckoutService
	Orders    *service.OrderService
	Tour      *repository.OnboardingRepository
	JWTSecret []byte

	// RateLimit and RateBurst throttle login, signup, checkout and order
	// creation per client IP.
	RateLimit rate.Limit
	RateBurst int
}

func NewRouter(d Deps) *echo.Echo {
	userHandler := NewUserHandler(d.Auth, d.Tenants)
	datasetHandler := NewDatasetHandler(d.Tenants)
	showcaseHandler := NewShowcaseHandler(d.Tenants, d.Cart, d.Checkout, d.Tour)
	orderHandler := NewOrderHandler(d.Orders)

	e := echo.New()
	e.HideBanner = true

	limiterConfig := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      d.RateLimit,
				Burst:     d.RateBurst,
				ExpiresIn: 3 * time.Minute,
			}),
		IdentifierExtractor: func(context echo.Context) (string, error) {
			return context.RealIP(), nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
	}
	limiter := middleware.RateLimiterWithConfig(limiterConfig)

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Public routes
	e.POST("/signup", userHandler.Signup, limiter)
	e.POST("/login", userHandler.Login, limiter)
	e.GET("/showcase/:tenant", showcaseHandler.GetShowcase)
	e.GET("/cart", showcaseHandler.GetCart)
	e.POST("/cart/items", showcaseHandler.AddItem)
	e.PATCH("/cart/items/:id", showcaseHandler.UpdateItem)
	e.DELETE("/cart/items/:id", showcaseHandler.RemoveItem)
	e.DELETE("/cart", showcaseHandler.ClearCart)
	e.POST("/cart/checkout", showcaseHandler.Checkout, limiter)
	e.POST("/orders", orderHandler.CreateOrder, limiter)
	e.GET("/tour", showcaseHandler.GetTour)
	e.PUT("/tour", showcaseHandler.MarkTourShown)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]interface{}{
			"status":  "ok",
			"service": "business-console",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	// Console routes
	console := e.Group("/console")
	console.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: d.JWTSecret,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(service.JwtCustomClaims)
		},
	}))
	console.GET("/dataset", datasetHandler.GetDataset)
	console.PUT("/dataset", datasetHandler.SaveDataset)
	console.PUT("/dataset/:field", datasetHandler.SaveField)
	console.PUT("/profile", userHandler.UpdateProfile)

	return e
}
