package handlers

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/kruathong/pos_ledger_backend/cmd/docs"
	portssvc "github.com/kruathong/pos_ledger_backend/internal/core/ports/services"
	"github.com/kruathong/pos_ledger_backend/internal/middleware"
	"github.com/kruathong/pos_ledger_backend/internal/platform/config"
	"github.com/shopspring/decimal"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerCustomValidators()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Setup API v1 routes, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1")

	// Delegate route registration to specific handlers, passing required services
	registerStockRoutes(v1, services.Stock)
	registerTransactionRoutes(v1, services.Ledger)
	registerOrderRoutes(v1, services.Order)
	registerReportRoutes(v1, services.Reporting)

	// Admin sync endpoints run destructive maintenance work; rate limit them.
	admin := v1.Group("/admin", middleware.RateLimit(newAdminRateLimiter(cfg)))
	registerReconciliationRoutes(admin, services.Reconciliation)
}

// newAdminRateLimiter builds an in-memory limiter from the configured rate.
func newAdminRateLimiter(cfg *config.Config) *limiter.Limiter {
	rate, err := limiter.NewRateFromFormatted(cfg.AdminRateLimit)
	if err != nil {
		log.Printf("Warning: Invalid ADMIN_RATE_LIMIT ('%s'). Defaulting to 5-M.\n", cfg.AdminRateLimit)
		rate, _ = limiter.NewRateFromFormatted("5-M")
	}
	return limiter.New(memory.NewStore(), rate)
}

// registerCustomValidators installs the decimal-aware binding tags. The
// stock and order payloads carry shopspring decimals which the stock
// validator tags (gte etc.) cannot inspect.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	// dgte0: decimal value must be >= 0
	_ = v.RegisterValidation("dgte0", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		if !ok {
			return false
		}
		return !d.IsNegative()
	})
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
