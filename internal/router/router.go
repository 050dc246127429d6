package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"bizdocs/internal/domain"
	"bizdocs/internal/handler"
	"bizdocs/internal/middleware"
	"bizdocs/internal/service"

	_ "bizdocs/docs" // registers the swagger spec
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	log *logrus.Logger,
	allowedOrigins []string,
	authSvc service.AuthService,
	docH *handler.DocumentHandler,
	fileH *handler.FileHandler,
	healthH *handler.HealthHandler,
) (*gin.Engine, error) {
	if err := handler.RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes - require a valid JWT carrying a known role
	v1 := r.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(authSvc))
	v1.Use(middleware.RequireRole(domain.RoleAdmin, domain.RoleStaff))

	v1.POST("/invoices", docH.CreateInvoice)
	v1.POST("/invoices/tax-analysis", docH.ExportTaxAnalysis)
	v1.POST("/quotations", docH.CreateQuotation)

	docs := v1.Group("/documents")
	docs.GET("", docH.List)
	docs.GET("/:id", docH.GetByID)

	files := v1.Group("/files")
	files.GET("", fileH.List)
	files.GET("/:name", fileH.Download)

	return r, nil
}
