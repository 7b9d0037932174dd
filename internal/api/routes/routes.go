// internal/api/routes/routes.go
package routes

import (
	"tusep-web/config"
	"tusep-web/internal/api/handlers"
	"tusep-web/internal/api/middleware"
	"tusep-web/internal/auth"
	"tusep-web/internal/gate"
	"tusep-web/internal/reports"
	"tusep-web/internal/socket"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires the browser-facing routes onto the session registry,
// the timer hub and the optional workbook archive (nil disables archiving).
func SetupRouter(
	cfg config.Config,
	registry *auth.Registry,
	wsHub *socket.Hub,
	archive reports.Archiver,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(config.GetLogger()))
	if len(cfg.CORS.AllowedOrigins) > 0 {
		router.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	}

	cookie := middleware.CookieOptions{Name: cfg.Session.CookieName, MaxAge: cfg.Session.MaxAge}

	authHandler := &handlers.AuthHandler{Registry: registry, Cookie: cookie}
	dashboardHandler := &handlers.DashboardHandler{}
	deviceHandler := &handlers.DeviceHandler{}
	faultHandler := &handlers.FaultHandler{Hub: wsHub}
	transferHandler := &handlers.TransferHandler{}
	reportHandler := &handlers.ReportHandler{Archive: archive, Prefix: cfg.S3.Prefix}
	userHandler := &handlers.UserHandler{}
	webSocketHandler := &handlers.WebSocketHandler{
		Hub:            wsHub,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		PongWait:       cfg.Timer.PongWait,
		PollInterval:   cfg.Timer.PollInterval,
	}

	router.GET("/healthz", handlers.Health)

	web := router.Group("/")
	web.Use(middleware.Session(registry, cookie))
	{
		// === Routes open to anonymous browsers ===
		public := web.Group("/")
		public.Use(middleware.RedirectIfAuthenticated())
		{
			public.GET("/login", authHandler.LoginPage)
		}
		web.POST("/login", authHandler.Login)
		web.POST("/register", authHandler.Register)
		web.POST("/logout", authHandler.Logout)

		// === Routes that need a logged-in user ===
		private := web.Group("/")
		private.Use(middleware.Authenticate())
		{
			private.GET("/", dashboardHandler.GetDashboard)

			devices := private.Group("/devices")
			devices.Use(middleware.Authorize(gate.CapDevices))
			{
				devices.GET("", deviceHandler.GetDevices)
				devices.POST("", deviceHandler.CreateDevice)
				devices.GET("/:id", deviceHandler.GetDevice)
			}

			faults := private.Group("/faults")
			faults.Use(middleware.Authorize(gate.CapFaults))
			{
				faults.GET("", faultHandler.GetFaults)
				faults.GET("/new", faultHandler.NewFault)
				faults.POST("", faultHandler.CreateFault)
				faults.POST("/:id/assign", faultHandler.AssignFault)
				faults.POST("/:id/start-repair", faultHandler.StartRepair)
				faults.POST("/:id/end-repair", faultHandler.EndRepair)
				faults.POST("/:id/confirm", faultHandler.ConfirmFault)
				faults.GET("/:id/timer", webSocketHandler.ServeTimer)
			}

			transfers := private.Group("/transfers")
			transfers.Use(middleware.Authorize(gate.CapTransfers))
			{
				transfers.GET("", transferHandler.GetTransfers)
				transfers.POST("", transferHandler.CreateTransfer)
				transfers.POST("/:id/approve", transferHandler.ApproveTransfer)
				transfers.POST("/:id/reject", transferHandler.RejectTransfer)
			}

			rep := private.Group("/reports")
			rep.Use(middleware.Authorize(gate.CapReports))
			{
				rep.GET("", reportHandler.GetReports)
				rep.GET("/excel/:type", reportHandler.DownloadExcel)
			}

			private.GET("/quality-dashboard", middleware.Authorize(gate.CapQualityDashboard), dashboardHandler.GetQuality)
			private.GET("/users", middleware.Authorize(gate.CapUsers), userHandler.GetUsers)
		}
	}

	return router
}
