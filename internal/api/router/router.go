package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"turnout/backend/config"
	"turnout/backend/internal/api/handler"
	"turnout/backend/internal/api/middleware"
	"turnout/backend/pkg/jwt"
	"turnout/backend/pkg/redis"
)

// Setup builds the Gin engine and mounts all routes.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// auth (no token required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// brigade-scoped routes
		authorized := v1.Group("")
		authorized.Use(middleware.BrigadeAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)

			// callouts
			callouts := authorized.Group("/callouts")
			{
				callouts.GET("/active", h.Callout.ListActive)
				callouts.POST("", h.Callout.Create)
				callouts.PUT("/:id", h.Callout.Update)
				callouts.POST("/:id/submit", h.Callout.Submit)
				callouts.POST("/:id/copy-last", h.Callout.CopyLast)

				callouts.GET("/:id/board", h.Attendance.Board)
				callouts.POST("/:id/attendance", h.Attendance.Assign)
				callouts.POST("/:id/move", h.Attendance.Move)

				// EventSource cannot set headers, so BrigadeAuth also
				// accepts ?token= on this route.
				callouts.GET("/:id/stream", h.Stream.Stream)
			}

			authorized.DELETE("/attendance/:id", h.Attendance.Remove)

			// roster
			members := authorized.Group("/members")
			{
				members.GET("", h.Member.ListMembers)
				members.POST("", h.Member.CreateMember)
				members.PUT("/:id", h.Member.UpdateMember)
				members.DELETE("/:id", h.Member.DeactivateMember)
			}

			// fleet
			trucks := authorized.Group("/trucks")
			{
				trucks.GET("", h.Truck.ListTrucks)
				trucks.POST("", h.Truck.CreateTruck)
				trucks.PUT("/reorder", h.Truck.ReorderTrucks)
				trucks.PUT("/:id", h.Truck.UpdateTruck)
				trucks.DELETE("/:id", h.Truck.DeleteTruck)
				trucks.POST("/:id/positions", h.Truck.CreatePosition)
			}

			positions := authorized.Group("/positions")
			{
				positions.PUT("/:id", h.Truck.UpdatePosition)
				positions.DELETE("/:id", h.Truck.DeletePosition)
			}
		}
	}

	return r
}
