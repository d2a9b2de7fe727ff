package handler

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, sessionHandler *SessionHandler, timelineHandler *TimelineHandler, dashboardHandler *DashboardHandler, debtHandler *DebtHandler, goalHandler *GoalHandler, bucketHandler *BucketHandler, wsHandler *WebSocketHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// Workspace-scoped routes
	workspaces := api.Group("/workspaces/:workspaceId")
	workspaces.GET("/session", sessionHandler.GetSession)
	workspaces.PUT("/session", sessionHandler.PutSession)
	workspaces.GET("/timeline", timelineHandler.GetTimeline)
	workspaces.GET("/dashboard", dashboardHandler.GetDashboard)
	workspaces.GET("/members/:memberId/room", bucketHandler.GetMemberRoom)

	// Stateless preview routes
	api.POST("/timeline/preview", timelineHandler.PreviewTimeline)
	api.POST("/debts/preview", debtHandler.PreviewDebt)
	api.POST("/goals/preview", goalHandler.PreviewGoal)
	api.POST("/goals/plan", goalHandler.PlanGoal)
	api.POST("/buckets/preview", bucketHandler.PreviewGrowth)

	// WebSocket endpoint
	e.GET("/ws", wsHandler.HandleWS)
}
