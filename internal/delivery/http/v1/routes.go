package v1

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the JSON API under /api/v1 and the assistant
// under /api/chat.
func RegisterRoutes(router gin.IRouter, h Handler) {
	api := router.Group("/api")
	api.POST("/chat", h.HandleChat)

	v1Router := api.Group("/v1")

	authRouter := v1Router.Group("/auth")
	authRouter.POST("/login", h.HandleLogin)
	authRouter.POST("/refresh", h.HandleRefresh)
	authRouter.POST("/register", h.HandleRegister)
	authRouter.POST("/logout", h.HandleAuthMiddleware, h.HandleLogout)

	authorized := v1Router.Group("", h.HandleAuthMiddleware)
	authorized.GET("/profile", h.HandleGetProfile)
	authorized.PATCH("/profile", h.HandleUpdateProfile)

	authorized.GET("/tasks", h.HandleGetTasks)
	authorized.POST("/tasks/:id/toggle", h.HandleToggleTask)
	authorized.PATCH("/tasks/:id/status", h.HandleSetTaskStatus)
	authorized.DELETE("/tasks/:id", h.HandleDeleteTask)
	authorized.GET("/tasks/:id/comments", h.HandleGetTaskComments)
	authorized.POST("/tasks/:id/comments", h.HandleAddTaskComment)

	authorized.GET("/templates", h.HandleGetTemplates)
	authorized.GET("/groups", h.HandleGetGroups)

	hr := authorized.Group("", h.HandleHRMiddleware)
	hr.PATCH("/profiles/:id", h.HandleUpdateMemberProfile)

	managers := authorized.Group("", h.HandleManagerMiddleware)
	managers.POST("/templates", h.HandleCreateTemplate)
	managers.POST("/groups", h.HandleCreateGroup)
	managers.POST("/groups/:id/templates", h.HandleAddGroupTemplate)

	managers.GET("/reports", h.HandleGetReports)
	managers.GET("/reports/:id/tasks", h.HandleGetReportTasks)
	managers.POST("/reports/:id/tasks", h.HandleCreateReportTask)
	managers.POST("/reports/:id/templates/:templateID", h.HandleAssignTemplate)
	managers.POST("/reports/:id/groups/:groupID", h.HandleAssignGroup)
	managers.GET("/assigned", h.HandleGetAssignedTasks)
}
