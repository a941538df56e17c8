package router

import (
	"github.com/gin-gonic/gin"
	"github.com/taskboard/taskboard-api/internal/authz"
	"github.com/taskboard/taskboard-api/internal/handlers"
	"github.com/taskboard/taskboard-api/internal/middleware"
	"github.com/taskboard/taskboard-api/internal/services"
)

// Handlers bundles everything the router needs to register routes.
type Handlers struct {
	Auth     *handlers.AuthHandler
	User     *handlers.UserHandler
	Project  *handlers.ProjectHandler
	Category *handlers.CategoryHandler
	Priority *handlers.PriorityHandler
	Task     *handlers.TaskHandler
	Tokens   *services.TokenService
}

// New assembles the gin engine with all routes and middleware.
func New(h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	api := r.Group("/api")
	{
		// Auth routes (public except /me)
		auth := api.Group("/auth")
		{
			auth.POST("/token", h.Auth.Token)
			auth.POST("/refresh", h.Auth.Refresh)
			auth.GET("/me", middleware.RequireAuth(h.Tokens), h.Auth.GetCurrentUser)
		}

		// User routes (admin only)
		users := api.Group("/users")
		users.Use(middleware.RequireAuth(h.Tokens))
		{
			users.GET("", middleware.RequirePermission(authz.ResourceUsers, authz.ActionRead), h.User.ListUsers)
			users.POST("", middleware.RequirePermission(authz.ResourceUsers, authz.ActionCreate), h.User.CreateUser)
			users.GET("/:id", middleware.RequirePermission(authz.ResourceUsers, authz.ActionRead), h.User.GetUser)
			users.PATCH("/:id", middleware.RequirePermission(authz.ResourceUsers, authz.ActionUpdate), h.User.UpdateUser)
			users.DELETE("/:id", middleware.RequirePermission(authz.ResourceUsers, authz.ActionDelete), h.User.DeleteUser)
		}

		// Project routes (read: all roles; write: admin and manager)
		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth(h.Tokens))
		{
			projects.GET("", middleware.RequirePermission(authz.ResourceProjects, authz.ActionRead), h.Project.ListProjects)
			projects.POST("", middleware.RequirePermission(authz.ResourceProjects, authz.ActionCreate), h.Project.CreateProject)
			projects.GET("/:id", middleware.RequirePermission(authz.ResourceProjects, authz.ActionRead), h.Project.GetProject)
			projects.PATCH("/:id", middleware.RequirePermission(authz.ResourceProjects, authz.ActionUpdate), h.Project.UpdateProject)
			projects.DELETE("/:id", middleware.RequirePermission(authz.ResourceProjects, authz.ActionDelete), h.Project.DeleteProject)
		}

		// Category routes (read: all roles; write: admin)
		categories := api.Group("/categories")
		categories.Use(middleware.RequireAuth(h.Tokens))
		{
			categories.GET("", middleware.RequirePermission(authz.ResourceCategories, authz.ActionRead), h.Category.ListCategories)
			categories.POST("", middleware.RequirePermission(authz.ResourceCategories, authz.ActionCreate), h.Category.CreateCategory)
			categories.GET("/:id", middleware.RequirePermission(authz.ResourceCategories, authz.ActionRead), h.Category.GetCategory)
			categories.PATCH("/:id", middleware.RequirePermission(authz.ResourceCategories, authz.ActionUpdate), h.Category.UpdateCategory)
			categories.DELETE("/:id", middleware.RequirePermission(authz.ResourceCategories, authz.ActionDelete), h.Category.DeleteCategory)
		}

		// Priority routes (read: all roles; write: admin)
		priorities := api.Group("/priorities")
		priorities.Use(middleware.RequireAuth(h.Tokens))
		{
			priorities.GET("", middleware.RequirePermission(authz.ResourcePriorities, authz.ActionRead), h.Priority.ListPriorities)
			priorities.POST("", middleware.RequirePermission(authz.ResourcePriorities, authz.ActionCreate), h.Priority.CreatePriority)
			priorities.GET("/:id", middleware.RequirePermission(authz.ResourcePriorities, authz.ActionRead), h.Priority.GetPriority)
			priorities.PATCH("/:id", middleware.RequirePermission(authz.ResourcePriorities, authz.ActionUpdate), h.Priority.UpdatePriority)
			priorities.DELETE("/:id", middleware.RequirePermission(authz.ResourcePriorities, authz.ActionDelete), h.Priority.DeletePriority)
		}

		// Task routes (read/create: all roles; update/delete further
		// scoped to the assignee for employees in the task service)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth(h.Tokens))
		{
			tasks.GET("", middleware.RequirePermission(authz.ResourceTasks, authz.ActionRead), h.Task.ListTasks)
			tasks.POST("", middleware.RequirePermission(authz.ResourceTasks, authz.ActionCreate), h.Task.CreateTask)
			tasks.GET("/:id", middleware.RequirePermission(authz.ResourceTasks, authz.ActionRead), h.Task.GetTask)
			tasks.PATCH("/:id", middleware.RequirePermission(authz.ResourceTasks, authz.ActionUpdate), h.Task.UpdateTask)
			tasks.DELETE("/:id", middleware.RequirePermission(authz.ResourceTasks, authz.ActionDelete), h.Task.DeleteTask)
		}
	}

	return r
}
