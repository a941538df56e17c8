package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/taskboard/taskboard-api/internal/handlers"
	"github.com/taskboard/taskboard-api/internal/models"
	"github.com/taskboard/taskboard-api/internal/repository"
	"github.com/taskboard/taskboard-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
	tokens *services.TokenService
	users  *services.UserService
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Category{},
		&models.Priority{},
		&models.Task{},
	)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	priorityRepo := repository.NewPriorityRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	tokens := services.NewTokenService("test-access", "test-refresh", 15*time.Minute, time.Hour)
	authService := services.NewAuthService(userRepo, tokens)
	userService := services.NewUserService(userRepo)
	projectService := services.NewProjectService(projectRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	priorityService := services.NewPriorityService(priorityRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo, categoryRepo, priorityRepo, userRepo)

	r := New(Handlers{
		Auth:     handlers.NewAuthHandler(authService),
		User:     handlers.NewUserHandler(userService),
		Project:  handlers.NewProjectHandler(projectService),
		Category: handlers.NewCategoryHandler(categoryService),
		Priority: handlers.NewPriorityHandler(priorityService),
		Task:     handlers.NewTaskHandler(taskService),
		Tokens:   tokens,
	})

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return testEnv{db: db, router: r, tokens: tokens, users: userService}
}

// tokenFor creates a user with the role and returns a valid access token.
func (env testEnv) tokenFor(t *testing.T, username string, role string) string {
	t.Helper()

	user, err := env.users.CreateUser(services.CreateUserInput{
		Username: username,
		Email:    username + "@example.com",
		Password: username + "-password",
		Role:     role,
	})
	require.NoError(t, err)

	pair, err := env.tokens.IssuePair(user)
	require.NoError(t, err)
	return pair.AccessToken
}

func (env testEnv) request(t *testing.T, method, url, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestUserRoutes_RoleMatrix(t *testing.T) {
	env := setupTestEnv(t)

	adminToken := env.tokenFor(t, "admin", "admin")
	managerToken := env.tokenFor(t, "manager", "manager")
	employeeToken := env.tokenFor(t, "employee", "employee")

	w := env.request(t, http.MethodGet, "/api/users", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/users", managerToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, http.MethodGet, "/api/users", employeeToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, http.MethodGet, "/api/users", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProjectRoutes_RoleMatrix(t *testing.T) {
	env := setupTestEnv(t)

	managerToken := env.tokenFor(t, "manager", "manager")
	employeeToken := env.tokenFor(t, "employee", "employee")

	project := map[string]string{
		"name":        "Rollout",
		"description": "Q4 rollout",
		"start_date":  "2026-01-01",
		"end_date":    "2026-06-30",
	}

	w := env.request(t, http.MethodPost, "/api/projects", managerToken, project)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, http.MethodPost, "/api/projects", employeeToken, project)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, http.MethodGet, "/api/projects", employeeToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestProjectRoutes_DateValidation(t *testing.T) {
	env := setupTestEnv(t)

	managerToken := env.tokenFor(t, "manager", "manager")

	w := env.request(t, http.MethodPost, "/api/projects", managerToken, map[string]string{
		"name":       "Backwards",
		"start_date": "2026-06-30",
		"end_date":   "2026-01-01",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = env.request(t, http.MethodPost, "/api/projects", managerToken, map[string]string{
		"name":       "Malformed",
		"start_date": "01/01/2026",
		"end_date":   "2026-06-30",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaskRoutes_EmployeeCreate(t *testing.T) {
	env := setupTestEnv(t)

	employeeToken := env.tokenFor(t, "employee", "employee")

	project := &models.Project{Name: "Launch"}
	require.NoError(t, env.db.Create(project).Error)
	category := &models.Category{Name: "Backend"}
	require.NoError(t, env.db.Create(category).Error)
	priority := &models.Priority{Level: "High"}
	require.NoError(t, env.db.Create(priority).Error)

	payload := map[string]interface{}{
		"title":       "New Task",
		"description": "Task description",
		"project":     project.ID,
		"category":    category.ID,
		"priority":    priority.ID,
	}

	w := env.request(t, http.MethodPost, "/api/tasks", employeeToken, payload)
	require.Equal(t, http.StatusCreated, w.Code)

	// Without a token the same request must be rejected before any
	// authorization decision.
	w = env.request(t, http.MethodPost, "/api/tasks", "", payload)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.request(t, http.MethodGet, "/api/tasks", employeeToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestCatalogRoutes_RoleMatrix(t *testing.T) {
	env := setupTestEnv(t)

	adminToken := env.tokenFor(t, "admin", "admin")
	managerToken := env.tokenFor(t, "manager", "manager")
	employeeToken := env.tokenFor(t, "employee", "employee")

	w := env.request(t, http.MethodPost, "/api/categories", adminToken, map[string]string{"name": "Backend"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, http.MethodPost, "/api/categories", managerToken, map[string]string{"name": "Frontend"})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, http.MethodGet, "/api/categories", employeeToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/priorities", employeeToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAuth_TokenSignals(t *testing.T) {
	env := setupTestEnv(t)

	// Garbage that is not a JWT at all
	w := env.request(t, http.MethodGet, "/api/tasks", "garbage", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "TOKEN_MALFORMED", resp["code"])

	// Missing token carries a distinct code
	w = env.request(t, http.MethodGet, "/api/tasks", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "UNAUTHORIZED", resp["code"])

	// Well-formed token signed with the wrong secret
	forgedTokens := services.NewTokenService("wrong-access", "wrong-refresh", 15*time.Minute, time.Hour)
	pair, err := forgedTokens.IssuePair(&models.User{ID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)

	w = env.request(t, http.MethodGet, "/api/tasks", pair.AccessToken, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "TOKEN_INVALID", resp["code"])

	// Expired token carries a distinct code
	expiredTokens := services.NewTokenService("test-access", "test-refresh", -time.Minute, time.Hour)
	pair, err = expiredTokens.IssuePair(&models.User{ID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)

	w = env.request(t, http.MethodGet, "/api/tasks", pair.AccessToken, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "TOKEN_EXPIRED", resp["code"])
}

func TestUserRoutes_DuplicateConflict(t *testing.T) {
	env := setupTestEnv(t)

	adminToken := env.tokenFor(t, "admin", "admin")

	payload := map[string]string{
		"username": "duplicate",
		"email":    "duplicate@example.com",
		"password": "supersecret",
		"role":     "employee",
	}

	w := env.request(t, http.MethodPost, "/api/users", adminToken, payload)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, http.MethodPost, "/api/users", adminToken, payload)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestUserRoutes_RecreateDeletedUser(t *testing.T) {
	env := setupTestEnv(t)

	adminToken := env.tokenFor(t, "admin", "admin")

	payload := map[string]string{
		"username": "rehire",
		"email":    "rehire@example.com",
		"password": "supersecret",
		"role":     "employee",
	}

	w := env.request(t, http.MethodPost, "/api/users", adminToken, payload)
	require.Equal(t, http.StatusCreated, w.Code)

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := int(created["id"].(float64))

	w = env.request(t, http.MethodDelete, fmt.Sprintf("/api/users/%d", id), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Deleting the account must free its username and email.
	w = env.request(t, http.MethodPost, "/api/users", adminToken, payload)
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
}
