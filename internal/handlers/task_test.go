package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/taskboard/taskboard-api/internal/constants"
	"github.com/taskboard/taskboard-api/internal/models"
	"github.com/taskboard/taskboard-api/internal/repository"
	"github.com/taskboard/taskboard-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *TaskHandler
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Category{},
		&models.Priority{},
		&models.Task{},
	)
	suite.Require().NoError(err)

	taskService := services.NewTaskService(
		repository.NewTaskRepository(suite.db),
		repository.NewProjectRepository(suite.db),
		repository.NewCategoryRepository(suite.db),
		repository.NewPriorityRepository(suite.db),
		repository.NewUserRepository(suite.db),
	)
	suite.handler = NewTaskHandler(taskService)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper functions to create test data

func (suite *TaskHandlerTestSuite) createTestUser(username string, role models.Role) *models.User {
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashedpassword",
		Role:     role,
	}
	suite.db.Create(user)
	return user
}

func (suite *TaskHandlerTestSuite) createTestProject(name string) *models.Project {
	project := &models.Project{Name: name}
	suite.db.Create(project)
	return project
}

func (suite *TaskHandlerTestSuite) createTestTask(title string, projectID uint64, assigneeID *uint64) *models.Task {
	task := &models.Task{
		Title:      title,
		ProjectID:  projectID,
		AssigneeID: assigneeID,
	}
	suite.db.Create(task)
	return task
}

// createAuthContext builds a gin context with an authenticated actor
func (suite *TaskHandlerTestSuite) createAuthContext(method, url string, body []byte, user *models.User) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, user.ID)
	c.Set(constants.ContextKeyUserRole, user.Role)

	return c, w
}

func (suite *TaskHandlerTestSuite) TestCreateTask_Success() {
	employee := suite.createTestUser("employee", models.RoleEmployee)
	project := suite.createTestProject("Launch")

	body, _ := json.Marshal(map[string]interface{}{
		"title":       "New Task",
		"description": "Task description",
		"project":     project.ID,
	})

	c, w := suite.createAuthContext("POST", "/api/tasks", body, employee)
	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var count int64
	suite.db.Model(&models.Task{}).Count(&count)
	assert.EqualValues(suite.T(), 1, count)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_UnknownProject() {
	employee := suite.createTestUser("employee", models.RoleEmployee)

	body, _ := json.Marshal(map[string]interface{}{
		"title":   "Orphan Task",
		"project": 999,
	})

	c, w := suite.createAuthContext("POST", "/api/tasks", body, employee)
	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_MissingProject() {
	employee := suite.createTestUser("employee", models.RoleEmployee)

	body, _ := json.Marshal(map[string]interface{}{
		"title": "No Project",
	})

	c, w := suite.createAuthContext("POST", "/api/tasks", body, employee)
	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_MalformedDueDate() {
	employee := suite.createTestUser("employee", models.RoleEmployee)
	project := suite.createTestProject("Launch")

	body, _ := json.Marshal(map[string]interface{}{
		"title":    "Bad Date",
		"project":  project.ID,
		"due_date": "31-12-2025",
	})

	c, w := suite.createAuthContext("POST", "/api/tasks", body, employee)
	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_EmployeeNotAssignee() {
	employee := suite.createTestUser("employee", models.RoleEmployee)
	other := suite.createTestUser("other", models.RoleEmployee)
	project := suite.createTestProject("Launch")
	task := suite.createTestTask("Assigned elsewhere", project.ID, &other.ID)

	body, _ := json.Marshal(map[string]interface{}{
		"title": "Hijacked",
	})

	c, w := suite.createAuthContext("PATCH", "/api/tasks/1", body, employee)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	var stored models.Task
	suite.db.First(&stored, task.ID)
	assert.Equal(suite.T(), "Assigned elsewhere", stored.Title)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_EmployeeAssignee() {
	employee := suite.createTestUser("employee", models.RoleEmployee)
	project := suite.createTestProject("Launch")
	task := suite.createTestTask("Mine", project.ID, &employee.ID)

	body, _ := json.Marshal(map[string]interface{}{
		"title": "Mine, renamed",
	})

	c, w := suite.createAuthContext("PATCH", "/api/tasks/1", body, employee)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var stored models.Task
	suite.db.First(&stored, task.ID)
	assert.Equal(suite.T(), "Mine, renamed", stored.Title)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_ManagerAnyTask() {
	manager := suite.createTestUser("manager", models.RoleManager)
	other := suite.createTestUser("other", models.RoleEmployee)
	project := suite.createTestProject("Launch")
	suite.createTestTask("Team task", project.ID, &other.ID)

	body, _ := json.Marshal(map[string]interface{}{
		"title": "Re-planned",
	})

	c, w := suite.createAuthContext("PATCH", "/api/tasks/1", body, manager)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *TaskHandlerTestSuite) TestDeleteTask_EmployeeUnassignedTask() {
	employee := suite.createTestUser("employee", models.RoleEmployee)
	project := suite.createTestProject("Launch")
	suite.createTestTask("Unassigned", project.ID, nil)

	c, w := suite.createAuthContext("DELETE", "/api/tasks/1", nil, employee)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.DeleteTask(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *TaskHandlerTestSuite) TestDeleteTask_NotFound() {
	manager := suite.createTestUser("manager", models.RoleManager)

	c, w := suite.createAuthContext("DELETE", "/api/tasks/99", nil, manager)
	c.Params = gin.Params{{Key: "id", Value: "99"}}
	suite.handler.DeleteTask(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestListTasks_FiltersByProject() {
	employee := suite.createTestUser("employee", models.RoleEmployee)
	project := suite.createTestProject("Launch")
	other := suite.createTestProject("Other")
	suite.createTestTask("In launch", project.ID, nil)
	suite.createTestTask("Elsewhere", other.ID, nil)

	c, w := suite.createAuthContext("GET", "/api/tasks?project_id=1", nil, employee)
	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)

	tasks := response["tasks"].([]interface{})
	assert.Len(suite.T(), tasks, 1)
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
