package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/taskboard/taskboard-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRepoTestDB(t *testing.T) *gorm.DB {
	t.Helper()

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

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func seedTask(t *testing.T, db *gorm.DB) (*models.Project, *models.Category, *models.Priority, *models.User, *models.Task) {
	t.Helper()

	project := &models.Project{Name: "Launch"}
	require.NoError(t, db.Create(project).Error)

	category := &models.Category{Name: "Backend"}
	require.NoError(t, db.Create(category).Error)

	priority := &models.Priority{Level: "High"}
	require.NoError(t, db.Create(priority).Error)

	user := &models.User{
		Username: "worker",
		Email:    "worker@example.com",
		Password: "some-password",
		Role:     models.RoleEmployee,
	}
	require.NoError(t, db.Create(user).Error)

	task := &models.Task{
		Title:      "Build API",
		ProjectID:  project.ID,
		CategoryID: &category.ID,
		PriorityID: &priority.ID,
		AssigneeID: &user.ID,
	}
	require.NoError(t, db.Create(task).Error)

	return project, category, priority, user, task
}

func TestProjectRepository_DeleteCascadesTasks(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewProjectRepository(db)

	project, _, _, _, _ := seedTask(t, db)

	// A second task in the same project, plus a task in another project
	// that must survive.
	require.NoError(t, db.Create(&models.Task{Title: "Write docs", ProjectID: project.ID}).Error)

	other := &models.Project{Name: "Other"}
	require.NoError(t, db.Create(other).Error)
	survivor := &models.Task{Title: "Unrelated", ProjectID: other.ID}
	require.NoError(t, db.Create(survivor).Error)

	require.NoError(t, repo.Delete(project.ID))

	var count int64
	require.NoError(t, db.Model(&models.Task{}).Where("project_id = ?", project.ID).Count(&count).Error)
	require.Zero(t, count, "no task referencing the deleted project may remain")

	require.NoError(t, db.Model(&models.Task{}).Where("project_id = ?", other.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)

	_, err := repo.FindByID(project.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCategoryRepository_DeleteNullifiesTasks(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewCategoryRepository(db)

	_, category, _, _, task := seedTask(t, db)

	require.NoError(t, repo.Delete(category.ID))

	var stored models.Task
	require.NoError(t, db.First(&stored, task.ID).Error)
	require.Nil(t, stored.CategoryID, "task must survive with the category reference cleared")
	require.Equal(t, task.Title, stored.Title)

	_, err := repo.FindByID(category.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPriorityRepository_DeleteNullifiesTasks(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewPriorityRepository(db)

	_, _, priority, _, task := seedTask(t, db)

	require.NoError(t, repo.Delete(priority.ID))

	var stored models.Task
	require.NoError(t, db.First(&stored, task.ID).Error)
	require.Nil(t, stored.PriorityID)
}

func TestUserRepository_DeleteNullifiesAssignee(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewUserRepository(db)

	_, _, _, user, task := seedTask(t, db)

	require.NoError(t, repo.Delete(user.ID))

	var stored models.Task
	require.NoError(t, db.First(&stored, task.ID).Error)
	require.Nil(t, stored.AssigneeID)

	_, err := repo.FindByID(user.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_DuplicateUsernameTranslated(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewUserRepository(db)

	first := &models.User{
		Username: "worker",
		Email:    "worker@example.com",
		Password: "some-password",
		Role:     models.RoleEmployee,
	}
	require.NoError(t, repo.Create(first))

	// Same username, different email. The unique index violation must
	// come back as the portable gorm error so callers can map it.
	second := &models.User{
		Username: "worker",
		Email:    "other@example.com",
		Password: "some-password",
		Role:     models.RoleEmployee,
	}
	err := repo.Create(second)
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestTaskRepository_ListFilters(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewTaskRepository(db)

	project, _, _, user, _ := seedTask(t, db)

	other := &models.Project{Name: "Other"}
	require.NoError(t, db.Create(other).Error)
	require.NoError(t, db.Create(&models.Task{Title: "Elsewhere", ProjectID: other.ID}).Error)

	tasks, total, err := repo.List(TaskFilter{ProjectID: &project.ID})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, tasks, 1)
	require.Equal(t, "Build API", tasks[0].Title)

	tasks, total, err = repo.List(TaskFilter{AssigneeID: &user.ID})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, tasks, 1)

	_, total, err = repo.List(TaskFilter{})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
}
