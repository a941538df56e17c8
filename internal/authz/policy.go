// Package authz holds the role-based access policy. Every protected
// handler routes its decision through CanAccess; no handler carries
// policy logic of its own.
package authz

import "github.com/taskboard/taskboard-api/internal/models"

type Resource string

const (
	ResourceUsers      Resource = "users"
	ResourceProjects   Resource = "projects"
	ResourceCategories Resource = "categories"
	ResourcePriorities Resource = "priorities"
	ResourceTasks      Resource = "tasks"
)

type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// permissions lists what non-admin roles are granted. Anything absent
// from the table is denied. Employee task update/delete is granted
// here but further scoped to the assignee via CanModifyTask.
var permissions = map[models.Role]map[Resource]map[Action]bool{
	models.RoleManager: {
		ResourceProjects: {
			ActionRead:   true,
			ActionCreate: true,
			ActionUpdate: true,
			ActionDelete: true,
		},
		ResourceCategories: {ActionRead: true},
		ResourcePriorities: {ActionRead: true},
		ResourceTasks: {
			ActionRead:   true,
			ActionCreate: true,
			ActionUpdate: true,
			ActionDelete: true,
		},
	},
	models.RoleEmployee: {
		ResourceProjects:   {ActionRead: true},
		ResourceCategories: {ActionRead: true},
		ResourcePriorities: {ActionRead: true},
		ResourceTasks: {
			ActionRead:   true,
			ActionCreate: true,
			ActionUpdate: true,
			ActionDelete: true,
		},
	},
}

// CanAccess reports whether the role may perform the action on the
// resource. Admins may do everything; unknown roles, resources and
// actions are denied.
func CanAccess(role models.Role, resource Resource, action Action) bool {
	if role == models.RoleAdmin {
		return true
	}

	grants, ok := permissions[role]
	if !ok {
		return false
	}

	actions, ok := grants[resource]
	if !ok {
		return false
	}

	return actions[action]
}

// CanModifyTask reports whether the user may update or delete the
// task. Admins and managers may modify any task; employees only tasks
// assigned to them. An unassigned task is not writable by employees.
func CanModifyTask(role models.Role, userID uint64, task *models.Task) bool {
	switch role {
	case models.RoleAdmin, models.RoleManager:
		return true
	case models.RoleEmployee:
		return task.AssigneeID != nil && *task.AssigneeID == userID
	default:
		return false
	}
}
