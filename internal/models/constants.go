package models

// ============================================================================
// PROJECT STATUS
// ============================================================================

// ProjectStatus is the lifecycle state of a project
type ProjectStatus string

const (
	ProjectStatusTodo     ProjectStatus = "To-do"
	ProjectStatusDoing    ProjectStatus = "Doing"
	ProjectStatusFinished ProjectStatus = "Finished"
)

// ProjectStatuses lists all valid project statuses in display order
var ProjectStatuses = []ProjectStatus{
	ProjectStatusTodo,
	ProjectStatusDoing,
	ProjectStatusFinished,
}

// Valid reports whether the status is one of the known project statuses
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusTodo, ProjectStatusDoing, ProjectStatusFinished:
		return true
	}
	return false
}

// ============================================================================
// TASK STATUS AND PRIORITY
// ============================================================================

// TaskStatus is the workflow state of a task
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// TaskStatuses lists all valid task statuses in workflow order
var TaskStatuses = []TaskStatus{
	TaskStatusPending,
	TaskStatusInProgress,
	TaskStatusCompleted,
}

// Valid reports whether the status is one of the known task statuses
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// TaskPriority is the urgency level of a task
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Valid reports whether the priority is one of the known task priorities
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// ============================================================================
// EXPENSE CATEGORY AND STATUS
// ============================================================================

// ExpenseCategory classifies an expense for per-category aggregation
type ExpenseCategory string

const (
	ExpenseCategoryPersonal  ExpenseCategory = "personal"
	ExpenseCategoryEquipment ExpenseCategory = "equipment"
	ExpenseCategorySoftware  ExpenseCategory = "software"
	ExpenseCategoryServices  ExpenseCategory = "services"
	ExpenseCategoryOther     ExpenseCategory = "other"
)

// ExpenseCategories lists all valid expense categories in display order
var ExpenseCategories = []ExpenseCategory{
	ExpenseCategoryPersonal,
	ExpenseCategoryEquipment,
	ExpenseCategorySoftware,
	ExpenseCategoryServices,
	ExpenseCategoryOther,
}

// Valid reports whether the category is one of the known expense categories
func (c ExpenseCategory) Valid() bool {
	switch c {
	case ExpenseCategoryPersonal, ExpenseCategoryEquipment, ExpenseCategorySoftware,
		ExpenseCategoryServices, ExpenseCategoryOther:
		return true
	}
	return false
}

// ExpenseStatus is the approval state of an expense.
// Only approved expenses count toward spent-budget aggregates.
type ExpenseStatus string

const (
	ExpenseStatusPending  ExpenseStatus = "pending"
	ExpenseStatusApproved ExpenseStatus = "approved"
	ExpenseStatusRejected ExpenseStatus = "rejected"
)

// Valid reports whether the status is one of the known expense statuses
func (s ExpenseStatus) Valid() bool {
	switch s {
	case ExpenseStatusPending, ExpenseStatusApproved, ExpenseStatusRejected:
		return true
	}
	return false
}

// ============================================================================
// REQUIREMENT TYPE, STATUS AND PRIORITY
// ============================================================================

// RequirementType classifies a requirement
type RequirementType string

const (
	RequirementTypeFunctional RequirementType = "functional"
	RequirementTypeTechnical  RequirementType = "technical"
	RequirementTypeLegal      RequirementType = "legal"
	RequirementTypeBusiness   RequirementType = "business"
)

// Valid reports whether the type is one of the known requirement types
func (t RequirementType) Valid() bool {
	switch t {
	case RequirementTypeFunctional, RequirementTypeTechnical,
		RequirementTypeLegal, RequirementTypeBusiness:
		return true
	}
	return false
}

// RequirementStatus is the review state of a requirement
type RequirementStatus string

const (
	RequirementStatusPending  RequirementStatus = "pending"
	RequirementStatusInReview RequirementStatus = "in-review"
	RequirementStatusApproved RequirementStatus = "approved"
	RequirementStatusRejected RequirementStatus = "rejected"
)

// RequirementStatuses lists all valid requirement statuses in workflow order
var RequirementStatuses = []RequirementStatus{
	RequirementStatusPending,
	RequirementStatusInReview,
	RequirementStatusApproved,
	RequirementStatusRejected,
}

// Valid reports whether the status is one of the known requirement statuses
func (s RequirementStatus) Valid() bool {
	switch s {
	case RequirementStatusPending, RequirementStatusInReview,
		RequirementStatusApproved, RequirementStatusRejected:
		return true
	}
	return false
}

// RequirementPriority is the urgency level of a requirement
type RequirementPriority string

const (
	RequirementPriorityLow      RequirementPriority = "low"
	RequirementPriorityMedium   RequirementPriority = "medium"
	RequirementPriorityHigh     RequirementPriority = "high"
	RequirementPriorityCritical RequirementPriority = "critical"
)

// Valid reports whether the priority is one of the known requirement priorities
func (p RequirementPriority) Valid() bool {
	switch p {
	case RequirementPriorityLow, RequirementPriorityMedium,
		RequirementPriorityHigh, RequirementPriorityCritical:
		return true
	}
	return false
}
