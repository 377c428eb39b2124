package models

import "time"

// TodoType classifies a todo into one of the fixed variants.
type TodoType string

const (
	TypeTask     TodoType = "task"
	TypeGoal     TodoType = "goal"
	TypeHabit    TodoType = "habit"
	TypeReminder TodoType = "reminder"
	TypeShopping TodoType = "shopping"
	TypeIdea     TodoType = "idea"
	TypeBookmark TodoType = "bookmark"
)

// AllTodoTypes lists every valid todo type in catalog order.
var AllTodoTypes = []TodoType{
	TypeTask,
	TypeGoal,
	TypeHabit,
	TypeReminder,
	TypeShopping,
	TypeIdea,
	TypeBookmark,
}

// IsValid reports whether t is one of the fixed todo types.
func (t TodoType) IsValid() bool {
	for _, v := range AllTodoTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Priority expresses how urgent a todo is.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// AllPriorities lists every valid priority.
var AllPriorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// IsValid reports whether p is a recognized priority.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Rank returns the sort rank of the priority, urgent first.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	}
	return 4
}

// HabitFrequency is the recurrence of a habit todo.
type HabitFrequency string

const (
	FrequencyDaily   HabitFrequency = "daily"
	FrequencyWeekly  HabitFrequency = "weekly"
	FrequencyMonthly HabitFrequency = "monthly"
)

// IsValid reports whether f is a recognized habit frequency.
func (f HabitFrequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// Todo represents an actionable item with a fixed type classification,
// priority, optional due date and completion state. The pointer fields are
// type-conditional: only the field matching the todo's type is ever set.
type Todo struct {
	ID          string     `json:"id"`
	Type        TodoType   `json:"type"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    Priority   `json:"priority"`
	IsCompleted bool       `json:"isCompleted"`
	DueDate     *time.Time `json:"dueDate"`
	Tags        []string   `json:"tags"`
	CompletedAt *time.Time `json:"completedAt"`

	HabitFrequency *HabitFrequency `json:"habitFrequency,omitempty"`
	ReminderTime   *time.Time      `json:"reminderTime,omitempty"`
	URL            *string         `json:"url,omitempty"`
	Quantity       *int            `json:"quantity,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasTag reports whether the todo carries the exact tag.
func (t *Todo) HasTag(tag string) bool {
	for _, v := range t.Tags {
		if v == tag {
			return true
		}
	}
	return false
}

// TypeInfo describes one entry of the static todo type catalog.
type TypeInfo struct {
	ID          TodoType `json:"id"`
	Label       string   `json:"label"`
	Icon        string   `json:"icon"`
	Description string   `json:"description"`
}

var typeCatalog = []TypeInfo{
	{ID: TypeTask, Label: "Task", Icon: "✅", Description: "A single actionable item to get done"},
	{ID: TypeGoal, Label: "Goal", Icon: "🎯", Description: "A longer-term objective to work towards"},
	{ID: TypeHabit, Label: "Habit", Icon: "🔁", Description: "A recurring practice tracked on a schedule"},
	{ID: TypeReminder, Label: "Reminder", Icon: "⏰", Description: "Something to be reminded of at a set time"},
	{ID: TypeShopping, Label: "Shopping", Icon: "🛒", Description: "An item to buy, with a quantity"},
	{ID: TypeIdea, Label: "Idea", Icon: "💡", Description: "A thought or inspiration to revisit later"},
	{ID: TypeBookmark, Label: "Bookmark", Icon: "🔖", Description: "A saved link to read or act on"},
}

// TypeCatalog returns the static catalog of todo types. The returned slice is
// a copy; callers may not mutate catalog entries.
func TypeCatalog() []TypeInfo {
	out := make([]TypeInfo, len(typeCatalog))
	copy(out, typeCatalog)
	return out
}
