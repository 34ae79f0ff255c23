package models

import (
	"fmt"
	"unicode/utf8"

	"github.com/dmitrijs2005/todokeeper/internal/common"
)

// Limits on todo fields accepted from clients.
const (
	TodoTitleMinLen       = 3
	TodoDescriptionMinLen = 3
	TodoDescriptionMaxLen = 2000
	TodoPriorityMin       = 1
	TodoPriorityMax       = 5
)

// Todo is a task owned by exactly one user.
type Todo struct {
	ID          int64  `json:"id"`
	OwnerID     int64  `json:"owner_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
	Complete    bool   `json:"complete"`
}

// TodoInput carries the client-editable fields of a Todo.
type TodoInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
	Complete    bool   `json:"complete"`
}

// Validate checks field limits. The error wraps common.ErrorValidation.
func (in TodoInput) Validate() error {
	if n := utf8.RuneCountInString(in.Title); n < TodoTitleMinLen {
		return fmt.Errorf("%w: title must be at least %d characters", common.ErrorValidation, TodoTitleMinLen)
	}
	if n := utf8.RuneCountInString(in.Description); n < TodoDescriptionMinLen || n > TodoDescriptionMaxLen {
		return fmt.Errorf("%w: description must be %d to %d characters", common.ErrorValidation, TodoDescriptionMinLen, TodoDescriptionMaxLen)
	}
	if in.Priority < TodoPriorityMin || in.Priority > TodoPriorityMax {
		return fmt.Errorf("%w: priority must be between %d and %d", common.ErrorValidation, TodoPriorityMin, TodoPriorityMax)
	}
	return nil
}
