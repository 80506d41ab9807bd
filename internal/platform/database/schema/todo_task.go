// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// TodoTaskTable represents the 'todo.task' table
type TodoTaskTable struct {
	Table       string
	ID          string
	Title       string
	Description string
	DueDate     string
	IsCompleted string
	ListID      string
	StatusID    string
	CreatedAt   string
}

// TodoTask is the schema definition for todo.task
var TodoTask = TodoTaskTable{
	Table:       "todo.task",
	ID:          "id",
	Title:       "title",
	Description: "description",
	DueDate:     "duedate",
	IsCompleted: "iscompleted",
	ListID:      "todolistid",
	StatusID:    "statusid",
	CreatedAt:   "createdat",
}

func (t TodoTaskTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Description, t.DueDate, t.IsCompleted,
		t.ListID, t.StatusID, t.CreatedAt,
	}
}
