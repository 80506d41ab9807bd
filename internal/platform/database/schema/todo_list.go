// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// TodoListTable represents the 'todo.list' table
type TodoListTable struct {
	Table       string
	ID          string
	Title       string
	Description string
	OwnerID     string
	CreatedAt   string
}

// TodoList is the schema definition for todo.list
var TodoList = TodoListTable{
	Table:       "todo.list",
	ID:          "id",
	Title:       "title",
	Description: "description",
	OwnerID:     "ownerid",
	CreatedAt:   "createdat",
}

func (t TodoListTable) Columns() []string {
	return []string{t.ID, t.Title, t.Description, t.OwnerID, t.CreatedAt}
}
