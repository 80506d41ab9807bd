// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// TodoStatusTable represents the 'todo.status' table
type TodoStatusTable struct {
	Table string
	ID    string
	Name  string
	Color string
}

// TodoStatus is the schema definition for todo.status
var TodoStatus = TodoStatusTable{
	Table: "todo.status",
	ID:    "id",
	Name:  "name",
	Color: "color",
}

func (t TodoStatusTable) Columns() []string {
	return []string{t.ID, t.Name, t.Color}
}
