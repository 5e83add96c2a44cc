package listing

import (
	"strings"

	"github.com/camarero/camarero/resource"
)

// ActionsColumnKey is reserved: the controller always appends the actions
// column itself and rejects configurations that try to supply it.
const ActionsColumnKey = "actions"

// Column maps one resource field to a table column. When Render is set it
// fully replaces default field access.
type Column struct {
	Key    string
	Header string
	Render func(resource.Value) string
}

type ActionKind string

const (
	ActionEdit   ActionKind = "edit"
	ActionDelete ActionKind = "delete"
	ActionCustom ActionKind = "custom"
)

// Action is one affordance in the synthesized actions column.
type Action struct {
	Kind  ActionKind
	Label string
	// Path is the navigation target for edit actions; custom actions
	// carry whatever their supplier put here.
	Path string
}

// Headers lists the configured column headers plus the synthesized
// actions header.
func (c *Controller) Headers() []string {
	headers := make([]string, 0, len(c.columns)+1)
	for _, column := range c.columns {
		headers = append(headers, column.Header)
	}
	return append(headers, "Actions")
}

// Row renders one resource through the column contract: a column's Render
// function wins, otherwise the field is read by key.
func (c *Controller) Row(item resource.Value) []string {
	cells := make([]string, 0, len(c.columns))
	for _, column := range c.columns {
		if column.Render != nil {
			cells = append(cells, column.Render(item))
			continue
		}
		field, ok := resource.Field(item, column.Key)
		if !ok {
			cells = append(cells, "")
			continue
		}
		text, _ := resource.Stringify(field)
		cells = append(cells, text)
	}
	return cells
}

// Rows renders the cached collection.
func (c *Controller) Rows() [][]string {
	items := c.Items()
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, c.Row(item))
	}
	return rows
}

// ActionsFor synthesizes the actions column for one resource: custom
// actions first, then edit (when an add path is configured), then delete
// (when a delete collaborator was supplied).
func (c *Controller) ActionsFor(item resource.Value) []Action {
	actions := append([]Action(nil), c.customActions...)

	if c.addPath != "" {
		if id, ok := resource.ID(item); ok {
			actions = append(actions, Action{
				Kind:  ActionEdit,
				Label: "Edit",
				Path:  EditPath(c.addPath, id),
			})
		}
	}
	if c.deleter != nil {
		actions = append(actions, Action{Kind: ActionDelete, Label: "Delete"})
	}
	return actions
}

// EditPath derives the edit route from the add route by textual
// substitution: /products/add -> /products/edit/{id}.
func EditPath(addPath, id string) string {
	return strings.Replace(addPath, "/add", "/edit", 1) + "/" + id
}
