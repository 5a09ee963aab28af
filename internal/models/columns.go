package models

// Column is a board column. Its key is the status value of its tasks.
type Column struct {
	Key   Status `json:"key" yaml:"key" mapstructure:"key"`
	Label string `json:"label" yaml:"label" mapstructure:"label"`
	Color string `json:"color" yaml:"color" mapstructure:"color"`
}

// Columns is the ordered set of board columns
type Columns []Column

// DefaultColumns is the reference configuration
func DefaultColumns() Columns {
	return Columns{
		{Key: StatusTodo, Label: "To Do", Color: "#7aa2f7"},
		{Key: StatusInProgress, Label: "In Progress", Color: "#e0af68"},
		{Key: StatusDone, Label: "Completed", Color: "#9ece6a"},
	}
}

// Has reports whether s is a column key
func (c Columns) Has(s Status) bool {
	return c.Index(s) >= 0
}

// Index returns the position of column s, or -1
func (c Columns) Index(s Status) int {
	for i, col := range c {
		if col.Key == s {
			return i
		}
	}
	return -1
}

// First returns the key of the first column
func (c Columns) First() Status {
	if len(c) == 0 {
		return StatusTodo
	}
	return c[0].Key
}

// Keys returns the column keys in order
func (c Columns) Keys() []Status {
	keys := make([]Status, len(c))
	for i, col := range c {
		keys[i] = col.Key
	}
	return keys
}

// Label returns the label of column s, falling back to the key itself
func (c Columns) Label(s Status) string {
	if i := c.Index(s); i >= 0 && c[i].Label != "" {
		return c[i].Label
	}
	return string(s)
}
