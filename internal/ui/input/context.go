package input

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	CursorIndex int
	Items       int
	Mode        string
	Reminders   string
}

// Cursor returns the current cursor index
func (c *ModelContext) Cursor() int {
	return c.CursorIndex
}

// ItemCount returns the number of rows the cursor moves over
func (c *ModelContext) ItemCount() int {
	return c.Items
}

// ResultMode returns the classification mode of the current result
func (c *ModelContext) ResultMode() string {
	return c.Mode
}

// RemindersText returns the reminder offsets as shown in the editor
func (c *ModelContext) RemindersText() string {
	return c.Reminders
}
