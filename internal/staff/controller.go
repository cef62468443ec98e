package staff

// Cursor is the pointer affordance the UI should show.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorPointer
	CursorNotAllowed
)

// Controller turns raw pointer events into staff-position callbacks. All
// handlers run synchronously on the caller's event loop; the controller
// keeps only the current hover state.
type Controller struct {
	geom     Geometry
	disabled bool
	hovered  *Position

	// OnClick fires with the staff position under a click inside the
	// interactive area. The caller decides select vs. deselect vs.
	// capacity rejection.
	OnClick func(Position)
	// OnHover fires whenever the hover state changes; nil means the
	// pointer left the staff.
	OnHover func(*Position)
	// OnMenu fires on a right click inside the interactive area.
	OnMenu func(Position)
}

// NewController builds a controller over the given geometry.
func NewController(geom Geometry) *Controller {
	return &Controller{geom: geom}
}

// SetGeometry updates the staff geometry after a re-layout.
func (c *Controller) SetGeometry(geom Geometry) {
	c.geom = geom
}

// SetDisabled toggles the controller. Disabling clears any hover.
func (c *Controller) SetDisabled(disabled bool) {
	c.disabled = disabled
	if disabled {
		c.clearHover()
	}
}

// Hovered returns the staff position currently under the pointer, or
// nil.
func (c *Controller) Hovered() *Position {
	return c.hovered
}

// PointerMove updates the hover preview from pointer coordinates.
func (c *Controller) PointerMove(x, y int) {
	if c.disabled {
		return
	}
	pos, ok := c.geom.PositionInfoAt(x, y)
	if !ok {
		c.clearHover()
		return
	}
	if c.hovered != nil && c.hovered.LinePosition == pos.LinePosition {
		return
	}
	c.hovered = &pos
	if c.OnHover != nil {
		c.OnHover(c.hovered)
	}
}

// PointerClick fires OnClick when the point lies inside the interactive
// area.
func (c *Controller) PointerClick(x, y int) {
	if c.disabled || c.OnClick == nil {
		return
	}
	if pos, ok := c.geom.PositionInfoAt(x, y); ok {
		c.OnClick(pos)
	}
}

// PointerRightClick fires OnMenu for context-menu handling.
func (c *Controller) PointerRightClick(x, y int) {
	if c.disabled || c.OnMenu == nil {
		return
	}
	if pos, ok := c.geom.PositionInfoAt(x, y); ok {
		c.OnMenu(pos)
	}
}

// PointerLeave clears the hover preview.
func (c *Controller) PointerLeave() {
	c.clearHover()
}

// Cursor derives the pointer affordance from the controller state.
func (c *Controller) Cursor() Cursor {
	switch {
	case c.disabled:
		return CursorNotAllowed
	case c.hovered != nil:
		return CursorPointer
	default:
		return CursorDefault
	}
}

func (c *Controller) clearHover() {
	if c.hovered == nil {
		return
	}
	c.hovered = nil
	if c.OnHover != nil {
		c.OnHover(nil)
	}
}
