package spheres

// Mode selects what an Alt+click does.
type Mode int

const (
	// ModeAdd places a new sphere on each click.
	ModeAdd Mode = iota
	// ModeEdit moves the selected sphere's center on each click.
	ModeEdit
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeAdd:
		return "add"
	case ModeEdit:
		return "edit"
	default:
		return "unknown"
	}
}
