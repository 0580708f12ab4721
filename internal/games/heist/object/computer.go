package object

// Command is a room-wide effect chosen on a computer.
type Command int

const (
	CommandNone Command = iota
	CommandDisableDrones
	CommandDisableDogs
)

func (c Command) String() string {
	switch c {
	case CommandDisableDrones:
		return "Disable drones"
	case CommandDisableDogs:
		return "Disable dogs"
	default:
		return "None"
	}
}

// MenuOptions lists the computer menu entries in display order.
var MenuOptions = []Command{CommandDisableDrones, CommandDisableDogs}

type menu struct {
	open   bool
	cursor int
}

// MenuOpen reports whether the computer menu is showing.
func (o *Object) MenuOpen() bool {
	return o.menu.open
}

// MenuCursor returns the highlighted option index.
func (o *Object) MenuCursor() int {
	return o.menu.cursor
}

// MenuMove moves the cursor by delta, wrapping around.
func (o *Object) MenuMove(delta int) {
	if !o.menu.open {
		return
	}
	n := len(MenuOptions)
	o.menu.cursor = ((o.menu.cursor+delta)%n + n) % n
}

// MenuSelect closes the menu and returns the highlighted command.
func (o *Object) MenuSelect() Command {
	if !o.menu.open {
		return CommandNone
	}
	cmd := MenuOptions[o.menu.cursor]
	o.menu = menu{}
	return cmd
}

// MenuClose closes the menu without a selection.
func (o *Object) MenuClose() {
	o.menu = menu{}
}
