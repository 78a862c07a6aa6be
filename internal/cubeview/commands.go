package cubeview

import (
	"fmt"
	"strconv"
	"strings"
)

// Command is a discrete UI intent consumed by Controller.Apply.
type Command interface {
	Kind() string
}

type (
	ToggleSlice struct{ Slice int }
	ShowAll     struct{}
	HideAll     struct{}
	SelectFrame struct{ Frame int }
	ResetView   struct{}
)

func (ToggleSlice) Kind() string { return "toggle" }
func (ShowAll) Kind() string     { return "show_all" }
func (HideAll) Kind() string     { return "hide_all" }
func (SelectFrame) Kind() string { return "select_frame" }
func (ResetView) Kind() string   { return "reset" }

// ParseCommand reads the textual form used by configuration files:
// "frame N", "toggle N", "show-all", "hide-all", "reset". N is 1-based, as
// printed on the viewer buttons.
func ParseCommand(s string) (Command, error) {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	num := func() (int, error) {
		if len(fields) != 2 {
			return 0, fmt.Errorf("command %q needs exactly one number", s)
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 1 {
			return 0, fmt.Errorf("command %q: %q is not a positive number", s, fields[1])
		}
		return n - 1, nil
	}
	switch fields[0] {
	case "frame":
		n, err := num()
		if err != nil {
			return nil, err
		}
		return SelectFrame{Frame: n}, nil
	case "toggle", "slice":
		n, err := num()
		if err != nil {
			return nil, err
		}
		return ToggleSlice{Slice: n}, nil
	case "show-all", "showall":
		return ShowAll{}, nil
	case "hide-all", "hideall":
		return HideAll{}, nil
	case "reset":
		return ResetView{}, nil
	}
	return nil, fmt.Errorf("unknown command %q", s)
}
