package editor

import (
	"errors"
	"fmt"

	"VectorBoard/internal/state"
)

// ErrInvalidConfiguration is returned for a Config the editor cannot draw with.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Tool is the shape the primary button draws.
type Tool int

const (
	ToolLine Tool = iota
	ToolRectangle
	ToolCircle
	ToolCurve
	ToolPolyline
	ToolText
)

var toolNames = []string{"Line", "Rectangle", "Circle", "Curve", "Polyline", "Text"}

// ToolNames lists the tools in toolbar order.
func ToolNames() []string {
	return append([]string(nil), toolNames...)
}

func (t Tool) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Tool(%d)", int(t))
	}
	return toolNames[t]
}

// Valid reports whether t is a known tool.
func (t Tool) Valid() bool {
	return t >= ToolLine && t <= ToolText
}

// ParseTool maps a toolbar label back to a Tool.
func ParseTool(s string) (Tool, bool) {
	for i, name := range toolNames {
		if name == s {
			return Tool(i), true
		}
	}
	return ToolLine, false
}

// Config is everything the host pushes into the editor: the active tool
// and the pen, grid and font new shapes are made with.
type Config struct {
	Tool  Tool
	Style state.Style
	Grid  state.GridConfig
	Font  state.Font
}

// DefaultConfig is a black 3px solid line tool with the grid off.
func DefaultConfig() Config {
	return Config{
		Tool:  ToolLine,
		Style: state.DefaultStyle(),
		Grid:  state.DefaultGrid(),
		Font:  state.DefaultFont(),
	}
}

// Validate checks every field and wraps ErrInvalidConfiguration on failure.
func (c Config) Validate() error {
	switch {
	case !c.Tool.Valid():
		return fmt.Errorf("%w: unknown tool %d", ErrInvalidConfiguration, int(c.Tool))
	case !c.Style.Dash.Valid():
		return fmt.Errorf("%w: unknown line style %d", ErrInvalidConfiguration, int(c.Style.Dash))
	case c.Style.Width <= 0:
		return fmt.Errorf("%w: pen width %d", ErrInvalidConfiguration, c.Style.Width)
	case c.Grid.CellSize <= 0:
		return fmt.Errorf("%w: grid cell size %d", ErrInvalidConfiguration, c.Grid.CellSize)
	case c.Font.Size <= 0:
		return fmt.Errorf("%w: font size %d", ErrInvalidConfiguration, c.Font.Size)
	case !state.KnownFamily(c.Font.Family):
		return fmt.Errorf("%w: unknown font %q", ErrInvalidConfiguration, c.Font.Family)
	}
	return nil
}
