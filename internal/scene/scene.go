// Package scene defines the declarative description of a diagram: an ordered,
// append-only list of draw commands positioned in an abstract, resolution
// independent canvas. The scene carries no pixels; rasterization is the
// renderer's job.
//
// The canvas uses a y-up coordinate system with the origin in the bottom-left
// corner. Draw order is insertion order: later commands paint on top of
// earlier ones, there is no z-index.
package scene

import "fmt"

// Align selects horizontal or vertical text anchoring.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
	AlignTop    Align = "top"
	AlignMiddle Align = "middle"
	AlignBottom Align = "bottom"
)

// Axis selects the orientation of a grid line.
type Axis string

const (
	AxisHorizontal Axis = "horizontal"
	AxisVertical   Axis = "vertical"
)

// Typeface selects one of the bundled font faces.
type Typeface string

const (
	FaceRegular Typeface = "regular"
	FaceBold    Typeface = "bold"
	FaceMono    Typeface = "mono"
)

// InvalidGeometryError reports a draw command that violates its shape
// invariant. It is returned at scene-construction time so an invalid
// command never reaches the renderer.
type InvalidGeometryError struct {
	Kind   string // command variant, e.g. "polygon"
	Reason string
}

func (e *InvalidGeometryError) Error() string {
	return fmt.Sprintf("invalid %s geometry: %s", e.Kind, e.Reason)
}

// Command is one primitive drawing instruction. The set of variants is
// closed: Panel, Label, Marker, Polygon, Connector and GridLine.
type Command interface {
	// validate checks the variant's shape invariant. Unexported so the
	// command set stays closed to this package.
	validate() error
}

// Panel is a rounded rectangle, optionally stroked.
type Panel struct {
	Pos          Point // bottom-left corner
	Width        float64
	Height       float64
	Fill         string // hex color, empty for no fill
	Border       string // hex color, empty for no border
	BorderWidth  float64
	CornerRadius float64
	Opacity      float64
}

func (p Panel) validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return &InvalidGeometryError{Kind: "panel", Reason: fmt.Sprintf("size must be positive, got %gx%g", p.Width, p.Height)}
	}
	if err := checkOpacity("panel", p.Opacity); err != nil {
		return err
	}
	return nil
}

// Label is a piece of anchored text. Size is the glyph height in canvas
// units; the renderer maps it to pixels via the export scale factor.
type Label struct {
	Pos     Point
	Text    string
	Size    float64
	Color   string
	HAlign  Align
	VAlign  Align
	Face    Typeface
	Opacity float64
}

func (l Label) validate() error {
	if l.Text == "" {
		return &InvalidGeometryError{Kind: "label", Reason: "text must not be empty"}
	}
	if l.Size <= 0 {
		return &InvalidGeometryError{Kind: "label", Reason: "font size must be positive"}
	}
	return checkOpacity("label", l.Opacity)
}

// Marker is a circle, filled or drawn as a ring.
type Marker struct {
	Center      Point
	Radius      float64
	Fill        string
	Stroke      string
	StrokeWidth float64
	Filled      bool
	Opacity     float64
}

func (m Marker) validate() error {
	if m.Radius <= 0 {
		return &InvalidGeometryError{Kind: "marker", Reason: fmt.Sprintf("radius must be positive, got %g", m.Radius)}
	}
	return checkOpacity("marker", m.Opacity)
}

// Polygon is a closed shape given by its vertices in order.
type Polygon struct {
	Vertices    []Point
	Fill        string
	Stroke      string
	StrokeWidth float64
	Filled      bool
	Opacity     float64
}

func (p Polygon) validate() error {
	if len(p.Vertices) < 3 {
		return &InvalidGeometryError{Kind: "polygon", Reason: fmt.Sprintf("need at least 3 vertices, got %d", len(p.Vertices))}
	}
	return checkOpacity("polygon", p.Opacity)
}

// Connector is a directed arrow between two points. Curvature 0 renders a
// straight line; a non-zero value bows the arc perpendicular to the
// start-end direction, in the direction given by its sign. LabelOffset is
// the fraction along the connector at which the optional label sits.
type Connector struct {
	Start       Point
	End         Point
	Color       string
	Width       float64
	Curvature   float64
	Dashed      bool
	Opacity     float64
	Label       string
	LabelOffset float64
}

func (c Connector) validate() error {
	if c.LabelOffset < 0 || c.LabelOffset > 1 {
		return &InvalidGeometryError{Kind: "connector", Reason: fmt.Sprintf("label offset fraction must be in [0,1], got %g", c.LabelOffset)}
	}
	return checkOpacity("connector", c.Opacity)
}

// GridLine is a hairline spanning the whole canvas at a fixed coordinate.
type GridLine struct {
	Axis    Axis
	Coord   float64
	Color   string
	Opacity float64
}

func (g GridLine) validate() error {
	return checkOpacity("grid line", g.Opacity)
}

func checkOpacity(kind string, o float64) error {
	if o < 0 || o > 1 {
		return &InvalidGeometryError{Kind: kind, Reason: fmt.Sprintf("opacity must be in [0,1], got %g", o)}
	}
	return nil
}

// Scene is the ordered collection of draw commands for one diagram. It is
// built once, consumed once by the renderer, and never mutated after that.
type Scene struct {
	Width      float64
	Height     float64
	Background string

	commands []Command
}

// New creates an empty scene with the given canvas bounds and background
// color. It fails only on non-positive dimensions.
func New(width, height float64, background string) (*Scene, error) {
	if width <= 0 || height <= 0 {
		return nil, &InvalidGeometryError{Kind: "scene", Reason: fmt.Sprintf("canvas size must be positive, got %gx%g", width, height)}
	}
	return &Scene{Width: width, Height: height, Background: background}, nil
}

// Add validates cmd and appends it to the scene. A zero-opacity or
// empty-color command is not an error; it still enters the command list and
// paints (possibly invisibly). Only geometry violations are rejected.
func (s *Scene) Add(cmd Command) error {
	if err := cmd.validate(); err != nil {
		return err
	}
	s.commands = append(s.commands, cmd)
	return nil
}

// Commands returns the draw commands in insertion order. The returned slice
// is owned by the scene and must not be modified.
func (s *Scene) Commands() []Command {
	return s.commands
}

// Len returns the number of draw commands in the scene.
func (s *Scene) Len() int {
	return len(s.commands)
}
