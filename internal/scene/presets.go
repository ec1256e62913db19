package scene

import "fmt"

// ConnectorPreset names one of the fixed arrow styles. Presets pin line
// width and curvature magnitude so every arrow in a scene shares the same
// visual language; callers pick a preset instead of raw parameters.
type ConnectorPreset string

const (
	// PresetSimple is a solid arrow with a slight bow.
	PresetSimple ConnectorPreset = "simple"
	// PresetThick is a straight, heavier solid arrow.
	PresetThick ConnectorPreset = "thick"
	// PresetDashed is a dashed arrow with a slight bow and reduced opacity.
	PresetDashed ConnectorPreset = "dashed"
)

// Preset parameters, in canvas units.
const (
	simpleWidth     = 0.35
	simpleCurvature = 0.1
	simpleOpacity   = 0.8

	thickWidth   = 0.6
	thickOpacity = 0.8

	dashedWidth     = 0.25
	dashedCurvature = 0.1
	dashedOpacity   = 0.6
)

// NewConnector builds a Connector from a named preset. The label may be
// empty; labelOffset is the fraction along the arrow where the label sits
// and must be in [0,1].
func NewConnector(preset ConnectorPreset, start, end Point, color, label string, labelOffset float64) (Connector, error) {
	c := Connector{
		Start:       start,
		End:         end,
		Color:       color,
		Label:       label,
		LabelOffset: labelOffset,
	}
	switch preset {
	case PresetSimple:
		c.Width = simpleWidth
		c.Curvature = simpleCurvature
		c.Opacity = simpleOpacity
	case PresetThick:
		c.Width = thickWidth
		c.Curvature = 0
		c.Opacity = thickOpacity
	case PresetDashed:
		c.Width = dashedWidth
		c.Curvature = dashedCurvature
		c.Dashed = true
		c.Opacity = dashedOpacity
	default:
		return Connector{}, fmt.Errorf("unknown connector preset: %s", preset)
	}
	if err := c.validate(); err != nil {
		return Connector{}, err
	}
	return c, nil
}
