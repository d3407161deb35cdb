package encode

import (
	"github.com/confix-format/go-confix/ir"

	"github.com/fatih/color"
)

type Colorable struct {
	Kind ir.Kind
	Attr ColorAttr
}

type ColorAttr int

const (
	TagColor ColorAttr = iota
	FieldColor
	ValueColor
	SepColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	kinds := []ir.Kind{
		ir.KindScalar, ir.KindArray, ir.KindMap,
		ir.KindCredential, ir.KindEnvelope, ir.KindRaw,
	}
	for _, k := range kinds {
		able := Colorable{Kind: k, Attr: TagColor}
		colors.Map[able] = color.RGB(74, 92, 138).SprintfFunc()
		able.Attr = SepColor
		colors.Map[able] = color.RGB(255, 0, 196).SprintfFunc()
		able.Attr = FieldColor
		colors.Map[able] = color.RGB(196, 96, 16).SprintfFunc()
	}
	colors.Map[Colorable{Kind: ir.KindRaw, Attr: ValueColor}] = color.BlueString
	colors.Map[Colorable{Kind: ir.KindEnvelope, Attr: ValueColor}] = color.HiBlackString
	colors.Map[Colorable{Kind: ir.KindCredential, Attr: ValueColor}] = color.HiBlackString
	colors.Map[Colorable{Kind: ir.KindScalar, Attr: ValueColor}] = color.RGB(128, 216, 236).SprintfFunc()
	return colors
}

func colorDefault(s string, args ...any) string {
	if len(args) == 0 {
		return s
	}
	return color.WhiteString(s, args...)
}

func (c *Colors) Color(k ir.Kind, attr ColorAttr, s string) string {
	f := c.Map[Colorable{Kind: k, Attr: attr}]
	if f == nil {
		f = c.Default
	}
	return f("%s", s)
}

func (es *EncState) color(k ir.Kind, attr ColorAttr, s string) string {
	if es.colors == nil {
		return s
	}
	return es.colors.Color(k, attr, s)
}
