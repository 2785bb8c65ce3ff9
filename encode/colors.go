package encode

import (
	"strings"

	"github.com/fatih/color"
	"github.com/signadot/docval/doc"
)

type Colorable struct {
	Type doc.Type
	Attr ColorAttr
}

type ColorAttr int

const (
	FieldColor ColorAttr = iota
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
	for _, t := range doc.Types() {
		colors.Map[Colorable{Type: t, Attr: SepColor}] = color.RGB(255, 0, 196).SprintfFunc()
	}
	able := Colorable{Attr: ValueColor}

	able.Type = doc.NullType
	colors.Map[able] = color.RGB(168, 0, 196).SprintfFunc()

	able.Type = doc.BoolType
	colors.Map[able] = color.CyanString

	able.Type = doc.IntType
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()
	able.Type = doc.DoubleType
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()

	able.Type = doc.StringType
	colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()
	able.Type = doc.DateType
	colors.Map[able] = color.RGB(198, 198, 46).SprintfFunc()

	able.Type = doc.DictionaryType
	able.Attr = FieldColor
	colors.Map[able] = color.RGB(128, 168, 196).SprintfFunc()
	able.Attr = SepColor
	colors.Map[able] = color.RGB(196, 128, 128).SprintfFunc()

	// blob placeholders print as dictionaries with a muted key color
	able.Type = doc.BlobType
	able.Attr = FieldColor
	colors.Map[able] = color.RGB(96, 96, 96).SprintfFunc()
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.ReplaceAll(v, "%", "%%"))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(t doc.Type, a ColorAttr, s string) string {
	return c.Get(t, a)(s)
}

func (c *Colors) Get(t doc.Type, a ColorAttr) func(string, ...any) string {
	f := c.Map[Colorable{Type: t, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}
