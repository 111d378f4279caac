// Package render defines the Renderer contract: the panel data
// objects the dashboard's TUI layer consumes, the layout breakpoints,
// the theme palette model, and keybinding dispatch. It deliberately
// does not draw anything -- no curses/terminal library is imported
// here, matching the corpus's complete absence of one.
package render

// Role is a semantic color role a themed element maps to.
type Role int

const (
	RoleNormal Role = iota
	RoleHighlight
	RoleWarning
	RoleError
	RoleDim
	RoleHeader
	RoleFooter
	RoleNmap
)

// ColorPair is a foreground/background pair in whatever color space
// the concrete terminal library ultimately wants; Renderer
// implementations translate these into their own representation.
type ColorPair struct {
	FG string
	BG string
}

// Theme maps semantic roles to color pairs.
type Theme struct {
	Name    string
	Palette map[Role]ColorPair
}

// Phosphor, Amber, and Blue are the three built-in palettes, evoking
// period CRT terminals.
var (
	Phosphor = Theme{Name: "phosphor", Palette: map[Role]ColorPair{
		RoleNormal:    {FG: "#33ff33", BG: "#000000"},
		RoleHighlight: {FG: "#ffffff", BG: "#1a3d1a"},
		RoleWarning:   {FG: "#ffcc00", BG: "#000000"},
		RoleError:     {FG: "#ff3333", BG: "#000000"},
		RoleDim:       {FG: "#1f6b1f", BG: "#000000"},
		RoleHeader:    {FG: "#000000", BG: "#33ff33"},
		RoleFooter:    {FG: "#33ff33", BG: "#000000"},
		RoleNmap:      {FG: "#ff9900", BG: "#000000"},
	}}
	Amber = Theme{Name: "amber", Palette: map[Role]ColorPair{
		RoleNormal:    {FG: "#ffb000", BG: "#000000"},
		RoleHighlight: {FG: "#ffffff", BG: "#4d3300"},
		RoleWarning:   {FG: "#ffee00", BG: "#000000"},
		RoleError:     {FG: "#ff3333", BG: "#000000"},
		RoleDim:       {FG: "#805800", BG: "#000000"},
		RoleHeader:    {FG: "#000000", BG: "#ffb000"},
		RoleFooter:    {FG: "#ffb000", BG: "#000000"},
		RoleNmap:      {FG: "#ff3333", BG: "#000000"},
	}}
	Blue = Theme{Name: "blue", Palette: map[Role]ColorPair{
		RoleNormal:    {FG: "#33ccff", BG: "#000000"},
		RoleHighlight: {FG: "#ffffff", BG: "#1a3d4d"},
		RoleWarning:   {FG: "#ffcc00", BG: "#000000"},
		RoleError:     {FG: "#ff3333", BG: "#000000"},
		RoleDim:       {FG: "#1a6680", BG: "#000000"},
		RoleHeader:    {FG: "#000000", BG: "#33ccff"},
		RoleFooter:    {FG: "#33ccff", BG: "#000000"},
		RoleNmap:      {FG: "#ff9900", BG: "#000000"},
	}}
)

var themeCycle = []Theme{Phosphor, Amber, Blue}

// ThemeByName looks up a built-in palette by its persisted name,
// falling back to Phosphor for an unrecognized or empty name.
func ThemeByName(name string) Theme {
	for _, t := range themeCycle {
		if t.Name == name {
			return t
		}
	}
	return Phosphor
}

// NextTheme returns the palette that follows current in the fixed
// cycle phosphor -> amber -> blue -> phosphor.
func NextTheme(current Theme) Theme {
	for i, t := range themeCycle {
		if t.Name == current.Name {
			return themeCycle[(i+1)%len(themeCycle)]
		}
	}
	return Phosphor
}
