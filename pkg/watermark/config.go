package watermark

import (
	"fmt"
	"strings"
)

// Style selects how copies of the glyph layer are laid out.
type Style int

const (
	StyleStriped Style = iota
	StyleCentral
	StyleGrid
)

func (s Style) String() string {
	switch s {
	case StyleStriped:
		return "striped"
	case StyleCentral:
		return "central"
	case StyleGrid:
		return "grid"
	}
	return fmt.Sprintf("style(%d)", int(s))
}

// ParseStyle maps a style name to a Style.
func ParseStyle(name string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "striped", "stripe":
		return StyleStriped, nil
	case "central", "center":
		return StyleCentral, nil
	case "grid", "multiple":
		return StyleGrid, nil
	}
	return 0, fmt.Errorf("%w: unknown style %q", ErrInvalidArgument, name)
}

// CompositingMode selects whether the laid out canvas is rotated once or every
// tile is rotated on its own before being pasted onto the source.
type CompositingMode int

const (
	ModeAuto CompositingMode = iota
	ModeRotateCanvas
	ModeRotateTiles
)

func (m CompositingMode) String() string {
	switch m {
	case ModeAuto:
		return "auto"
	case ModeRotateCanvas:
		return "canvas"
	case ModeRotateTiles:
		return "tiles"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode maps a mode name to a CompositingMode.
func ParseMode(name string) (CompositingMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return ModeAuto, nil
	case "canvas":
		return ModeRotateCanvas, nil
	case "tiles", "tile":
		return ModeRotateTiles, nil
	}
	return 0, fmt.Errorf("%w: unknown compositing mode %q", ErrInvalidArgument, name)
}

// Config describes one watermark. It is a plain value; copies are independent.
type Config struct {
	Text  string
	Style Style
	Mode  CompositingMode
	// Angle is the counter-clockwise rotation in degrees.
	Angle float64
	// Color is a colour name ("red") or hex colour: #rgb, #rrggbb or #rrggbbaa.
	Color string
	// FontPath points at a TTF/OTF file. Empty selects the embedded Go Regular face.
	FontPath string
	// FontHeightCrop caps the rendered box height at Size*FontHeightCrop per
	// line. Zero disables the cap.
	FontHeightCrop float64
	Opacity        float64
	Quality        int
	Size           int
	Space          int
	// CharsPerLine wraps central and grid text. Zero disables wrapping.
	CharsPerLine int
	LineSpacing  int
}

func DefaultConfig() Config {
	return Config{
		Style:          StyleStriped,
		Mode:           ModeAuto,
		Angle:          30,
		Color:          "#936",
		FontHeightCrop: 1.2,
		Opacity:        0.15,
		Quality:        80,
		Size:           50,
		Space:          75,
		CharsPerLine:   8,
		LineSpacing:    5,
	}
}

// Validate reports the first field outside its allowed range.
func (c Config) Validate() error {
	if c.Opacity < 0 || c.Opacity > 1 {
		return fmt.Errorf("%w: opacity %v must be within [0, 1]", ErrInvalidArgument, c.Opacity)
	}
	if c.Size <= 0 {
		return fmt.Errorf("%w: size %d must be positive", ErrInvalidArgument, c.Size)
	}
	if c.Space < 0 {
		return fmt.Errorf("%w: space %d must not be negative", ErrInvalidArgument, c.Space)
	}
	if c.CharsPerLine < 0 {
		return fmt.Errorf("%w: chars per line %d must not be negative", ErrInvalidArgument, c.CharsPerLine)
	}
	if c.LineSpacing < 0 {
		return fmt.Errorf("%w: line spacing %d must not be negative", ErrInvalidArgument, c.LineSpacing)
	}
	if c.FontHeightCrop < 0 {
		return fmt.Errorf("%w: font height crop %v must not be negative", ErrInvalidArgument, c.FontHeightCrop)
	}
	if c.Quality < 1 || c.Quality > 100 {
		return fmt.Errorf("%w: quality %d must be within [1, 100]", ErrInvalidArgument, c.Quality)
	}
	if c.Style < StyleStriped || c.Style > StyleGrid {
		return fmt.Errorf("%w: unknown style %d", ErrInvalidArgument, int(c.Style))
	}
	if c.Mode < ModeAuto || c.Mode > ModeRotateTiles {
		return fmt.Errorf("%w: unknown compositing mode %d", ErrInvalidArgument, int(c.Mode))
	}
	if _, err := ParseColor(c.Color); err != nil {
		return err
	}
	return nil
}

// ResolvedMode returns the concrete compositing mode for the config.
func (c Config) ResolvedMode() CompositingMode {
	if c.Mode != ModeAuto {
		return c.Mode
	}
	if c.Style == StyleGrid {
		return ModeRotateTiles
	}
	return ModeRotateCanvas
}

// Key renders every field that affects the output in a stable form.
func (c Config) Key() string {
	return fmt.Sprintf("text=%q|style=%s|mode=%s|angle=%g|color=%s|font=%s|crop=%g|opacity=%g|quality=%d|size=%d|space=%d|cpl=%d|ls=%d",
		c.Text, c.Style, c.ResolvedMode(), c.Angle, strings.ToLower(c.Color), c.FontPath,
		c.FontHeightCrop, c.Opacity, c.Quality, c.Size, c.Space, c.CharsPerLine, c.LineSpacing)
}
