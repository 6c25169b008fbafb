package gem

// Color is the category of a gem or the identity of a bird.
type Color string

const (
	Red    Color = "red"
	Blue   Color = "blue"
	Green  Color = "green"
	Yellow Color = "yellow"
	Purple Color = "purple" // wildcard
	Orange Color = "orange"
)

// Wild is the wildcard designation. A wild gem can be collected by any bird,
// and a wild bird can collect any gem.
const Wild = Purple

// Colors lists every gem color in palette order. Population draws from it.
var Colors = []Color{Red, Blue, Green, Yellow, Purple, Orange}

// Info is display metadata for a color.
type Info struct {
	Hex       string
	MaxTier   int
	MaxPayout float64
}

var palette = map[Color]Info{
	Red:    {Hex: "#E60000", MaxTier: MaxTier, MaxPayout: 40},
	Blue:   {Hex: "#0066CC", MaxTier: MaxTier, MaxPayout: 35},
	Green:  {Hex: "#00AA00", MaxTier: MaxTier, MaxPayout: 35},
	Yellow: {Hex: "#FFCC00", MaxTier: MaxTier, MaxPayout: 30},
	Purple: {Hex: "#AA00FF", MaxTier: MaxTier, MaxPayout: 45},
	Orange: {Hex: "#FF6600", MaxTier: MaxTier, MaxPayout: 50},
}

// InfoOf returns the metadata of c. Unknown colors get a gray entry.
func InfoOf(c Color) Info {
	if info, ok := palette[c]; ok {
		return info
	}
	return Info{Hex: "#808080", MaxTier: MaxTier, MaxPayout: 1}
}

// IsWild reports whether c is the wildcard designation.
func (c Color) IsWild() bool {
	return c == Wild
}

// Valid reports whether c is a known palette color.
func (c Color) Valid() bool {
	_, ok := palette[c]
	return ok
}

// String returns the color name.
func (c Color) String() string {
	return string(c)
}

// Short returns a one-letter code used by text renderers.
func (c Color) Short() string {
	switch c {
	case Red:
		return "R"
	case Blue:
		return "B"
	case Green:
		return "G"
	case Yellow:
		return "Y"
	case Purple:
		return "P"
	case Orange:
		return "O"
	default:
		return "?"
	}
}
