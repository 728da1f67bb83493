package model

// The color and icon domains are closed sets: validation rejects anything
// outside them, and pickers in the presentation layer draw from the same
// lists. Colors are #RRGGBB codes; icons are identifiers from the app's
// icon font.

// Colors is the fixed set of twelve category colors.
var Colors = []string{
	"#EF4444", // red
	"#F97316", // orange
	"#F59E0B", // amber
	"#EAB308", // yellow
	"#10B981", // emerald
	"#14B8A6", // teal
	"#06B6D4", // cyan
	"#3B82F6", // blue
	"#6366F1", // indigo
	"#8B5CF6", // violet
	"#EC4899", // pink
	"#6B7280", // gray
}

// Icons is the fixed set of twenty category icon identifiers.
var Icons = []string{
	"Utensils",
	"Car",
	"Bed",
	"Plane",
	"Ticket",
	"ShoppingBag",
	"Coffee",
	"Camera",
	"Map",
	"Bus",
	"Train",
	"Fuel",
	"Gift",
	"Music",
	"Heart",
	"Briefcase",
	"Umbrella",
	"Wifi",
	"Phone",
	"Wallet",
}

var (
	colorSet = toSet(Colors)
	iconSet  = toSet(Icons)
)

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// ValidColor reports whether c is one of the twelve category colors.
func ValidColor(c string) bool {
	_, ok := colorSet[c]
	return ok
}

// ValidIcon reports whether name is one of the twenty icon identifiers.
func ValidIcon(name string) bool {
	_, ok := iconSet[name]
	return ok
}
