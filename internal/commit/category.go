package commit

// Category is the changelog section a title belongs to.
type Category int

const (
	// Unknown covers titles whose type code has no section.
	Unknown Category = iota
	// Breaking covers every title flagged with the breaking marker.
	Breaking
	// Feature covers "new" titles.
	Feature
	// Fix covers "fix" titles.
	Fix
	// Other covers "rwt" (rework) titles.
	Other
)

// typeCategories maps type codes to their section.
var typeCategories = map[string]Category{
	"new": Feature,
	"fix": Fix,
	"rwt": Other,
}

// CategoryForType returns the section for a type code, ignoring the breaking marker.
// Codes are matched exactly; unrecognised codes map to Unknown.
func CategoryForType(code string) Category {
	if c, ok := typeCategories[code]; ok {
		return c
	}
	return Unknown
}

// String returns the section label.
func (c Category) String() string {
	switch c {
	case Breaking:
		return "Breaking Changes"
	case Feature:
		return "Features"
	case Fix:
		return "Fixes"
	case Other:
		return "Other Changes"
	default:
		return "Uncategorized"
	}
}

// Key returns a stable lowercase identifier, used in machine-readable output.
func (c Category) Key() string {
	switch c {
	case Breaking:
		return "breaking"
	case Feature:
		return "features"
	case Fix:
		return "fixes"
	case Other:
		return "other"
	default:
		return "uncategorized"
	}
}

// TypeCodes returns the recognised type codes in section order.
func TypeCodes() []string {
	return []string{"new", "fix", "rwt"}
}
