package compositor

// Quality controls how much work sampling-heavy operations may spend.
//
// The context carries one quality value per run, chosen from the tree's
// render-mode or edit-mode setting depending on whether the run is a final
// render. Operations are free to ignore it; filters typically degrade
// their sampling step at lower quality.
type Quality int

const (
	// QualityHigh performs full-resolution sampling (default for renders).
	QualityHigh Quality = iota

	// QualityMedium halves sampling effort where an operation supports it.
	QualityMedium

	// QualityLow reduces sampling to a quarter, for fast previews.
	QualityLow
)

// String returns the quality name.
func (q Quality) String() string {
	switch q {
	case QualityHigh:
		return "High"
	case QualityMedium:
		return "Medium"
	case QualityLow:
		return "Low"
	default:
		return "Unknown"
	}
}

// Step returns the sampling step divisor for the quality: 1, 2 or 4.
// Operations divide their sample counts by it.
func (q Quality) Step() int {
	switch q {
	case QualityMedium:
		return 2
	case QualityLow:
		return 4
	default:
		return 1
	}
}
