package domain

// Model identifies an oracle model tier.
type Model string

const (
	// ModelHaiku is the fastest, smallest oracle model.
	ModelHaiku Model = "haiku"

	// ModelSonnet is the balanced default.
	ModelSonnet Model = "sonnet"

	// ModelOpus is the most capable, slowest model.
	ModelOpus Model = "opus"
)

// ParseModel validates a model identifier.
func ParseModel(s string) (Model, bool) {
	switch Model(s) {
	case ModelHaiku, ModelSonnet, ModelOpus:
		return Model(s), true
	}
	return "", false
}

// ContextBudget returns the conservative character budget for prompting
// this model. Budgets are well below real context windows.
func (m Model) ContextBudget() int {
	switch m {
	case ModelHaiku:
		return 50_000
	case ModelOpus:
		return 150_000
	default:
		return 100_000
	}
}

// SpeedMode trades processing time against extraction thoroughness.
type SpeedMode string

const (
	// SpeedFast processes a single page at low OCR resolution.
	SpeedFast SpeedMode = "fast"

	// SpeedBalanced processes up to three pages at medium resolution.
	SpeedBalanced SpeedMode = "balanced"

	// SpeedThorough processes every page at high resolution.
	SpeedThorough SpeedMode = "thorough"
)

// ParseSpeedMode validates a speed mode identifier.
func ParseSpeedMode(s string) (SpeedMode, bool) {
	switch SpeedMode(s) {
	case SpeedFast, SpeedBalanced, SpeedThorough:
		return SpeedMode(s), true
	}
	return "", false
}

// OCRDPI returns the render resolution for OCR in this mode.
func (m SpeedMode) OCRDPI() int {
	switch m {
	case SpeedFast:
		return 150
	case SpeedThorough:
		return 300
	default:
		return 200
	}
}

// MaxPages returns the page-processing cap for this mode. 0 means
// unlimited.
func (m SpeedMode) MaxPages() int {
	switch m {
	case SpeedFast:
		return 1
	case SpeedThorough:
		return 0
	default:
		return 3
	}
}

// MinTextThreshold is the minimum stripped page-text length for a page
// to count as text-based rather than scanned.
const MinTextThreshold = 50

// Settings is the explicit per-call configuration value. It is threaded
// through every pipeline call rather than held as ambient global state,
// so concurrent or repeated calls cannot leak settings into each other.
type Settings struct {
	// Model is the oracle model tier to consult.
	Model Model

	// Speed controls OCR resolution and the page cap.
	Speed SpeedMode

	// OCRLanguage is the tesseract language code.
	OCRLanguage string

	// DryRun simulates renames without any side effects.
	DryRun bool

	// Force reprocesses files that already have a ledger entry.
	Force bool

	// NoPatterns bypasses the learning engine and always asks the oracle.
	NoPatterns bool
}

// DefaultSettings returns the standard configuration.
func DefaultSettings() Settings {
	return Settings{
		Model:       ModelSonnet,
		Speed:       SpeedBalanced,
		OCRLanguage: "eng",
	}
}
