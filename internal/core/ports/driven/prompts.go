package driven

// PromptStore provides access to oracle prompt templates.
// Implementations may load prompts from user-editable files or embed
// them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should fall back to
	// an embedded default.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names used throughout the application.
const (
	// PromptNaming asks the oracle for a date/description/confidence
	// naming suggestion. Expects a %s placeholder for the document text.
	PromptNaming = "naming"

	// PromptBoundary asks the oracle to partition pages into documents.
	// Expects a %s placeholder for the enumerated page texts.
	PromptBoundary = "boundary"

	// PromptFieldExtraction asks the oracle to locate template fields.
	// Expects %s placeholders for the document text and the field list.
	PromptFieldExtraction = "field_extraction"
)
