package vanilla

// ChromeClass is a typed identifier for the document chrome CSS classes.
type ChromeClass string

const (
	ClassDocument ChromeClass = "cardgen-document"
	ClassBody     ChromeClass = "cardgen-body"
	ClassEmpty    ChromeClass = "cardgen-empty"
)

// Default*Class values are applied when ChromeClasses overrides are empty.
const (
	DefaultDocumentClass = string(ClassDocument)
	DefaultBodyClass     = string(ClassBody)
	DefaultEmptyClass    = string(ClassEmpty)
)

// ChromeClasses overrides the classes placed on the document chrome.
type ChromeClasses struct {
	Document string
	Body     string
	Empty    string
}

func (c ChromeClasses) resolve() map[string]string {
	return map[string]string{
		"document": sanitizeClassList(c.Document, DefaultDocumentClass),
		"body":     sanitizeClassList(c.Body, DefaultBodyClass),
		"empty":    sanitizeClassList(c.Empty, DefaultEmptyClass),
	}
}
