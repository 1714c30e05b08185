package distill

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should be clean HTML (a winning candidate or an
	// Extractor's output), not the raw capture.
	Convert(html string) (string, error)
}
