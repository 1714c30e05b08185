package distill

// ExtractResult holds the output of a general-purpose extractor.
type ExtractResult struct {
	// Content is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	Content string

	// Title is the page title from metadata, when available.
	Title string

	// Excerpt is a short summary of the content, when available.
	Excerpt string

	// Byline is the author attribution, when available.
	Byline string
}

// Extractor extracts main content from captured HTML, removing
// boilerplate. Implementations wrap general-purpose engines such as
// readability or trafilatura; the pipeline treats them as
// interchangeable.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	// An empty or unextractable page returns an error, never nil/nil.
	Extract(html string) (*ExtractResult, error)
}
