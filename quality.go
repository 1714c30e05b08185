package distill

// Metrics describes the measurable properties of a candidate content
// node. Metrics are recomputed per candidate and never cached.
type Metrics struct {
	// CharacterCount is the number of runes of visible text.
	CharacterCount int `json:"characterCount"`

	// ParagraphCount is the number of text-bearing block elements.
	ParagraphCount int `json:"paragraphCount"`

	// LinkDensity is anchor text length divided by total text length.
	LinkDensity float64 `json:"linkDensity"`

	// AvgParagraphLength is CharacterCount over ParagraphCount.
	AvgParagraphLength float64 `json:"avgParagraphLength"`

	// HeadingCount is the number of h1-h6 elements.
	HeadingCount int `json:"headingCount"`

	// SignalToNoise is visible text length over serialized size.
	SignalToNoise float64 `json:"signalToNoiseRatio"`

	// StructureScore is a capped composite of semantic-container and
	// heading counts, 0-100.
	StructureScore int `json:"structureScore"`
}

// GateResult is the verdict of one quality gate.
type GateResult struct {
	// Passed reports whether the candidate cleared the gate.
	// A failed gate advances the pipeline to its next stage; it is
	// branching, not an error.
	Passed bool `json:"passed"`

	// Score is the weighted quality score, 0-100.
	Score int `json:"score"`

	// FailureReasons lists the thresholds the candidate missed.
	FailureReasons []string `json:"failureReasons,omitempty"`

	// Metrics are the measurements the verdict was computed from.
	Metrics Metrics `json:"metrics"`
}
