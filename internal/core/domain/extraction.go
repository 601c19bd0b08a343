package domain

// ExtractionStatus identifies the outcome kind of a text extraction
// attempt. The extraction router always returns one of these three;
// it never propagates a failure past its boundary.
type ExtractionStatus int

const (
	// ExtractionOK means text was extracted.
	ExtractionOK ExtractionStatus = iota

	// ExtractionUnsupported means no strategy handles the media type.
	ExtractionUnsupported

	// ExtractionFailed means every applicable strategy was tried and
	// none produced text.
	ExtractionFailed
)

// String returns a human-readable name for the status.
func (s ExtractionStatus) String() string {
	switch s {
	case ExtractionOK:
		return "ok"
	case ExtractionUnsupported:
		return "unsupported"
	case ExtractionFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ExtractionOutcome is the transient result of running the extraction
// router over one file.
type ExtractionOutcome struct {
	// Status is the outcome kind.
	Status ExtractionStatus

	// Text is the extracted text. Empty unless Status is ExtractionOK.
	Text string

	// Strategy names the strategy that produced the text, or the last
	// strategy tried before giving up.
	Strategy string
}

// OK reports whether the outcome carries usable text.
func (o ExtractionOutcome) OK() bool {
	return o.Status == ExtractionOK
}
