package domain

// NewRequest returns an extraction request with single-directory flattening
// enabled, which is the default behavior.
func NewRequest(source, destination string) ExtractionRequest {
	return ExtractionRequest{
		Source:      source,
		Destination: destination,
		MergeSingle: true,
	}
}
