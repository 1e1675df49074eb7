package planner

import "healthymeal/internal/repair"

// Source records how a stored plan was obtained.
type Source string

const (
	// SourceGenerated means the generator output decoded without structural changes.
	SourceGenerated Source = "generated"
	// SourceRepaired means the output only decoded after unterminated structures were closed.
	SourceRepaired Source = "repaired"
	// SourceFallback means the output was unusable and the fallback plan was used.
	SourceFallback Source = "fallback"
)

// IngestResult is the outcome of running raw generator text through the pipeline.
type IngestResult struct {
	Payload Payload
	Source  Source
	// Err holds the decode failure that triggered the fallback, if any.
	Err error
}

// Ingest runs raw text through sanitize, repair and validate. It never fails:
// text that cannot be decoded is replaced by FallbackPlan.
func Ingest(raw string) IngestResult {
	p, repaired, err := Salvage(raw)
	if err != nil {
		return IngestResult{Payload: FallbackPlan(), Source: SourceFallback, Err: err}
	}
	if repaired {
		return IngestResult{Payload: p, Source: SourceRepaired}
	}
	return IngestResult{Payload: p, Source: SourceGenerated}
}

// Salvage sanitizes, repairs and validates raw text without falling back.
// repaired reports whether structural repair changed the text.
func Salvage(raw string) (p Payload, repaired bool, err error) {
	closed, repaired := repair.Report(repair.Sanitize(raw))
	p, err = Validate([]byte(closed))
	return p, repaired, err
}

// SalvageMeal is Salvage for a single meal object.
func SalvageMeal(raw string) (Meal, error) {
	return DecodeMeal([]byte(repair.Close(repair.Sanitize(raw))))
}
