package retrieval

import "github.com/stackdesk/faqd/internal/domain"

// GateResult carries the confidence decision plus the scores that produced
// it, for logging and interaction records.
type GateResult struct {
	Eligible    bool
	Chosen      *domain.RankedSuggestion
	Reason      domain.DecisionReason
	TopScore    float64
	SecondScore float64
	Gap         float64
}

// Evaluate applies the two-of-two confidence gate to results already sorted
// by similarity descending:
//
//  1. no results at all -> NoMatch
//  2. top below the absolute floor -> BelowAbsoluteThreshold
//  3. top-two gap under the margin -> AmbiguousTop2
//  4. otherwise eligible, chosen = results[0]
//
// A single result above the floor passes the gap test vacuously. When the
// policy is ungated every non-empty result set is eligible; the relative
// ranking is identical either way.
func Evaluate(results []domain.RankedSuggestion, pol Policy) GateResult {
	if len(results) == 0 {
		return GateResult{Reason: domain.ReasonNoMatch}
	}

	top := results[0]
	res := GateResult{TopScore: top.Similarity}

	if !pol.Gated {
		res.Eligible = true
		res.Chosen = &results[0]
		res.Reason = domain.ReasonConfident
		return res
	}

	if top.Similarity < pol.AbsoluteThreshold {
		res.Reason = domain.ReasonBelowAbsoluteThreshold
		return res
	}

	if len(results) >= 2 {
		res.SecondScore = results[1].Similarity
		res.Gap = top.Similarity - results[1].Similarity
		if res.Gap < pol.GapThreshold {
			res.Reason = domain.ReasonAmbiguousTop2
			return res
		}
	}

	res.Eligible = true
	res.Chosen = &results[0]
	res.Reason = domain.ReasonConfident
	return res
}
