package query

import "github.com/vain0x/hsp3-ginger-sub000/internal/syntax"

// FlipCommaCandidate names two adjacent slots of an argument list whose
// expressions could be swapped in place around the comma between them —
// the "invert argument order" rewrite's candidate set.
type FlipCommaCandidate struct {
	Left  int // index into the args slice FlipCommaCandidates was given
	Right int // always Left + 1
}

// FlipCommaCandidates scans a Command/Compound argument list and
// returns one candidate per comma that separates two real expressions.
// A bare comma slot (`mes , 1` or a trailing `,`) never starts or ends a
// candidate, matching the original assist's own early-outs (no swap
// without a non-empty node on both sides of the comma) — simplified
// from the original's generic token-depth walk, which that version
// needed only because its tree has no first-class argument-list type to
// index into; this port's Arg slice already gives swap boundaries for
// free.
func FlipCommaCandidates(args []syntax.Arg) []FlipCommaCandidate {
	var out []FlipCommaCandidate
	for i := 0; i+1 < len(args); i++ {
		if args[i].CommaOpt == nil || args[i].ExprOpt == nil || args[i+1].ExprOpt == nil {
			continue
		}
		out = append(out, FlipCommaCandidate{Left: i, Right: i + 1})
	}
	return out
}
