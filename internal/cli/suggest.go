package cli

import (
	"errors"
	"fmt"

	"github.com/agnivade/levenshtein"
	"github.com/thruflo/targetorder/internal/sequence"
)

// closest returns the candidate nearest to name by edit distance, if it is
// near enough to be a plausible typo.
func closest(name string, candidates []string) (string, bool) {
	best, bestDist := "", -1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(name, c)
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	limit := max(2, len(name)/3)
	if bestDist < 0 || bestDist > limit {
		return "", false
	}
	return best, true
}

// explain decorates not-found errors with a "did you mean" hint for the
// first unknown ref.
func (w *workspace) explain(err error, refs ...string) error {
	if !errors.Is(err, sequence.ErrNotFound) {
		return err
	}

	known := append(w.seq.IDs(), w.seq.GroupIDs()...)
	for _, ref := range refs {
		if w.seq.Get(ref) != nil || len(w.seq.Members(ref)) > 0 {
			continue
		}
		if s, ok := closest(ref, known); ok {
			return fmt.Errorf("%w (did you mean %q?)", err, s)
		}
		break
	}
	return err
}
