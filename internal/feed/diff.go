// Package feed implements change detection over the SpotterNetwork report
// feed. The feed has no offset support: every poll returns the full current
// window, so the same report is re-served across polls, with one embedded
// age digit mutating as the report ages. Detection therefore normalizes the
// age digit before computing line identity.
package feed

import (
	"slices"
	"strings"
)

// reportMarker starts every logical report line; everything else in the
// body (blank lines, headers) is discarded.
const reportMarker = "Icon:"

// FingerprintSet holds the normalized report lines seen as of the end of a
// poll cycle. It is single-owner: the poll loop replaces it wholesale each
// successful cycle and never unions sets across cycles, so a report the
// provider stops serving is simply no longer tracked.
type FingerprintSet map[string]struct{}

// ageDigits rewrites the aging icon digit (3, 4, or 5 at the fixed field
// position) to a canonical 0. Without this the same report would look new
// on every poll as it ages.
var ageDigits = strings.NewReplacer(
	",000,3", ",000,0",
	",000,4", ",000,0",
	",000,5", ",000,0",
)

// Normalize rewrites a report line's age digit to its canonical form.
// Idempotent: normalizing an already-normalized line returns it unchanged.
func Normalize(line string) string {
	return ageDigits.Replace(line)
}

// DetectNew splits body into report lines, normalizes them, and returns the
// full fingerprint set of the current body plus the normalized lines not
// present in seen. Duplicate normalized lines within one body collapse to a
// single entry. The fresh slice is sorted lexicographically so output order
// is deterministic. An empty or whitespace-only body yields empty results;
// there are no error states.
func DetectNew(body string, seen FingerprintSet) (FingerprintSet, []string) {
	latest := make(FingerprintSet)
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if !strings.HasPrefix(line, reportMarker) {
			continue
		}
		latest[Normalize(line)] = struct{}{}
	}

	fresh := make([]string, 0, len(latest))
	for line := range latest {
		if _, ok := seen[line]; !ok {
			fresh = append(fresh, line)
		}
	}
	slices.Sort(fresh)

	return latest, fresh
}
