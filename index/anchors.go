package index

import (
	"math"

	"github.com/NNRepos/enum-spanner-go/dag"
	"github.com/NNRepos/enum-spanner-go/va"
)

// chooseAnchors picks the anchor levels for d (§4.E): level 0, level
// numLevels-1, and every level in between that has at least one live state
// with an outgoing marker edge. That marker-edge criterion is what makes
// the anchor set "the image of J" — Jump always lands on a level some
// outgoing marker transition could fire from, so the enumerator never has
// to re-discover marker edges by re-walking the skipped levels.
//
// Criterion (i) alone can leave an arbitrarily wide gap between anchors
// when a long stretch of the document has no marker-bearing state at all
// (e.g. scanning through the unanchored ".*" prefix before the first
// capture group opens); criterion (iii) bounds that gap by forcing an
// anchor once the vertex count accumulated since the last anchor exceeds
// width, trading jump-matrix size (|anchors|*|states|) against how many
// levels a single Jump composes over. width <= 0 selects the default,
// ceil(sqrt(numLevels)).
func chooseAnchors(d *dag.DAG, width int) []int {
	numLevels := d.NumLevels()
	if numLevels <= 1 {
		return []int{0}
	}
	if width <= 0 {
		width = int(math.Ceil(math.Sqrt(float64(numLevels))))
		if width < 1 {
			width = 1
		}
	}
	last := numLevels - 1
	anchors := []int{0}
	for anchors[len(anchors)-1] != last {
		from := anchors[len(anchors)-1]
		next := last
		vertices := 0
		for level := from + 1; level <= last; level++ {
			vertices += d.Level(level - 1).PopCount()
			if level == last || levelHasMarkerEdge(d, level) || vertices > width {
				next = level
				break
			}
		}
		anchors = append(anchors, next)
	}
	return anchors
}

// levelHasMarkerEdge reports whether any live state at level has an
// outgoing marker transition (§4.E criterion (i)).
func levelHasMarkerEdge(d *dag.DAG, level int) bool {
	automaton := d.VA()
	found := false
	d.Level(level).Iterate(func(q int) {
		if found {
			return
		}
		if s := automaton.State(va.StateID(q)); s != nil && s.Kind() == va.KindMarker {
			found = true
		}
	})
	return found
}
