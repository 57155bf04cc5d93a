// Package layout computes screen-space placement for family tree nodes: a
// generation (depth) for every person via breadth-first propagation from the
// roots, plus the geometry and label helpers the canvas renderer consumes.
// Everything in this package is a pure function over the domain model.
package layout

import (
	"sort"
	"unicode/utf8"

	"github.com/jwnbm/familytree/internal/tree"
)

// Person node sizing. Width is estimated from the name length (CJK glyphs
// included) at roughly 14px per rune, clamped to a fixed band; height is
// derived from the font size plus vertical padding.
const (
	personFontSize   = 14.0
	personPaddingV   = 16.0
	personNodeHeight = personFontSize + personPaddingV
	personCharWidth  = 14.0
	personMinWidth   = 100.0
	personMaxWidth   = 250.0

	horizontalGap = 50.0
	verticalGap   = 80.0
)

// Node is the computed placement of one person.
type Node struct {
	ID         tree.PersonID
	Generation int
	Pos        tree.Point
	Rect       Rect
}

// personNodeWidth estimates the rendered width of a person node.
func personNodeWidth(name string) float32 {
	w := float32(utf8.RuneCountInString(name)) * personCharWidth
	if w < personMinWidth {
		w = personMinWidth
	}
	if w > personMaxWidth {
		w = personMaxWidth
	}
	return w
}

// ComputeLayout assigns every person a generation and a rectangle.
//
// Generations propagate breadth-first from the roots: a child is placed one
// deeper than its parent, and when several paths reach the same person the
// minimum depth wins. A child is re-enqueued whenever its recorded depth was
// set or lowered; depths only ever decrease, so the queue drains. Persons
// unreachable from any root, including every person of a rootless cycle,
// default to generation 0.
//
// Within a generation persons are ordered by name (ties keep their prior
// order). A person whose stored position is set is placed there verbatim;
// everyone else gets an automatic slot below origin, indexed left to right.
func ComputeLayout(t *tree.FamilyTree, origin tree.Point) []Node {
	genMap := make(map[tree.PersonID]int, len(t.Persons))
	queue := t.Roots()
	for _, r := range queue {
		genMap[r] = 0
	}

	for len(queue) > 0 {
		pid := queue[0]
		queue = queue[1:]
		g := genMap[pid]
		for _, ch := range t.ChildrenOf(pid) {
			newG := g + 1
			if cur, ok := genMap[ch]; !ok || newG < cur {
				genMap[ch] = newG
				queue = append(queue, ch)
			}
		}
	}

	for id := range t.Persons {
		if _, ok := genMap[id]; !ok {
			genMap[id] = 0
		}
	}

	byGen := make(map[int][]tree.PersonID)
	for id, g := range genMap {
		byGen[g] = append(byGen[g], id)
	}
	for _, ids := range byGen {
		sort.SliceStable(ids, func(i, j int) bool {
			return nameOf(t, ids[i]) < nameOf(t, ids[j])
		})
	}

	gens := make([]int, 0, len(byGen))
	for g := range byGen {
		gens = append(gens, g)
	}
	sort.Ints(gens)

	var nodes []Node
	for _, g := range gens {
		for i, id := range byGen[g] {
			nodeW := personNodeWidth(nameOf(t, id))
			nodeH := float32(personNodeHeight)

			var pos tree.Point
			if p := t.Persons[id]; p != nil && p.Position != (tree.Point{}) {
				pos = p.Position
			} else {
				pos = tree.Point{
					X: origin.X + float32(i)*(nodeW+horizontalGap),
					Y: origin.Y + float32(g)*(nodeH+verticalGap),
				}
			}

			nodes = append(nodes, Node{
				ID:         id,
				Generation: g,
				Pos:        pos,
				Rect:       Rect{X: pos.X, Y: pos.Y, W: nodeW, H: nodeH},
			})
		}
	}
	return nodes
}

func nameOf(t *tree.FamilyTree, id tree.PersonID) string {
	if p := t.Persons[id]; p != nil {
		return p.Name
	}
	return "Unknown"
}
