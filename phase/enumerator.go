package phase

import (
	"sort"

	"github.com/bits-and-blooms/bitset"
	"github.com/junctionsim/core/topology"
)

// Enumerate computes the set of maximal compatible light subsets for
// j (spec.md §4.2): "maximal" meaning no strict superset is also
// compatible, "compatible" meaning every pair in the subset satisfies
// Compatible. The compatibility graph is built once as a bitset
// adjacency matrix (spec.md §9's explicit guidance) and maximal
// cliques are found via Bron-Kerbosch with pivoting, which is exact
// and fast enough for the O(10)-light junctions spec.md targets.
//
// The enumerator is pure: it performs no I/O and does not mutate j.
// Order of the returned phases is unspecified but stable across calls
// on the same topology, since light order and bitset iteration order
// are both deterministic.
func Enumerate(j *topology.Junction) [][]int32 {
	lights := j.Lights()
	n := len(lights)
	if n == 0 {
		return nil
	}

	adjacency := make([]*bitset.BitSet, n)
	for i := range adjacency {
		adjacency[i] = bitset.New(uint(n))
	}
	for i := 0; i < n; i++ {
		for k := i + 1; k < n; k++ {
			if Compatible(j, lights[i], lights[k]) {
				adjacency[i].Set(uint(k))
				adjacency[k].Set(uint(i))
			}
		}
	}

	var cliques [][]int
	r := bitset.New(uint(n))
	p := allSet(n)
	x := bitset.New(uint(n))
	bronKerbosch(adjacency, r, p, x, &cliques)

	phases := make([][]int32, 0, len(cliques))
	for _, clique := range cliques {
		sort.Ints(clique)
		phase := make([]int32, len(clique))
		for i, idx := range clique {
			phase[i] = lights[idx].ID
		}
		phases = append(phases, phase)
	}
	sort.Slice(phases, func(a, b int) bool {
		if len(phases[a]) != len(phases[b]) {
			return len(phases[a]) < len(phases[b])
		}
		for i := range phases[a] {
			if phases[a][i] != phases[b][i] {
				return phases[a][i] < phases[b][i]
			}
		}
		return false
	})
	return phases
}

func allSet(n int) *bitset.BitSet {
	b := bitset.New(uint(n))
	for i := 0; i < n; i++ {
		b.Set(uint(i))
	}
	return b
}

// bronKerbosch is the standard pivoted maximal-clique search over an
// adjacency-bitset graph. R is the clique being built, P the
// candidates still extendable, X the already-excluded set.
func bronKerbosch(adj []*bitset.BitSet, r, p, x *bitset.BitSet, out *[][]int) {
	if p.None() && x.None() {
		clique := make([]int, 0, r.Count())
		for i, ok := r.NextSet(0); ok; i, ok = r.NextSet(i + 1) {
			clique = append(clique, int(i))
		}
		*out = append(*out, clique)
		return
	}

	pivot := choosePivot(adj, p, x)
	candidates := p.Difference(adj[pivot])

	for v, ok := candidates.NextSet(0); ok; v, ok = candidates.NextSet(v + 1) {
		vSet := bitset.New(p.Len()).Set(v)
		bronKerbosch(adj,
			r.Union(vSet),
			p.Intersection(adj[v]),
			x.Intersection(adj[v]),
			out,
		)
		p = p.Difference(vSet)
		x = x.Union(vSet)
	}
}

// choosePivot picks the vertex in P∪X with the largest neighborhood
// inside P, the classic Tomita pivot rule that keeps the branching
// factor small.
func choosePivot(adj []*bitset.BitSet, p, x *bitset.BitSet) uint {
	best := uint(0)
	bestCount := -1
	union := p.Union(x)
	for v, ok := union.NextSet(0); ok; v, ok = union.NextSet(v + 1) {
		count := int(p.Intersection(adj[v]).Count())
		if count > bestCount {
			bestCount = count
			best = v
		}
	}
	return best
}
