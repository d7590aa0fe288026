// Package fsmbdd implements the symbolic finite-state machine wrapper
// (FsmBdd) and its partitioned transition relation (Trans), built directly
// on top of internal/bdd.
package fsmbdd

import (
	"container/heap"
	"fmt"

	"github.com/joeycumines/go-ppsmc/internal/bdd"
	"golang.org/x/exp/slices"
)

// Method selects how a list of per-conjunct transition BDDs is combined
// into a Trans: either conjoined eagerly into one BDD (Monolithic) or
// clustered by support affinity under a size threshold (Partition).
type Method int

const (
	Monolithic Method = iota
	Partition
)

// defaultThreshold is the size (node count) above which a partitioned
// conjunct is left as-is instead of being merged further (spec.md section
// 4.2).
const defaultThreshold = 1000

// maxPartitionInputs bounds the partition builder's input size, matching
// the original's `assert!(trans.len() <= 100)`.
const maxPartitionInputs = 100

// Trans is the conjunctive, partitioned transition relation: the
// conjunction of Parts denotes the full transition relation, and
// PreEliminate[i]/PostEliminate[i] record the early-quantification schedule
// computed at build time (spec.md section 4.2).
type Trans struct {
	manager       *bdd.Manager
	Parts         []bdd.Bdd
	PreEliminate  [][]int
	PostEliminate [][]int
}

// NewTrans builds a Trans from a list of per-conjunct transition BDDs using
// the given combination method, deduplicating identical conjuncts first
// (mirroring Trans::new in trans.rs).
func NewTrans(m *bdd.Manager, parts []bdd.Bdd, method Method) *Trans {
	deduped := make([]bdd.Bdd, 0, len(parts))
	for _, p := range parts {
		if !containsBdd(deduped, p) {
			deduped = append(deduped, p)
		}
	}
	switch method {
	case Partition:
		return partitionNew(m, deduped, defaultThreshold)
	default:
		return monolithicNew(m, deduped)
	}
}

func containsBdd(haystack []bdd.Bdd, needle bdd.Bdd) bool {
	for _, h := range haystack {
		if h.Equal(needle) {
			return true
		}
	}
	return false
}

func monolithicNew(m *bdd.Manager, parts []bdd.Bdd) *Trans {
	res := m.Constant(true)
	for _, p := range parts {
		res = res.And(p)
	}
	return build(m, []bdd.Bdd{res})
}

// build computes the early-quantification schedule for both directions and
// assembles the Trans, mirroring Trans::build.
func build(m *bdd.Manager, parts []bdd.Bdd) *Trans {
	return &Trans{
		manager:       m,
		Parts:         parts,
		PreEliminate:  buildSchedule(parts, m.NextStateVars()),
		PostEliminate: buildSchedule(parts, m.StateVars()),
	}
}

// buildSchedule walks parts in reverse, recording the surviving variable
// set before each part's support is subtracted out -- the early
// quantification schedule described in spec.md section 4.2.
func buildSchedule(parts []bdd.Bdd, vars []int) [][]int {
	res := make([][]int, len(parts))
	live := make(map[int]struct{}, len(vars))
	for _, v := range vars {
		live[v] = struct{}{}
	}
	for i := len(parts) - 1; i >= 0; i-- {
		snapshot := make([]int, 0, len(live))
		for v := range live {
			snapshot = append(snapshot, v)
		}
		slices.Sort(snapshot)
		res[i] = snapshot
		for _, v := range parts[i].SupportIndex() {
			delete(live, v)
		}
	}
	return res
}

// affinityEntry is a candidate merge in the Jaccard-affinity max-heap.
type affinityEntry struct {
	affinity float64
	i, j     int
}

type affinityHeap []affinityEntry

func (h affinityHeap) Len() int { return len(h) }
func (h affinityHeap) Less(a, b int) bool {
	// max-heap: higher affinity pops first.
	return h[a].affinity > h[b].affinity
}
func (h affinityHeap) Swap(a, b int) { h[a], h[b] = h[b], h[a] }
func (h *affinityHeap) Push(x any)   { *h = append(*h, x.(affinityEntry)) }
func (h *affinityHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

func computeAffinity(a, b bdd.Bdd) float64 {
	as := a.SupportIndex()
	bs := b.SupportIndex()
	set := make(map[int]struct{}, len(as))
	for _, v := range as {
		set[v] = struct{}{}
	}
	inter := 0
	for _, v := range bs {
		if _, ok := set[v]; ok {
			inter++
			continue
		}
		set[v] = struct{}{}
	}
	union := len(set)
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// partitionNew implements the greedy Jaccard-affinity clustering described
// in spec.md section 4.2: items already bigger than threshold pass through
// untouched; the rest merge pairwise, largest-affinity first, until every
// surviving item either exceeds threshold or only a single residual
// remains.
func partitionNew(m *bdd.Manager, parts []bdd.Bdd, threshold int) *Trans {
	if len(parts) > maxPartitionInputs {
		panic(fmt.Sprintf("fsmbdd: partition input exceeds bound: %d > %d", len(parts), maxPartitionInputs))
	}
	trans := append([]bdd.Bdd(nil), parts...)
	live := make(map[int]struct{})
	var res []bdd.Bdd
	var h affinityHeap

	for i := range trans {
		if trans[i].Size() > threshold {
			res = append(res, trans[i])
			continue
		}
		for exist := range live {
			heap.Push(&h, affinityEntry{affinity: computeAffinity(trans[i], trans[exist]), i: exist, j: i})
		}
		live[i] = struct{}{}
	}

	for h.Len() > 0 {
		e := heap.Pop(&h).(affinityEntry)
		_, xOk := live[e.i]
		_, yOk := live[e.j]
		if !xOk || !yOk {
			continue
		}
		xy := trans[e.i].And(trans[e.j])
		delete(live, e.i)
		delete(live, e.j)
		if xy.Size() > threshold {
			res = append(res, xy)
			continue
		}
		xyIndex := len(trans)
		trans = append(trans, xy)
		for exist := range live {
			heap.Push(&h, affinityEntry{affinity: computeAffinity(trans[xyIndex], trans[exist]), i: exist, j: xyIndex})
		}
		live[xyIndex] = struct{}{}
	}

	if len(live) == 1 {
		for idx := range live {
			res = append(res, trans[idx])
			delete(live, idx)
		}
	}
	if len(live) != 0 {
		panic("fsmbdd: partition left unmerged live items")
	}
	return build(m, res)
}

// PreImage is the partitioned backward image: if there is a single part it
// defers to the BDD package's direct pre_image; otherwise it applies each
// part's early-quantification schedule in turn (spec.md section 4.2).
func (t *Trans) PreImage(state bdd.Bdd) bdd.Bdd {
	if len(t.Parts) == 1 {
		return state.PreImage(t.Parts[0])
	}
	res := state.NextState()
	for i := range t.Parts {
		res = res.AndAbstract(t.Parts[i], t.PreEliminate[i])
	}
	return res
}

// PostImage is the partitioned forward image, symmetric to PreImage.
func (t *Trans) PostImage(state bdd.Bdd) bdd.Bdd {
	if len(t.Parts) == 1 {
		return state.PostImage(t.Parts[0])
	}
	res := state
	for i := range t.Parts {
		res = res.AndAbstract(t.Parts[i], t.PostEliminate[i])
	}
	return res.PreviousState()
}

// Product conjoins two transition relations: single-part times single-part
// is conjoined eagerly, otherwise the part lists are concatenated and the
// schedule rebuilt.
func (t *Trans) Product(other *Trans) *Trans {
	if len(t.Parts) == 1 && len(other.Parts) == 1 {
		return build(t.manager, []bdd.Bdd{t.Parts[0].And(other.Parts[0])})
	}
	parts := append(append([]bdd.Bdd(nil), t.Parts...), other.Parts...)
	return build(t.manager, parts)
}

// CloneWithNewManager translocates every part into a different manager,
// keeping the same early-quantification schedule (the schedule depends
// only on variable indices, which are manager-independent by convention).
func (t *Trans) CloneWithNewManager(m *bdd.Manager) *Trans {
	parts := make([]bdd.Bdd, len(t.Parts))
	for i, p := range t.Parts {
		parts[i] = m.Translocate(p)
	}
	return &Trans{
		manager:       m,
		Parts:         parts,
		PreEliminate:  t.PreEliminate,
		PostEliminate: t.PostEliminate,
	}
}
