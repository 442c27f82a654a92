// Package cluster implements the density clustering engine that groups
// semantically similar issue titles.
//
// The algorithm follows HDBSCAN* (Campello, Moulavi & Sander,
// "Density-Based Clustering Based on Hierarchical Density Estimates",
// PAKDD 2013) over a precomputed distance matrix: raw distances are
// lifted to mutual reachability, a minimum spanning tree gives the
// single linkage hierarchy, the hierarchy is condensed by minimum
// cluster size, and the most stable clusters are selected by excess of
// mass. Points outside every selected cluster are labeled noise. The
// hierarchy root competes in the selection, so a data set with no
// internal structure becomes one cluster rather than pure noise.
package cluster

import (
	"fmt"
	"math"
	"sort"

	"github.com/repolens/repolens/pkg/models"
)

// Options controls cluster extraction.
type Options struct {
	// MinClusterSize is the smallest population a group may have.
	MinClusterSize int
	// MinSamples controls how conservative the density estimate is;
	// larger values push more points into noise.
	MinSamples int
}

// DefaultOptions returns the parameters used by the issues analyzer
// when the configuration does not override them.
func DefaultOptions() Options {
	return Options{MinClusterSize: 2, MinSamples: 1}
}

// HDBSCAN assigns a cluster label to every row of the precomputed
// distance matrix. Labels are contiguous integers starting at zero;
// points that belong to no selected cluster receive models.NoiseLabel.
// The matrix must be square, symmetric and zero on the diagonal.
func HDBSCAN(dist [][]float64, opts Options) ([]int, error) {
	n := len(dist)
	if opts.MinClusterSize < 2 {
		return nil, fmt.Errorf("min cluster size must be at least 2, got %d", opts.MinClusterSize)
	}
	if opts.MinSamples < 1 {
		return nil, fmt.Errorf("min samples must be at least 1, got %d", opts.MinSamples)
	}
	for i := range dist {
		if len(dist[i]) != n {
			return nil, fmt.Errorf("distance matrix row %d has %d entries, want %d", i, len(dist[i]), n)
		}
	}

	labels := make([]int, n)
	for i := range labels {
		labels[i] = models.NoiseLabel
	}
	if n < opts.MinClusterSize {
		// No cluster can reach the minimum size.
		return labels, nil
	}

	core := coreDistances(dist, opts.MinSamples)
	edges := spanningTree(dist, core)
	merges := linkage(edges, n)
	condensed := condense(merges, n, opts.MinClusterSize)
	if len(condensed) == 0 {
		return labels, nil
	}
	stability := clusterStability(condensed)
	selected := selectClusters(condensed, stability)
	assignLabels(labels, condensed, selected, n)
	return labels, nil
}

// coreDistances returns, for each point, the distance to its
// minSamples-th nearest neighbor counting the point itself, capped at
// the number of available neighbors.
func coreDistances(dist [][]float64, minSamples int) []float64 {
	n := len(dist)
	k := minSamples
	if k > n-1 {
		k = n - 1
	}
	core := make([]float64, n)
	row := make([]float64, n)
	for i := range dist {
		copy(row, dist[i])
		sort.Float64s(row)
		core[i] = row[k]
	}
	return core
}

// mutualReachability lifts a raw distance to the mutual reachability
// distance, which keeps sparse regions from chaining through dense ones.
func mutualReachability(dist [][]float64, core []float64, i, j int) float64 {
	d := dist[i][j]
	if core[i] > d {
		d = core[i]
	}
	if core[j] > d {
		d = core[j]
	}
	return d
}

// edge connects two points in the mutual reachability graph.
type edge struct {
	from   int
	to     int
	weight float64
}

// spanningTree builds a minimum spanning tree over the mutual
// reachability graph with Prim's algorithm on the dense matrix.
func spanningTree(dist [][]float64, core []float64) []edge {
	n := len(dist)
	inTree := make([]bool, n)
	best := make([]float64, n)
	source := make([]int, n)
	for i := range best {
		best[i] = math.Inf(1)
		source[i] = -1
	}

	edges := make([]edge, 0, n-1)
	current := 0
	inTree[0] = true
	for len(edges) < n-1 {
		for j := 0; j < n; j++ {
			if inTree[j] {
				continue
			}
			w := mutualReachability(dist, core, current, j)
			if w < best[j] {
				best[j] = w
				source[j] = current
			}
		}
		next := -1
		low := math.Inf(1)
		for j := 0; j < n; j++ {
			if !inTree[j] && best[j] < low {
				low = best[j]
				next = j
			}
		}
		edges = append(edges, edge{from: source[next], to: next, weight: low})
		inTree[next] = true
		current = next
	}
	return edges
}

// merge is one row of the single linkage dendrogram. Points are nodes
// 0..n-1; merge k creates node n+k.
type merge struct {
	left     int
	right    int
	distance float64
	size     int
}

// linkage turns the spanning tree into a dendrogram by joining
// components in ascending edge weight order.
func linkage(edges []edge, n int) []merge {
	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].weight < edges[j].weight
	})

	uf := newUnionFind(n)
	merges := make([]merge, 0, len(edges))
	for _, e := range edges {
		a, b := uf.find(e.from), uf.find(e.to)
		merges = append(merges, merge{
			left:     a,
			right:    b,
			distance: e.weight,
			size:     uf.size[a] + uf.size[b],
		})
		uf.union(a, b)
	}
	return merges
}

// unionFind tracks dendrogram components. Each union creates a fresh
// node id, mirroring how dendrogram rows are numbered.
type unionFind struct {
	parent []int
	size   []int
	next   int
}

func newUnionFind(n int) *unionFind {
	parent := make([]int, 2*n-1)
	for i := range parent {
		parent[i] = -1
	}
	size := make([]int, 2*n-1)
	for i := 0; i < n; i++ {
		size[i] = 1
	}
	return &unionFind{parent: parent, size: size, next: n}
}

// union attaches both roots to a newly created node.
func (u *unionFind) union(a, b int) {
	u.size[u.next] = u.size[a] + u.size[b]
	u.parent[a] = u.next
	u.parent[b] = u.next
	u.next++
}

func (u *unionFind) find(x int) int {
	root := x
	for u.parent[root] >= 0 {
		root = u.parent[root]
	}
	for u.parent[x] >= 0 {
		next := u.parent[x]
		u.parent[x] = root
		x = next
	}
	return root
}

// condensedEdge is one row of the condensed tree: child, either a point
// or a nested cluster, leaves cluster parent at density lambda. Cluster
// ids start at n and the root cluster is always exactly n.
type condensedEdge struct {
	parent int
	child  int
	lambda float64
	size   int
}

// condense walks the dendrogram top down and keeps only splits where
// both sides reach minClusterSize. Splinters below the threshold fall
// out of their parent cluster as individual points at the split density.
func condense(merges []merge, n, minClusterSize int) []condensedEdge {
	root := 2*n - 2
	relabel := make([]int, 2*n-1)
	for i := range relabel {
		relabel[i] = -1
	}
	relabel[root] = n
	next := n + 1
	ignore := make([]bool, 2*n-1)
	var out []condensedEdge

	for _, node := range breadthFirst(merges, n, root) {
		if node < n || ignore[node] {
			continue
		}
		m := merges[node-n]
		lambda := math.Inf(1)
		if m.distance > 0 {
			lambda = 1 / m.distance
		}
		leftCount := subtreeSize(merges, n, m.left)
		rightCount := subtreeSize(merges, n, m.right)

		switch {
		case leftCount >= minClusterSize && rightCount >= minClusterSize:
			// A true split: both sides become new clusters.
			relabel[m.left] = next
			next++
			out = append(out, condensedEdge{relabel[node], relabel[m.left], lambda, leftCount})
			relabel[m.right] = next
			next++
			out = append(out, condensedEdge{relabel[node], relabel[m.right], lambda, rightCount})
		case leftCount < minClusterSize && rightCount < minClusterSize:
			out = fallOut(out, merges, n, m.left, relabel[node], lambda, ignore)
			out = fallOut(out, merges, n, m.right, relabel[node], lambda, ignore)
		case leftCount < minClusterSize:
			relabel[m.right] = relabel[node]
			out = fallOut(out, merges, n, m.left, relabel[node], lambda, ignore)
		default:
			relabel[m.left] = relabel[node]
			out = fallOut(out, merges, n, m.right, relabel[node], lambda, ignore)
		}
	}
	return out
}

// fallOut emits a departure row for every point under node and marks
// the whole subtree as handled.
func fallOut(out []condensedEdge, merges []merge, n, node, parent int, lambda float64, ignore []bool) []condensedEdge {
	for _, sub := range breadthFirst(merges, n, node) {
		if sub < n {
			out = append(out, condensedEdge{parent, sub, lambda, 1})
		}
		ignore[sub] = true
	}
	return out
}

func subtreeSize(merges []merge, n, node int) int {
	if node < n {
		return 1
	}
	return merges[node-n].size
}

// breadthFirst lists node and all its dendrogram descendants level by
// level.
func breadthFirst(merges []merge, n, node int) []int {
	queue := []int{node}
	var visited []int
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		visited = append(visited, cur)
		if cur >= n {
			m := merges[cur-n]
			queue = append(queue, m.left, m.right)
		}
	}
	return visited
}

// clusterStability scores each condensed cluster by excess of mass: the
// sum over members of the density span between the cluster's birth and
// the member's departure.
func clusterStability(tree []condensedEdge) map[int]float64 {
	births := make(map[int]float64, len(tree))
	for _, e := range tree {
		births[e.child] = e.lambda
	}
	stability := make(map[int]float64)
	for _, e := range tree {
		stability[e.parent] += (e.lambda - births[e.parent]) * float64(e.size)
	}
	return stability
}

// selectClusters runs bottom-up excess of mass selection: a cluster
// survives when it is more stable than the sum of its child clusters,
// in which case every descendant cluster is discarded. The root takes
// part like any other cluster.
func selectClusters(tree []condensedEdge, stability map[int]float64) map[int]bool {
	children := make(map[int][]int)
	for _, e := range tree {
		if e.size > 1 {
			children[e.parent] = append(children[e.parent], e.child)
		}
	}

	ids := make([]int, 0, len(stability))
	for id := range stability {
		ids = append(ids, id)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ids))) // deepest clusters first

	selected := make(map[int]bool, len(ids))
	for _, id := range ids {
		selected[id] = true
	}
	for _, id := range ids {
		var childSum float64
		for _, c := range children[id] {
			childSum += stability[c]
		}
		if childSum > stability[id] {
			selected[id] = false
			stability[id] = childSum
			continue
		}
		for _, d := range descendants(children, id) {
			selected[d] = false
		}
	}
	return selected
}

// descendants lists every cluster strictly below id in the condensed
// tree.
func descendants(children map[int][]int, id int) []int {
	var out []int
	queue := append([]int(nil), children[id]...)
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		out = append(out, c)
		queue = append(queue, children[c]...)
	}
	return out
}

// assignLabels maps every point to its first selected ancestor in the
// condensed tree, numbering selected clusters in id order. When the
// sole selected cluster is the root, membership additionally requires
// the point to persist to the strongest density the root reached, so
// loose outliers absorbed by the root stay noise.
func assignLabels(labels []int, tree []condensedEdge, selected map[int]bool, n int) {
	var ids []int
	for id, ok := range selected {
		if ok {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	labelOf := make(map[int]int, len(ids))
	for i, id := range ids {
		labelOf[id] = i
	}

	if len(ids) == 1 && ids[0] == n {
		labelRootOnly(labels, tree, n)
		return
	}

	parentOf := make(map[int]int, len(tree))
	for _, e := range tree {
		parentOf[e.child] = e.parent
	}
	for p := 0; p < n; p++ {
		node, ok := parentOf[p]
		for ok {
			if lab, found := labelOf[node]; found {
				labels[p] = lab
				break
			}
			node, ok = parentOf[node]
		}
	}
}

// labelRootOnly handles the single-cluster outcome: points whose
// departure density reaches the strongest split directly under the root
// become cluster 0, everything else stays noise.
func labelRootOnly(labels []int, tree []condensedEdge, n int) {
	var maxLambda float64
	for _, e := range tree {
		if e.parent == n && e.lambda > maxLambda {
			maxLambda = e.lambda
		}
	}
	for _, e := range tree {
		if e.child < n && e.lambda >= maxLambda {
			labels[e.child] = 0
		}
	}
}
