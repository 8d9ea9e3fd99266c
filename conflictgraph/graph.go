// Package conflictgraph builds and maintains the sparse conflict graph
// over candidate barcodes: an edge connects two candidates whose edit
// distance falls below the required minimum.
package conflictgraph

// Graph is the sparse adjacency representation described for the
// conflict graph: an undirected adjacency map plus a degree-bucket index.
// A vertex appears in Adj (and in BucketsByDegree) only while its degree
// is greater than zero.
type Graph struct {
	Adj             map[int]map[int]struct{}
	BucketsByDegree map[int]map[int]struct{}
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		Adj:             make(map[int]map[int]struct{}),
		BucketsByDegree: make(map[int]map[int]struct{}),
	}
}

func (g *Graph) degree(v int) int {
	return len(g.Adj[v])
}

func (g *Graph) moveBucket(v, oldDeg, newDeg int) {
	if oldDeg > 0 {
		if bucket, ok := g.BucketsByDegree[oldDeg]; ok {
			delete(bucket, v)
			if len(bucket) == 0 {
				delete(g.BucketsByDegree, oldDeg)
			}
		}
	}
	if newDeg > 0 {
		bucket, ok := g.BucketsByDegree[newDeg]
		if !ok {
			bucket = make(map[int]struct{})
			g.BucketsByDegree[newDeg] = bucket
		}
		bucket[v] = struct{}{}
	}
}

// AddEdge inserts the undirected edge {i,j}. It is a no-op if the edge is
// already present.
func (g *Graph) AddEdge(i, j int) {
	if i == j {
		return
	}
	if g.Adj[i] == nil {
		g.Adj[i] = make(map[int]struct{})
	}
	if g.Adj[j] == nil {
		g.Adj[j] = make(map[int]struct{})
	}
	if _, exists := g.Adj[i][j]; exists {
		return
	}
	oldDegI, oldDegJ := g.degree(i), g.degree(j)
	g.Adj[i][j] = struct{}{}
	g.Adj[j][i] = struct{}{}
	g.moveBucket(i, oldDegI, oldDegI+1)
	g.moveBucket(j, oldDegJ, oldDegJ+1)
}

// DeleteVertex removes v and every edge incident to it, decrementing each
// neighbor's bucket membership accordingly.
func (g *Graph) DeleteVertex(v int) {
	neighbors := g.Adj[v]
	deg := len(neighbors)
	for w := range neighbors {
		oldDegW := g.degree(w)
		delete(g.Adj[w], v)
		g.moveBucket(w, oldDegW, oldDegW-1)
		if len(g.Adj[w]) == 0 {
			delete(g.Adj, w)
		}
	}
	if deg > 0 {
		if bucket, ok := g.BucketsByDegree[deg]; ok {
			delete(bucket, v)
			if len(bucket) == 0 {
				delete(g.BucketsByDegree, deg)
			}
		}
	}
	delete(g.Adj, v)
}

// DeleteBall removes v and every one of its current neighbors (radius-1
// ball), used by the min-sum-row accept policy: once v is accepted into
// the codebook, every vertex too close to it is no longer eligible.
func (g *Graph) DeleteBall(v int) {
	neighbors := make([]int, 0, len(g.Adj[v]))
	for w := range g.Adj[v] {
		neighbors = append(neighbors, w)
	}
	g.DeleteVertex(v)
	for _, w := range neighbors {
		g.DeleteVertex(w)
	}
}

// IsEmpty reports whether the graph has no edges left.
func (g *Graph) IsEmpty() bool {
	return len(g.Adj) == 0
}

// MinDegreeVertex returns a vertex from the bucket with the smallest
// current degree, with the smallest vertex id in that bucket as the
// deterministic tie-break (stable across resumed runs).
func (g *Graph) MinDegreeVertex() (int, bool) {
	return g.pickFromBucket(true)
}

// MaxDegreeVertex returns a vertex from the bucket with the largest
// current degree, same tie-break rule as MinDegreeVertex.
func (g *Graph) MaxDegreeVertex() (int, bool) {
	return g.pickFromBucket(false)
}

func (g *Graph) pickFromBucket(wantMin bool) (int, bool) {
	if len(g.BucketsByDegree) == 0 {
		return 0, false
	}
	target := -1
	for deg := range g.BucketsByDegree {
		if target == -1 || (wantMin && deg < target) || (!wantMin && deg > target) {
			target = deg
		}
	}
	best := -1
	for v := range g.BucketsByDegree[target] {
		if best == -1 || v < best {
			best = v
		}
	}
	return best, true
}

// EdgeCount returns |E|; MatrixOnesCount returns 2*|E|, the sum of all
// degrees, matching the original accounting of the adjacency matrix's
// nonzero entries.
func (g *Graph) EdgeCount() int {
	return g.MatrixOnesCount() / 2
}

func (g *Graph) MatrixOnesCount() int {
	total := 0
	for _, neighbors := range g.Adj {
		total += len(neighbors)
	}
	return total
}

// Edges returns every edge {i,j} with i<j, useful for serialization and
// testing.
func (g *Graph) Edges() [][2]int {
	var out [][2]int
	for i, neighbors := range g.Adj {
		for j := range neighbors {
			if i < j {
				out = append(out, [2]int{i, j})
			}
		}
	}
	return out
}
