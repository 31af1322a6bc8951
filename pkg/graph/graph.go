// Package graph holds the vertex-weighted undirected graphs QAOA experiments
// run on, together with the text format the experiment scripts read and
// write.
package graph

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/graph/simple"
)

// DefaultWeight is the weight of a vertex whose weight was not given.
const DefaultWeight = 1.0

var (
	ErrNoVertices          = errors.New("graph has no vertices")
	ErrVertexOutOfRange    = errors.New("vertex index out of range")
	ErrSelfLoop            = errors.New("self loops are not allowed")
	ErrDuplicateEdge       = errors.New("duplicate edge")
	ErrInvalidVertexWeight = errors.New("invalid vertex weight")
)

// Edge is an undirected edge between two vertex indices.
type Edge struct {
	U int `json:"u" yaml:"u"`
	V int `json:"v" yaml:"v"`
}

func (e Edge) String() string {
	return fmt.Sprintf("(%d, %d)", e.U, e.V)
}

// Graph is an immutable vertex-weighted undirected graph over vertices
// 0..n-1. Edge order is the order the edges were supplied in.
type Graph struct {
	weights []float64
	edges   []Edge
}

// New builds a graph from per-vertex weights and an edge list.
func New(weights []float64, edges []Edge) (*Graph, error) {
	n := len(weights)
	if n == 0 {
		return nil, ErrNoVertices
	}
	for i, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("%w: vertex %d", ErrInvalidVertexWeight, i)
		}
	}

	adj := simple.NewUndirectedGraph()
	for i := 0; i < n; i++ {
		adj.AddNode(simple.Node(int64(i)))
	}

	kept := make([]Edge, 0, len(edges))
	for _, e := range edges {
		if e.U < 0 || e.U >= n || e.V < 0 || e.V >= n {
			return nil, fmt.Errorf("%w: edge %s with %d vertices", ErrVertexOutOfRange, e, n)
		}
		if e.U == e.V {
			return nil, fmt.Errorf("%w: edge %s", ErrSelfLoop, e)
		}
		if adj.HasEdgeBetween(int64(e.U), int64(e.V)) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateEdge, e)
		}
		adj.SetEdge(simple.Edge{F: simple.Node(int64(e.U)), T: simple.Node(int64(e.V))})
		kept = append(kept, e)
	}

	w := make([]float64, n)
	copy(w, weights)
	return &Graph{weights: w, edges: kept}, nil
}

// NewUnweighted builds a graph with n vertices of DefaultWeight.
func NewUnweighted(n int, edges []Edge) (*Graph, error) {
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = DefaultWeight
	}
	return New(weights, edges)
}

// NumVertices returns the vertex count, which is also the qubit count.
func (g *Graph) NumVertices() int {
	return len(g.weights)
}

// NumEdges returns the edge count.
func (g *Graph) NumEdges() int {
	return len(g.edges)
}

// Weight returns the weight of vertex i.
func (g *Graph) Weight(i int) float64 {
	return g.weights[i]
}

// Weights returns a copy of the vertex weights.
func (g *Graph) Weights() []float64 {
	out := make([]float64, len(g.weights))
	copy(out, g.weights)
	return out
}

// Edges returns a copy of the edge list in insertion order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// MaxEdgeWeightSum returns the largest w(u)+w(v) over all edges, or 0 when
// the graph has no edges.
func (g *Graph) MaxEdgeWeightSum() float64 {
	if len(g.edges) == 0 {
		return 0
	}
	best := g.weights[g.edges[0].U] + g.weights[g.edges[0].V]
	for _, e := range g.edges[1:] {
		if s := g.weights[e.U] + g.weights[e.V]; s > best {
			best = s
		}
	}
	return best
}

// TotalWeight returns the sum of all vertex weights.
func (g *Graph) TotalWeight() float64 {
	total := 0.0
	for _, w := range g.weights {
		total += w
	}
	return total
}
