package graph

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

const (
	weightsHeader = "Vertex Weights Array:"
	edgesHeader   = "Edge List:"
)

var (
	ErrMissingWeights = errors.New("graph file is missing the vertex weights section")
	ErrMissingEdges   = errors.New("graph file is missing the edge list section")
	ErrMalformedList  = errors.New("malformed list literal")
)

var pairRegex = regexp.MustCompile(`[\(\[]\s*(-?\d+)\s*,\s*(-?\d+)\s*[\)\]]`)

// Load reads a graph file from disk.
func Load(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open graph file %s: %w", path, err)
	}
	defer f.Close()

	g, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse graph file %s: %w", path, err)
	}
	return g, nil
}

// Parse reads the two-section text format:
//
//	Vertex Weights Array:
//	[1, 2.5, 3]
//	Edge List:
//	[(0, 1), (1, 2)]
//
// Each header is followed by a list literal on the next non-blank line.
// The number of weights fixes the vertex count.
func Parse(r io.Reader) (*Graph, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	const (
		sectionNone = iota
		sectionWeights
		sectionEdges
	)
	var weightsLine, edgesLine string
	var haveWeights, haveEdges bool
	expect := sectionNone
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case strings.HasPrefix(line, weightsHeader):
			expect = sectionWeights
			line = strings.TrimSpace(strings.TrimPrefix(line, weightsHeader))
		case strings.HasPrefix(line, edgesHeader):
			expect = sectionEdges
			line = strings.TrimSpace(strings.TrimPrefix(line, edgesHeader))
		}
		if line == "" || expect == sectionNone {
			continue
		}
		switch expect {
		case sectionWeights:
			weightsLine, haveWeights = line, true
		case sectionEdges:
			edgesLine, haveEdges = line, true
		}
		expect = sectionNone
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read graph: %w", err)
	}

	if !haveWeights {
		return nil, ErrMissingWeights
	}
	if !haveEdges {
		return nil, ErrMissingEdges
	}

	weights, err := parseWeights(weightsLine)
	if err != nil {
		return nil, fmt.Errorf("vertex weights: %w", err)
	}
	edges, err := parseEdges(edgesLine)
	if err != nil {
		return nil, fmt.Errorf("edge list: %w", err)
	}
	return New(weights, edges)
}

func listBody(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return "", fmt.Errorf("%w: %q", ErrMalformedList, s)
	}
	return strings.TrimSpace(s[1 : len(s)-1]), nil
}

func parseWeights(s string) ([]float64, error) {
	body, err := listBody(s)
	if err != nil {
		return nil, err
	}
	if body == "" {
		return nil, nil
	}
	fields := strings.Split(body, ",")
	out := make([]float64, 0, len(fields))
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" && i == len(fields)-1 {
			break // trailing comma
		}
		w, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: weight %d: %v", ErrMalformedList, i, err)
		}
		out = append(out, w)
	}
	return out, nil
}

func parseEdges(s string) ([]Edge, error) {
	body, err := listBody(s)
	if err != nil {
		return nil, err
	}
	matches := pairRegex.FindAllStringSubmatch(body, -1)
	rest := strings.Trim(pairRegex.ReplaceAllString(body, ""), " ,")
	if rest != "" {
		return nil, fmt.Errorf("%w: unexpected content %q", ErrMalformedList, rest)
	}
	edges := make([]Edge, 0, len(matches))
	for _, m := range matches {
		u, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedList, err)
		}
		v, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedList, err)
		}
		edges = append(edges, Edge{U: u, V: v})
	}
	return edges, nil
}

// Write renders g in the format Parse reads.
func Write(w io.Writer, g *Graph) error {
	var b strings.Builder
	b.WriteString(weightsHeader + "\n[")
	for i, wt := range g.weights {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatFloat(wt, 'g', -1, 64))
	}
	b.WriteString("]\n" + edgesHeader + "\n[")
	for i, e := range g.edges {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.String())
	}
	b.WriteString("]\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// Save writes g to path, creating or truncating the file.
func Save(path string, g *Graph) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create graph file %s: %w", path, err)
	}
	if err := Write(f, g); err != nil {
		f.Close()
		return fmt.Errorf("failed to write graph file %s: %w", path, err)
	}
	return f.Close()
}
