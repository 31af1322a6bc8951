// Package report renders the outcome of a QAOA experiment as the plain-text
// summary and the CSV tables used for plotting.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/GoSim-25-26J-441/qaoa-core/internal/hamiltonian"
	"github.com/GoSim-25-26J-441/qaoa-core/internal/search"
	"github.com/GoSim-25-26J-441/qaoa-core/internal/solution"
	"github.com/GoSim-25-26J-441/qaoa-core/pkg/utils"
)

// File names written by Save.
const (
	MaxCutReportFile = "bestcut.txt"
	MWISReportFile   = "best_mwis.txt"
	LandscapeFile    = "landscape.csv"
	DistributionFile = "distribution.csv"
	EnergyFile       = "energy_distribution.csv"
)

// Baseline is the exact ground state used to judge the QAOA answer.
type Baseline struct {
	Bitstring string  `json:"bitstring"`
	Energy    float64 `json:"energy"`
}

// Report gathers everything printed about one run.
type Report struct {
	RunID        string                  `json:"run_id,omitempty"`
	Problem      hamiltonian.ProblemKind `json:"problem"`
	NumVertices  int                     `json:"num_vertices"`
	NumEdges     int                     `json:"num_edges"`
	Search       *search.Result          `json:"search"`
	Solution     *solution.Solution      `json:"solution"`
	Baseline     *Baseline               `json:"baseline,omitempty"`
	Distribution *solution.Distribution  `json:"distribution,omitempty"`
}

// FileName returns the text report file name for the problem kind.
func (r *Report) FileName() string {
	if r.Problem == hamiltonian.MWIS {
		return MWISReportFile
	}
	return MaxCutReportFile
}

// WriteText writes the human-readable report.
func (r *Report) WriteText(w io.Writer) error {
	if r.Search == nil || r.Solution == nil {
		return fmt.Errorf("report needs a search result and a solution")
	}
	var b strings.Builder

	fmt.Fprintf(&b, "Optimal beta: %s\n", piAngles(r.Search.Angles.Betas))
	fmt.Fprintf(&b, "Optimal gamma: %s\n", piAngles(r.Search.Angles.Gammas))
	fmt.Fprintf(&b, "Best bitstring: %s\n", r.Solution.Bitstring)
	switch r.Problem {
	case hamiltonian.MWIS:
		if r.Solution.MWIS != nil {
			fmt.Fprintln(&b, r.Solution.MWIS.String())
		}
	default:
		fmt.Fprintf(&b, "Best cut value: %d\n", r.Solution.CutValue)
	}
	fmt.Fprintf(&b, "Total frequency: %d\n", r.Solution.TotalShots)

	fmt.Fprintf(&b, "Search: %s, expected cost %.6f, %d evaluations, %d iterations, %s\n",
		r.Search.Strategy,
		r.Search.Cost,
		r.Search.Evaluations,
		r.Search.Iterations,
		r.Search.Duration.Round(time.Microsecond))
	if r.Search.Reason != "" {
		fmt.Fprintf(&b, "Stopped: %s\n", r.Search.Reason)
	}
	if r.Baseline != nil {
		fmt.Fprintf(&b, "Ground state: %s (energy %g)\n", r.Baseline.Bitstring, r.Baseline.Energy)
		fmt.Fprintf(&b, "Approximation ratio: %.4f\n", search.ApproximationRatio(r.Search.Cost, r.Baseline.Energy))
	}
	if r.Distribution != nil {
		fmt.Fprintf(&b, "Mean cut energy: QAOA %.4f, random %.4f\n", r.Distribution.QAOAMean, r.Distribution.RandomMean)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Text returns the report as a string.
func (r *Report) Text() (string, error) {
	var b strings.Builder
	if err := r.WriteText(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

func piAngles(xs []float64) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprintf("%.4fπ", utils.PiMultiple(x))
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// SaveOptions selects the optional CSV outputs.
type SaveOptions struct {
	Landscape    bool
	Distribution bool
}

// Save writes the text report and the requested CSV files into dir,
// creating it if needed, and returns the paths written.
func (r *Report) Save(dir string, opts SaveOptions) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	var written []string
	write := func(name string, fn func(io.Writer) error) error {
		path := filepath.Join(dir, name)
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", name, err)
		}
		if err := fn(f); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", name, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		written = append(written, path)
		return nil
	}

	if err := write(r.FileName(), r.WriteText); err != nil {
		return written, err
	}
	if opts.Landscape && r.Search != nil && r.Search.Landscape != nil {
		if err := write(LandscapeFile, func(w io.Writer) error {
			return WriteLandscapeCSV(w, r.Search.Landscape)
		}); err != nil {
			return written, err
		}
	}
	if opts.Distribution && r.Solution != nil {
		if err := write(DistributionFile, func(w io.Writer) error {
			return WriteDistributionCSV(w, r.Solution.Counts)
		}); err != nil {
			return written, err
		}
		if r.Distribution != nil {
			if err := write(EnergyFile, func(w io.Writer) error {
				return WriteEnergyCSV(w, r.Distribution)
			}); err != nil {
				return written, err
			}
		}
	}
	return written, nil
}
