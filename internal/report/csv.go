package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/GoSim-25-26J-441/qaoa-core/internal/search"
	"github.com/GoSim-25-26J-441/qaoa-core/internal/simulator"
	"github.com/GoSim-25-26J-441/qaoa-core/internal/solution"
	"github.com/GoSim-25-26J-441/qaoa-core/pkg/utils"
)

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// WriteLandscapeCSV writes one row per grid point: beta and gamma in
// radians and in units of π, then the expected cost.
func WriteLandscapeCSV(w io.Writer, l *search.Landscape) error {
	if l == nil {
		return fmt.Errorf("landscape is nil")
	}
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"beta", "gamma", "beta_pi", "gamma_pi", "cost"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i, beta := range l.Betas {
		if i >= len(l.Values) || len(l.Values[i]) != len(l.Gammas) {
			return fmt.Errorf("landscape row %d does not match the gamma axis", i)
		}
		for j, gamma := range l.Gammas {
			row := []string{
				formatFloat(beta),
				formatFloat(gamma),
				formatFloat(utils.Round(utils.PiMultiple(beta), 6)),
				formatFloat(utils.Round(utils.PiMultiple(gamma), 6)),
				formatFloat(l.Values[i][j]),
			}
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteDistributionCSV writes the measured bitstrings by descending count.
func WriteDistributionCSV(w io.Writer, h simulator.Histogram) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"bitstring", "count", "probability"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	total := h.Total()
	for _, e := range h.Sorted() {
		p := 0.0
		if total > 0 {
			p = float64(e.Count) / float64(total)
		}
		if err := writer.Write([]string{e.Bitstring, strconv.Itoa(e.Count), formatFloat(p)}); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteEnergyCSV writes the QAOA and random energy samples as
// (source, energy) rows.
func WriteEnergyCSV(w io.Writer, d *solution.Distribution) error {
	if d == nil {
		return fmt.Errorf("distribution is nil")
	}
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"source", "energy"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, set := range []struct {
		name   string
		values []float64
	}{{"qaoa", d.QAOA}, {"random", d.Random}} {
		for _, v := range set.values {
			if err := writer.Write([]string{set.name, formatFloat(v)}); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
	}
	writer.Flush()
	return writer.Error()
}
