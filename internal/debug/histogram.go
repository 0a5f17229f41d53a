package debug

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/thelolagemann/sm83/internal/cpu"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// OpcodeCount is the number of times an opcode was executed.
type OpcodeCount struct {
	Opcode uint8
	Family cpu.Family
	Count  uint64
}

// Histogram counts executed instructions by opcode and by family.
// It is safe to read while the emulator is running.
type Histogram struct {
	mu       sync.Mutex
	opcodes  [256]uint64
	families [cpu.FamilyIllegal + 1]uint64
	total    uint64
}

// NewHistogram returns an empty Histogram.
func NewHistogram() *Histogram {
	return &Histogram{}
}

// Trace implements cpu.TraceFunc.
func (h *Histogram) Trace(tr cpu.Trace) {
	h.mu.Lock()
	h.opcodes[tr.Opcode]++
	if int(tr.Family) < len(h.families) {
		h.families[tr.Family]++
	}
	h.total++
	h.mu.Unlock()
}

// Total returns the number of instructions recorded.
func (h *Histogram) Total() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.total
}

// Opcode returns the number of times opcode was executed.
func (h *Histogram) Opcode(opcode uint8) uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.opcodes[opcode]
}

// Family returns the number of instructions executed from family f.
func (h *Histogram) Family(f cpu.Family) uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	if int(f) >= len(h.families) {
		return 0
	}
	return h.families[f]
}

// Top returns the n most executed opcodes, most frequent first. Ties
// are ordered by opcode.
func (h *Histogram) Top(n int) []OpcodeCount {
	h.mu.Lock()
	counts := make([]OpcodeCount, 0, 256)
	for op, count := range h.opcodes {
		if count == 0 {
			continue
		}
		counts = append(counts, OpcodeCount{
			Opcode: uint8(op),
			Family: cpu.Classify(uint8(op)),
			Count:  count,
		})
	}
	h.mu.Unlock()

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if n < len(counts) {
		counts = counts[:n]
	}
	return counts
}

// Reset clears every counter.
func (h *Histogram) Reset() {
	h.mu.Lock()
	h.opcodes = [256]uint64{}
	h.families = [cpu.FamilyIllegal + 1]uint64{}
	h.total = 0
	h.mu.Unlock()
}

// Plot renders the per family counts as a bar chart. Families that
// were never executed are left out.
func (h *Histogram) Plot() (*plot.Plot, error) {
	h.mu.Lock()
	var (
		values plotter.Values
		names  []string
	)
	for f, count := range h.families {
		if count == 0 {
			continue
		}
		values = append(values, float64(count))
		names = append(names, cpu.Family(f).String())
	}
	total := h.total
	h.mu.Unlock()

	if len(values) == 0 {
		return nil, fmt.Errorf("debug: histogram is empty")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Instructions (%d total)", total)
	p.Y.Label.Text = "Count"

	bars, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return nil, err
	}
	p.Add(bars)
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = math.Pi / 2

	return p, nil
}

// SavePNG renders the histogram to an image at path. The format is
// taken from the file extension.
func (h *Histogram) SavePNG(path string) error {
	p, err := h.Plot()
	if err != nil {
		return err
	}
	if err := p.Save(12*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("debug: saving histogram: %w", err)
	}
	return nil
}
