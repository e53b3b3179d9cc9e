package chart

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/diillson/xm-reports-go/internal/domain/entity"
	"github.com/diillson/xm-reports-go/internal/domain/repository"
	"github.com/diillson/xm-reports-go/internal/shared/types"
	"github.com/pterm/pterm"
)

const (
	terminalWidth  = 96
	terminalHeight = 16
)

var lineColors = []pterm.Color{pterm.FgRed, pterm.FgGreen, pterm.FgYellow}

// TerminalChartRenderer desenha o gráfico de preços em ASCII dentro de um box do pterm.
type TerminalChartRenderer struct {
	out   io.Writer
	title string
}

// NewTerminalChartRenderer cria um renderer que escreve em out.
func NewTerminalChartRenderer(out io.Writer, title string) repository.ChartRenderer {
	return &TerminalChartRenderer{out: out, title: title}
}

// Render ordena a série por FechaHora e desenha a linha com as referências tracejadas.
func (r *TerminalChartRenderer) Render(series []entity.PriceRecord, lines []entity.ReferenceLine) error {
	if len(series) == 0 {
		return fmt.Errorf("%w: nothing to plot", types.ErrEmptyDataset)
	}
	sorted := entity.SortedByFechaHora(series)

	grid := plotGrid(sorted, lines, terminalWidth, terminalHeight)
	lo, hi := bounds(sorted, lines)

	var b strings.Builder
	for row, cells := range grid {
		label := "        "
		if row == 0 {
			label = fmt.Sprintf("%8.2f", hi)
		} else if row == len(grid)-1 {
			label = fmt.Sprintf("%8.2f", lo)
		}
		b.WriteString(label)
		b.WriteString(" │")
		for _, c := range cells {
			b.WriteString(c)
		}
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat(" ", 9) + "└" + strings.Repeat("─", len(grid[0])) + "\n")
	b.WriteString(fmt.Sprintf("%10s%s → %s\n", "",
		sorted[0].FechaHora.Format("2006-01-02 15:04"),
		sorted[len(sorted)-1].FechaHora.Format("2006-01-02 15:04")))

	b.WriteString("\n")
	b.WriteString(pterm.FgCyan.Sprint("━━ Precio") + "\n")
	for i, l := range lines {
		b.WriteString(lineColors[i%len(lineColors)].Sprint("-- "+l.Format()) + "\n")
	}

	panel := pterm.DefaultBox.WithTitle(r.title).WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).Sprint(b.String())
	_, err := fmt.Fprintln(r.out, "\n"+panel)
	return err
}

// plotGrid monta a grade de células (já coloridas); a linha 0 é o topo.
func plotGrid(series []entity.PriceRecord, lines []entity.ReferenceLine, width, height int) [][]string {
	values := resample(series, width)
	lo, hi := bounds(series, lines)

	toRow := func(v float64) int {
		pos := (v - lo) / (hi - lo) * float64(height-1)
		return height - 1 - int(math.Round(pos))
	}

	grid := make([][]string, height)
	for i := range grid {
		grid[i] = make([]string, len(values))
		for j := range grid[i] {
			grid[i][j] = " "
		}
	}

	for i, l := range lines {
		row := toRow(l.Value.InexactFloat64())
		for col := range grid[row] {
			if col%2 == 0 {
				grid[row][col] = lineColors[i%len(lineColors)].Sprint("-")
			}
		}
	}

	for col, v := range values {
		grid[toRow(v)][col] = pterm.FgCyan.Sprint("•")
	}

	return grid
}
