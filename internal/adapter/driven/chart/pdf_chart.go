package chart

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/diillson/xm-reports-go/internal/domain/entity"
	"github.com/diillson/xm-reports-go/internal/domain/repository"
	"github.com/diillson/xm-reports-go/internal/shared/types"
	"github.com/jung-kurt/gofpdf"
)

// Área do gráfico em mm numa página A4 paisagem.
const (
	plotX = 30.0
	plotY = 25.0
	plotW = 240.0
	plotH = 140.0
)

var pdfLineColors = [][3]int{{192, 0, 0}, {0, 128, 0}, {230, 140, 0}}

// PDFChartRenderer grava o gráfico de preços em um arquivo PDF.
type PDFChartRenderer struct {
	path  string
	title string
}

// NewPDFChartRenderer cria um renderer que grava em path.
func NewPDFChartRenderer(path, title string) repository.ChartRenderer {
	return &PDFChartRenderer{path: path, title: title}
}

// Render desenha a série em ordem cronológica e as linhas de referência tracejadas.
func (r *PDFChartRenderer) Render(series []entity.PriceRecord, lines []entity.ReferenceLine) error {
	if len(series) == 0 {
		return fmt.Errorf("%w: nothing to plot", types.ErrEmptyDataset)
	}
	sorted := entity.SortedByFechaHora(series)

	lo, hi := bounds(sorted, lines)
	pad := (hi - lo) * 0.05
	lo, hi = lo-pad, hi+pad

	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	// Título
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, tr(r.title), "", 1, "C", false, 0, "")

	toX := func(i int) float64 {
		if len(sorted) == 1 {
			return plotX + plotW/2
		}
		return plotX + plotW*float64(i)/float64(len(sorted)-1)
	}
	toY := func(v float64) float64 {
		return plotY + plotH - (v-lo)/(hi-lo)*plotH
	}

	// Eixos e grade
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.3)
	pdf.Line(plotX, plotY, plotX, plotY+plotH)
	pdf.Line(plotX, plotY+plotH, plotX+plotW, plotY+plotH)

	pdf.SetFont("Arial", "", 8)
	pdf.SetTextColor(80, 80, 80)
	for i := 0; i <= 5; i++ {
		v := lo + (hi-lo)*float64(i)/5
		y := toY(v)
		pdf.SetDrawColor(220, 220, 220)
		pdf.SetLineWidth(0.1)
		pdf.Line(plotX, y, plotX+plotW, y)
		pdf.Text(plotX-18, y+1, fmt.Sprintf("%.2f", v))
	}

	ticks := int(math.Min(6, float64(len(sorted))))
	for i := 0; i < ticks; i++ {
		idx := 0
		if ticks > 1 {
			idx = i * (len(sorted) - 1) / (ticks - 1)
		}
		x := toX(idx)
		pdf.Line(x, plotY+plotH, x, plotY+plotH+1.5)
		pdf.Text(x-10, plotY+plotH+6, sorted[idx].FechaHora.Format("2006-01-02 15h"))
	}

	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(plotX+plotW/2-12, plotY+plotH+14, "Fecha y Hora")
	pdf.TransformBegin()
	pdf.TransformRotate(90, 10, plotY+plotH/2+25)
	pdf.Text(10, plotY+plotH/2+25, "Precio de Bolsa (COP/kWh)")
	pdf.TransformEnd()

	// Série
	pdf.SetDrawColor(31, 119, 180)
	pdf.SetLineWidth(0.35)
	for i := 1; i < len(sorted); i++ {
		pdf.Line(toX(i-1), toY(sorted[i-1].Valor.InexactFloat64()), toX(i), toY(sorted[i].Valor.InexactFloat64()))
	}

	// Linhas de referência
	pdf.SetLineWidth(0.6)
	pdf.SetDashPattern([]float64{3, 2}, 0)
	for i, l := range lines {
		c := pdfLineColors[i%len(pdfLineColors)]
		y := toY(l.Value.InexactFloat64())
		pdf.SetDrawColor(c[0], c[1], c[2])
		pdf.Line(plotX, y, plotX+plotW, y)
	}
	pdf.SetDashPattern([]float64{}, 0)

	// Legenda
	legendY := plotY + plotH + 22
	pdf.SetFont("Arial", "", 9)
	pdf.SetDrawColor(31, 119, 180)
	pdf.SetLineWidth(0.35)
	pdf.Line(plotX, legendY, plotX+8, legendY)
	pdf.Text(plotX+10, legendY+1, "Precio Bolsa Nacional")
	for i, l := range lines {
		c := pdfLineColors[i%len(pdfLineColors)]
		x := plotX + 60*float64(i+1)
		pdf.SetDrawColor(c[0], c[1], c[2])
		pdf.Line(x, legendY, x+8, legendY)
		pdf.Text(x+10, legendY+1, tr(l.Format()))
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return fmt.Errorf("error creating chart directory: %w", err)
	}
	if err := pdf.OutputFileAndClose(r.path); err != nil {
		return fmt.Errorf("error writing chart PDF file: %w", err)
	}
	return nil
}
