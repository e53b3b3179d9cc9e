package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/diillson/xm-reports-go/internal/domain/entity"
	"github.com/diillson/xm-reports-go/internal/domain/repository"
	"github.com/diillson/xm-reports-go/internal/shared/types"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

const utf8BOM = "\ufeff"

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// --- Relatório de desconexão ---

// ExportMonthlyReportToCSV grava o relatório em UTF-8 com BOM, sobrescrevendo path.
func (r *ExportRepositoryImpl) ExportMonthlyReportToCSV(rows []entity.MonthlyReportRow, path string) (string, error) {
	if err := ensureParentDir(path); err != nil {
		return "", err
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	if _, err := file.WriteString(utf8BOM); err != nil {
		return "", fmt.Errorf("error writing CSV BOM: %w", err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(entity.MonthlyReportHeader); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.Fecha,
			row.Agente,
			FormatDecimal(row.DesconexionVerificadaKWh),
			strconv.Itoa(row.TotalFronteras),
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("error writing CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("error flushing CSV file: %w", err)
	}

	return filepath.Abs(path)
}

// ReadMonthlyReportCSV lê de volta um relatório exportado por ExportMonthlyReportToCSV.
func (r *ExportRepositoryImpl) ReadMonthlyReportCSV(path string) ([]entity.MonthlyReportRow, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", types.ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV file: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", types.ErrSchemaMismatch, path)
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}
	if strings.Join(header, ",") != strings.Join(entity.MonthlyReportHeader, ",") {
		return nil, fmt.Errorf("%w: unexpected header %q", types.ErrSchemaMismatch, header)
	}

	rows := make([]entity.MonthlyReportRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		value, err := decimal.NewFromString(rec[2])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", types.ErrParse, i+2, err)
		}
		total, err := strconv.Atoi(rec[3])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", types.ErrParse, i+2, err)
		}
		rows = append(rows, entity.MonthlyReportRow{
			Fecha:                    rec[0],
			Agente:                   rec[1],
			DesconexionVerificadaKWh: value,
			TotalFronteras:           total,
		})
	}
	return rows, nil
}

func (r *ExportRepositoryImpl) ExportMonthlyReportToJSON(rows []entity.MonthlyReportRow, path string) (string, error) {
	if err := ensureParentDir(path); err != nil {
		return "", err
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(rows); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(path)
}

func (r *ExportRepositoryImpl) ExportMonthlyReportToPDF(rows []entity.MonthlyReportRow, path string) (string, error) {
	if err := ensureParentDir(path); err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}
	widths := []float64{30, 70, 50, 40}

	drawTableHeader := func() {
		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(240, 240, 240)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		for i, h := range entity.MonthlyReportHeader {
			pdf.CellFormat(widths[i], 8, tr(h), "B", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.AddPage()
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr("  Desconexión Verificada por Mes y Agente"), "", 1, "L", true, 0, "")
	pdf.Ln(6)

	drawTableHeader()
	pdf.SetFont("Arial", "", 10)
	total := decimal.Zero
	for _, row := range rows {
		if pdf.GetY() > 270 {
			pdf.AddPage()
			drawTableHeader()
			pdf.SetFont("Arial", "", 10)
		}
		pdf.CellFormat(widths[0], 7, tr(row.Fecha), "B", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, tr(row.Agente), "B", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 7, FormatDecimal(row.DesconexionVerificadaKWh), "B", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, strconv.Itoa(row.TotalFronteras), "B", 1, "R", false, 0, "")
		total = total.Add(row.DesconexionVerificadaKWh)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(widths[0]+widths[1], 7, "Total", "", 0, "L", false, 0, "")
	pdf.CellFormat(widths[2], 7, FormatDecimal(total), "", 1, "R", false, 0, "")

	pdf.SetY(-15)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	footerText := fmt.Sprintf("Generated by XM Reports (Go) | %s", time.Now().Format("2006-01-02"))
	pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(path)
}

// --- Relatório de preços ---

func (r *ExportRepositoryImpl) ExportPriceReportToCSV(report entity.PriceReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating price CSV file: %w", err)
	}
	defer file.Close()

	if _, err := file.WriteString(utf8BOM); err != nil {
		return "", fmt.Errorf("error writing CSV BOM: %w", err)
	}

	w := csv.NewWriter(file)
	records := [][]string{
		{"Dataset", "Version", "Periodo", "Registros"},
		{report.DatasetID, report.Version, report.Period.String(), strconv.Itoa(report.Records)},
		{},
		{"Precio máximo", "Precio mínimo", "Precio promedio"},
		{
			report.Statistics.Max.StringFixedBank(2),
			report.Statistics.Min.StringFixedBank(2),
			report.Statistics.Mean.StringFixedBank(2),
		},
		{},
		{"Ranking", "Fecha", "Periodo", "Precio de Bolsa COP/kWh"},
	}
	for i, p := range report.Highest {
		records = append(records, extremeRecord(fmt.Sprintf("Alto %d", i+1), p))
	}
	for i, p := range report.Lowest {
		records = append(records, extremeRecord(fmt.Sprintf("Bajo %d", i+1), p))
	}

	for _, rec := range records {
		if err := w.Write(rec); err != nil {
			return "", fmt.Errorf("error writing CSV record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("error flushing CSV file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func extremeRecord(rank string, p entity.ExtremePeriod) []string {
	return []string{rank, p.FechaHora.Format("2006-01-02 15:04:05"), strconv.Itoa(p.Periodo), FormatDecimal(p.Valor)}
}

func (r *ExportRepositoryImpl) ExportPriceReportToJSON(report entity.PriceReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	f, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating price JSON file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return "", fmt.Errorf("error encoding price JSON: %w", err)
	}
	return filepath.Abs(outputFilename)
}

// --- Funções Auxiliares ---

// FormatDecimal escreve o valor com pelo menos uma casa decimal ("5.0", "12.35").
func FormatDecimal(d decimal.Decimal) string {
	s := d.String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	return nil
}

// generateFilename cria um nome de arquivo único com timestamp e garante que o diretório exista.
func generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}
