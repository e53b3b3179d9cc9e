package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/diillson/xm-reports-go/internal/domain/entity"
	"github.com/diillson/xm-reports-go/internal/domain/repository"
	"github.com/diillson/xm-reports-go/internal/shared/types"
	"github.com/pterm/pterm"
)

// DisconnectionUseCase handles the verified disconnection report.
type DisconnectionUseCase struct {
	readingRepo repository.ReadingRepository
	exportRepo  repository.ExportRepository
	storageRepo repository.StorageRepository
	console     types.ConsoleInterface
}

// NewDisconnectionUseCase creates a new disconnection use case. storageRepo may be nil.
func NewDisconnectionUseCase(
	readingRepo repository.ReadingRepository,
	exportRepo repository.ExportRepository,
	storageRepo repository.StorageRepository,
	console types.ConsoleInterface,
) *DisconnectionUseCase {
	return &DisconnectionUseCase{
		readingRepo: readingRepo,
		exportRepo:  exportRepo,
		storageRepo: storageRepo,
		console:     console,
	}
}

// BuildMonthlyReport carrega os arquivos de dataPath e calcula o relatório mensal por agente.
func (uc *DisconnectionUseCase) BuildMonthlyReport(ctx context.Context, dataPath string) ([]entity.MonthlyReportRow, error) {
	progress := uc.console.ProgressWithTotal("Processing disconnection report", 5)
	defer progress.Stop()

	// 1. Carga de dados
	readings, err := uc.readingRepo.LoadReadings(ctx, dataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load readings: %w", err)
	}
	progress.Increment()

	mapping, err := uc.readingRepo.LoadMapping(ctx, dataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load mapping: %w", err)
	}
	progress.Increment()

	// 2. Consumo diário por frontera
	daily := AggregateDailyConsumption(readings)
	progress.Increment()

	// 3. Desconexão verificada
	records := CalculateDisconnection(daily, mapping)
	if unmatched := CountUnmatched(records); unmatched > 0 {
		uc.console.LogWarning("%d of %d daily consumption rows have no mapping entry; they are left out of the report",
			unmatched, len(daily))
	}
	progress.Increment()

	// 4. Agregação mensal por agente
	rows := AggregateMonthly(records)
	progress.Increment()

	return rows, nil
}

// RunDisconnectionReport executa o relatório, exibe o resultado e exporta os arquivos.
func (uc *DisconnectionUseCase) RunDisconnectionReport(ctx context.Context, cfg *types.Config) ([]entity.MonthlyReportRow, error) {
	uc.console.LogInfo("Loading readings from %s...", cfg.DataPath)

	rows, err := uc.BuildMonthlyReport(ctx, cfg.DataPath)
	if err != nil {
		return nil, err
	}

	uc.console.Println("\nResultado final:")
	uc.console.Print(uc.buildReportTable(rows).Render())

	// 5. Exportação
	csvPath := ReportPath(cfg)
	exported, err := uc.exportRepo.ExportMonthlyReportToCSV(rows, csvPath)
	if err != nil {
		return nil, fmt.Errorf("failed to export report to CSV: %w", err)
	}
	uc.console.LogSuccess("Archivo exportado: %s", exported)
	exportedFiles := []string{exported}

	base := strings.TrimSuffix(csvPath, filepath.Ext(csvPath))
	if cfg.WantsReport("json") {
		jsonPath, err := uc.exportRepo.ExportMonthlyReportToJSON(rows, base+".json")
		if err != nil {
			uc.console.LogError("Failed to export report to JSON: %s", err)
		} else {
			uc.console.LogSuccess("Successfully exported report to JSON: %s", jsonPath)
			exportedFiles = append(exportedFiles, jsonPath)
		}
	}
	if cfg.WantsReport("pdf") {
		pdfPath, err := uc.exportRepo.ExportMonthlyReportToPDF(rows, base+".pdf")
		if err != nil {
			uc.console.LogError("Failed to export report to PDF: %s", err)
		} else {
			uc.console.LogSuccess("Successfully exported report to PDF: %s", pdfPath)
			exportedFiles = append(exportedFiles, pdfPath)
		}
	}

	if cfg.Trend {
		uc.console.DisplayTrendBars("Desconexión Verificada - Tendencia Mensual", toMonthlyAmounts(MonthlyTotals(rows)))
	}

	publishReports(ctx, uc.storageRepo, uc.console, exportedFiles)

	return rows, nil
}

// ReportPath resolve o caminho do CSV: OutputPath relativo é colocado dentro de Dir.
func ReportPath(cfg *types.Config) string {
	return cfg.ResolvePath(cfg.OutputPath)
}

func (uc *DisconnectionUseCase) buildReportTable(rows []entity.MonthlyReportRow) types.TableInterface {
	table := uc.console.CreateTable()
	for _, h := range entity.MonthlyReportHeader {
		table.AddColumn(h)
	}
	for _, r := range rows {
		table.AddRow(
			r.Fecha,
			pterm.FgMagenta.Sprint(r.Agente),
			r.DesconexionVerificadaKWh.StringFixed(2),
			r.TotalFronteras,
		)
	}
	return table
}

func toMonthlyAmounts(totals []entity.MonthlyTotal) []types.MonthlyAmount {
	amounts := make([]types.MonthlyAmount, len(totals))
	for i, t := range totals {
		amounts[i] = types.MonthlyAmount{Month: t.Month, Amount: t.Total.InexactFloat64()}
	}
	return amounts
}
