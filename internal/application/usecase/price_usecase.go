package usecase

import (
	"context"
	"fmt"

	"github.com/diillson/xm-reports-go/internal/domain/entity"
	"github.com/diillson/xm-reports-go/internal/domain/repository"
	"github.com/diillson/xm-reports-go/internal/shared/types"
)

// PriceUseCase handles the hourly exchange price report.
type PriceUseCase struct {
	marketRepo  repository.MarketDataRepository
	exportRepo  repository.ExportRepository
	storageRepo repository.StorageRepository
	charts      []repository.ChartRenderer
	console     types.ConsoleInterface
}

// NewPriceUseCase creates a new price use case. storageRepo may be nil.
func NewPriceUseCase(
	marketRepo repository.MarketDataRepository,
	exportRepo repository.ExportRepository,
	storageRepo repository.StorageRepository,
	charts []repository.ChartRenderer,
	console types.ConsoleInterface,
) *PriceUseCase {
	return &PriceUseCase{
		marketRepo:  marketRepo,
		exportRepo:  exportRepo,
		storageRepo: storageRepo,
		charts:      charts,
		console:     console,
	}
}

// BuildPriceReport busca o dataset, filtra a versão e calcula estatísticas e extremos.
// Também retorna a série filtrada usada no gráfico.
func (uc *PriceUseCase) BuildPriceReport(ctx context.Context, cfg *types.Config) (entity.PriceReport, []entity.PriceRecord, error) {
	period, err := cfg.DateRange()
	if err != nil {
		return entity.PriceReport{}, nil, err
	}

	// 1. Extração
	status := uc.console.Status(fmt.Sprintf("Fetching dataset %s (%s)...", cfg.DatasetID, period))
	raw, err := uc.marketRepo.Fetch(ctx, cfg.DatasetID, period)
	status.Stop()
	if err != nil {
		return entity.PriceReport{}, nil, fmt.Errorf("failed to fetch dataset %s: %w", cfg.DatasetID, err)
	}
	uc.console.LogInfo("Fetched %d records from dataset %s", len(raw), cfg.DatasetID)

	// 2. Processamento
	filtered, dropped := DropNullValues(FilterVersion(raw, cfg.VersionTag))
	if dropped > 0 {
		uc.console.LogWarning("%d %s records have no Valor; they are left out of the statistics", dropped, cfg.VersionTag)
	}
	prices, err := DerivePeriod(filtered)
	if err != nil {
		return entity.PriceReport{}, nil, err
	}

	// 3. Estatísticas e períodos extremos
	report, err := Summarize(prices, cfg.TopN)
	if err != nil {
		return entity.PriceReport{}, nil, fmt.Errorf("no %s records for dataset %s: %w", cfg.VersionTag, cfg.DatasetID, err)
	}
	report.DatasetID = cfg.DatasetID
	report.Version = cfg.VersionTag
	report.Period = period

	return report, prices, nil
}

// RunPriceReport executa o relatório de preços, imprime o resumo e desenha os gráficos.
func (uc *PriceUseCase) RunPriceReport(ctx context.Context, cfg *types.Config) (entity.PriceReport, error) {
	report, prices, err := uc.BuildPriceReport(ctx, cfg)
	if err != nil {
		return entity.PriceReport{}, err
	}

	uc.console.Println("\nEstadísticas del Precio de Bolsa:")
	uc.console.Printf("Precio máximo: %s\n", report.Statistics.Max.StringFixedBank(2))
	uc.console.Printf("Precio mínimo: %s\n", report.Statistics.Min.StringFixedBank(2))
	uc.console.Printf("Precio promedio: %s\n", report.Statistics.Mean.StringFixedBank(2))

	uc.console.Printf("\nPeriodos con el precio más alto (%d):\n", len(report.Highest))
	uc.console.Print(uc.buildExtremesTable(report.Highest).Render())
	uc.console.Printf("\nPeriodos con el precio más bajo (%d):\n", len(report.Lowest))
	uc.console.Print(uc.buildExtremesTable(report.Lowest).Render())

	// 5. Visualização
	lines := ReferenceLines(report.Statistics)
	for _, chart := range uc.charts {
		if err := chart.Render(prices, lines); err != nil {
			uc.console.LogError("Failed to render chart: %s", err)
		}
	}

	if cfg.ReportName != "" {
		var exported []string
		if cfg.WantsReport("csv") {
			csvPath, err := uc.exportRepo.ExportPriceReportToCSV(report, cfg.ReportName, cfg.Dir)
			if err != nil {
				uc.console.LogError("Failed to export price report to CSV: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported price report to CSV: %s", csvPath)
				exported = append(exported, csvPath)
			}
		}
		if cfg.WantsReport("json") {
			jsonPath, err := uc.exportRepo.ExportPriceReportToJSON(report, cfg.ReportName, cfg.Dir)
			if err != nil {
				uc.console.LogError("Failed to export price report to JSON: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported price report to JSON: %s", jsonPath)
				exported = append(exported, jsonPath)
			}
		}
		if cfg.WantsReport("pdf") {
			uc.console.LogWarning("PDF is not available for the price report; use --chart-pdf for the chart")
		}
		publishReports(ctx, uc.storageRepo, uc.console, exported)
	}

	return report, nil
}

func (uc *PriceUseCase) buildExtremesTable(periods []entity.ExtremePeriod) types.TableInterface {
	table := uc.console.CreateTable()
	table.AddColumn("Fecha")
	table.AddColumn("Periodo")
	table.AddColumn("Precio de Bolsa COP/kWh")
	for _, p := range periods {
		table.AddRow(p.FechaHora.Format("2006-01-02 15:04:05"), p.Periodo, p.Valor.StringFixedBank(2))
	}
	return table
}
