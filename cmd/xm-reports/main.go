package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/diillson/xm-reports-go/internal/adapter/driven/chart"
	"github.com/diillson/xm-reports-go/internal/adapter/driven/config"
	"github.com/diillson/xm-reports-go/internal/adapter/driven/csvsource"
	"github.com/diillson/xm-reports-go/internal/adapter/driven/export"
	"github.com/diillson/xm-reports-go/internal/adapter/driven/simem"
	"github.com/diillson/xm-reports-go/internal/adapter/driven/storage"
	"github.com/diillson/xm-reports-go/internal/adapter/driving/cli"
	"github.com/diillson/xm-reports-go/internal/application/usecase"
	"github.com/diillson/xm-reports-go/internal/domain/repository"
	"github.com/diillson/xm-reports-go/internal/shared/types"
	"github.com/diillson/xm-reports-go/pkg/console"
	"github.com/diillson/xm-reports-go/pkg/version"
)

func main() {
	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version, config.NewConfigRepository())
	app.SetBuilder(buildUseCases)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Executa o aplicativo
	if err := app.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildUseCases inicializa os repositórios com a configuração efetiva.
func buildUseCases(ctx context.Context, cfg *types.Config) (*cli.UseCases, error) {
	consoleImpl := console.NewConsole()
	exportRepo := export.NewExportRepository()

	var storageRepo repository.StorageRepository
	if cfg.S3Bucket != "" {
		s3Repo, err := storage.NewS3Repository(ctx, cfg.S3Bucket, cfg.S3Prefix, cfg.AWSProfile, cfg.AWSRegion)
		if err != nil {
			return nil, err
		}
		storageRepo = s3Repo
	}

	title := fmt.Sprintf("Precio de Bolsa Nacional Horario (%s)", cfg.VersionTag)
	charts := []repository.ChartRenderer{chart.NewTerminalChartRenderer(os.Stdout, title)}
	if chartPath := cfg.ResolvePath(cfg.ChartPDF); chartPath != "" {
		charts = append(charts, chart.NewPDFChartRenderer(chartPath, title))
	}

	return &cli.UseCases{
		Disconnection: usecase.NewDisconnectionUseCase(
			csvsource.NewReadingRepository(),
			exportRepo,
			storageRepo,
			consoleImpl,
		),
		Prices: usecase.NewPriceUseCase(
			simem.NewSIMEMRepository(cfg.BaseURL, cfg.Timeout()),
			exportRepo,
			storageRepo,
			charts,
			consoleImpl,
		),
	}, nil
}
