package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/diillson/xm-reports-go/pkg/version"

	"github.com/diillson/xm-reports-go/internal/application/usecase"
	"github.com/diillson/xm-reports-go/internal/domain/repository"
	"github.com/diillson/xm-reports-go/internal/shared/types"
	"github.com/spf13/cobra"
)

// UseCases agrupa os casos de uso montados para uma execução.
type UseCases struct {
	Disconnection *usecase.DisconnectionUseCase
	Prices        *usecase.PriceUseCase
}

// Builder monta os casos de uso a partir da configuração efetiva.
type Builder func(ctx context.Context, cfg *types.Config) (*UseCases, error)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd    *cobra.Command
	configRepo repository.ConfigRepository
	builder    Builder
	version    string
	quiet      bool
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string, configRepo repository.ConfigRepository) *CLIApp {
	app := &CLIApp{
		version:    versionStr,
		configRepo: configRepo,
	}

	// Obtem a versão formatada
	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:           "xm-reports",
		Short:         "XM electricity market reports CLI",
		Long:          "Verified disconnection report by agent and SIMEM hourly exchange price report.",
		Version:       formattedVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.SetVersionTemplate(`{{printf "XM Reports version: %s\n" .Version}}`)

	// Flags comuns aos dois relatórios
	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	rootCmd.PersistentFlags().StringSliceP("report-type", "y", []string{"csv"}, "Specify report types: csv, json, pdf")
	rootCmd.PersistentFlags().String("report-name", "", "Base name for the price report files (without extension)")
	rootCmd.PersistentFlags().String("s3-bucket", "", "Publish exported files to this S3 bucket")
	rootCmd.PersistentFlags().String("s3-prefix", "", "Key prefix for published files")
	rootCmd.PersistentFlags().String("aws-profile", "", "AWS profile used to publish to S3")
	rootCmd.PersistentFlags().String("aws-region", "", "AWS region of the S3 bucket")

	disconnectionCmd := &cobra.Command{
		Use:   "disconnection",
		Short: "Verified disconnection by month and agent",
		RunE:  app.runDisconnection,
	}
	disconnectionCmd.Flags().StringP("data-path", "p", types.DefaultDataPath, "Directory with Lecturas_parte1.csv, Lecturas_parte2.csv and Mapeo.csv")
	disconnectionCmd.Flags().StringP("output", "o", types.DefaultOutputPath, "CSV output file (relative paths go under --dir)")
	disconnectionCmd.Flags().Bool("trend", false, "Display monthly totals as bars with month-over-month change")

	pricesCmd := &cobra.Command{
		Use:   "prices",
		Short: "Hourly exchange price statistics from SIMEM",
		RunE:  app.runPrices,
	}
	pricesCmd.Flags().StringP("dataset", "i", types.DefaultDatasetID, "SIMEM dataset id")
	pricesCmd.Flags().String("start", types.DefaultStartDate, "Start date (YYYY-MM-DD)")
	pricesCmd.Flags().String("end", types.DefaultEndDate, "End date (YYYY-MM-DD, inclusive)")
	pricesCmd.Flags().String("version-tag", types.DefaultVersionTag, "Record version to keep")
	pricesCmd.Flags().IntP("top", "n", types.DefaultTopN, "Number of highest and lowest periods to show")
	pricesCmd.Flags().String("chart-pdf", "", "Also draw the chart into this PDF file (relative paths go under --dir)")
	pricesCmd.Flags().String("base-url", types.DefaultBaseURL, "SIMEM API base URL")
	pricesCmd.Flags().Int("timeout", types.DefaultTimeout, "HTTP timeout in seconds")

	rootCmd.AddCommand(disconnectionCmd, pricesCmd)

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// ExecuteContext runs the CLI application with the given context.
func (app *CLIApp) ExecuteContext(ctx context.Context) error {
	return app.rootCmd.ExecuteContext(ctx)
}

// SetBuilder sets the function that wires the use cases.
func (app *CLIApp) SetBuilder(builder Builder) {
	app.builder = builder
}

// SetArgs substitui os argumentos da linha de comando (usado em testes).
func (app *CLIApp) SetArgs(args []string) {
	app.rootCmd.SetArgs(args)
}

// SetQuiet desliga o banner e a checagem de versão.
func (app *CLIApp) SetQuiet(quiet bool) {
	app.quiet = quiet
}

func (app *CLIApp) runDisconnection(cmd *cobra.Command, args []string) error {
	cfg, useCases, err := app.prepare(cmd)
	if err != nil {
		return err
	}
	_, err = useCases.Disconnection.RunDisconnectionReport(contextOf(cmd), cfg)
	return err
}

func (app *CLIApp) runPrices(cmd *cobra.Command, args []string) error {
	cfg, useCases, err := app.prepare(cmd)
	if err != nil {
		return err
	}
	_, err = useCases.Prices.RunPriceReport(contextOf(cmd), cfg)
	return err
}

// prepare exibe o banner, resolve a configuração e monta os casos de uso.
func (app *CLIApp) prepare(cmd *cobra.Command) (*types.Config, *UseCases, error) {
	if !app.quiet {
		displayWelcomeBanner()
		go version.CheckLatestVersion(app.version)
	}

	cfg, err := app.resolveConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	if app.builder == nil {
		return nil, nil, fmt.Errorf("%w: no use case builder configured", types.ErrInvalidConfig)
	}
	useCases, err := app.builder(contextOf(cmd), cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, useCases, nil
}

// resolveConfig aplica padrão < arquivo de configuração < flags informadas.
func (app *CLIApp) resolveConfig(cmd *cobra.Command) (*types.Config, error) {
	cfg := types.DefaultConfig()
	flags := cmd.Flags()

	if configFile, _ := flags.GetString("config-file"); configFile != "" {
		fileCfg, err := app.configRepo.LoadConfigFile(configFile)
		if err != nil {
			return nil, err
		}
		cfg.Apply(fileCfg)
	}

	stringFlags := map[string]*string{
		"dir":         &cfg.Dir,
		"report-name": &cfg.ReportName,
		"s3-bucket":   &cfg.S3Bucket,
		"s3-prefix":   &cfg.S3Prefix,
		"aws-profile": &cfg.AWSProfile,
		"aws-region":  &cfg.AWSRegion,
		"data-path":   &cfg.DataPath,
		"output":      &cfg.OutputPath,
		"dataset":     &cfg.DatasetID,
		"start":       &cfg.StartDate,
		"end":         &cfg.EndDate,
		"version-tag": &cfg.VersionTag,
		"chart-pdf":   &cfg.ChartPDF,
		"base-url":    &cfg.BaseURL,
	}
	for name, dst := range stringFlags {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}

	if flags.Changed("report-type") {
		cfg.ReportType, _ = flags.GetStringSlice("report-type")
	}
	if flags.Changed("trend") {
		cfg.Trend, _ = flags.GetBool("trend")
	}
	if flags.Changed("top") {
		cfg.TopN, _ = flags.GetInt("top")
	}
	if flags.Changed("timeout") {
		cfg.TimeoutSeconds, _ = flags.GetInt("timeout")
	}

	// Converte o diretório para caminho absoluto
	if cfg.Dir != "" {
		absDir, err := filepath.Abs(cfg.Dir)
		if err != nil {
			return nil, err
		}
		cfg.Dir = absDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
