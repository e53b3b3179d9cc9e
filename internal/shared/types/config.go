package types

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/diillson/xm-reports-go/internal/domain/entity"
)

// Valores usados quando nada é informado por arquivo ou flag.
const (
	DefaultDataPath   = "data_noviembre_2025"
	DefaultOutputPath = "Desconexion_mes_agen.csv"
	DefaultDatasetID  = "EC6945"
	DefaultStartDate  = "2025-12-01"
	DefaultEndDate    = "2025-12-31"
	DefaultVersionTag = "TX1"
	DefaultTopN       = 3
	DefaultBaseURL    = "https://www.simem.co/backend-simem/public/page/api"
	DefaultTimeout    = 60
)

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	// Disconnection report
	DataPath   string `json:"data_path" yaml:"data_path" toml:"data_path"`
	OutputPath string `json:"output_path" yaml:"output_path" toml:"output_path"`
	Trend      bool   `json:"trend" yaml:"trend" toml:"trend"`

	// Price report
	DatasetID      string `json:"dataset_id" yaml:"dataset_id" toml:"dataset_id"`
	StartDate      string `json:"start_date" yaml:"start_date" toml:"start_date"`
	EndDate        string `json:"end_date" yaml:"end_date" toml:"end_date"`
	VersionTag     string `json:"version_tag" yaml:"version_tag" toml:"version_tag"`
	TopN           int    `json:"top_n" yaml:"top_n" toml:"top_n"`
	ChartPDF       string `json:"chart_pdf" yaml:"chart_pdf" toml:"chart_pdf"`
	BaseURL        string `json:"base_url" yaml:"base_url" toml:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds" yaml:"timeout_seconds" toml:"timeout_seconds"`

	// Output
	Dir        string   `json:"dir" yaml:"dir" toml:"dir"`
	ReportName string   `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType []string `json:"report_type" yaml:"report_type" toml:"report_type"`

	// Publicação opcional no S3
	S3Bucket   string `json:"s3_bucket" yaml:"s3_bucket" toml:"s3_bucket"`
	S3Prefix   string `json:"s3_prefix" yaml:"s3_prefix" toml:"s3_prefix"`
	AWSProfile string `json:"aws_profile" yaml:"aws_profile" toml:"aws_profile"`
	AWSRegion  string `json:"aws_region" yaml:"aws_region" toml:"aws_region"`
}

// DefaultConfig retorna a configuração padrão do relatório de novembro/dezembro de 2025.
func DefaultConfig() *Config {
	return &Config{
		DataPath:       DefaultDataPath,
		OutputPath:     DefaultOutputPath,
		DatasetID:      DefaultDatasetID,
		StartDate:      DefaultStartDate,
		EndDate:        DefaultEndDate,
		VersionTag:     DefaultVersionTag,
		TopN:           DefaultTopN,
		BaseURL:        DefaultBaseURL,
		TimeoutSeconds: DefaultTimeout,
		ReportType:     []string{"csv"},
	}
}

// Apply sobrescreve os campos com os valores não vazios de other.
func (c *Config) Apply(other *Config) {
	if other == nil {
		return
	}
	setString := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setString(&c.DataPath, other.DataPath)
	setString(&c.OutputPath, other.OutputPath)
	setString(&c.DatasetID, other.DatasetID)
	setString(&c.StartDate, other.StartDate)
	setString(&c.EndDate, other.EndDate)
	setString(&c.VersionTag, other.VersionTag)
	setString(&c.ChartPDF, other.ChartPDF)
	setString(&c.BaseURL, other.BaseURL)
	setString(&c.Dir, other.Dir)
	setString(&c.ReportName, other.ReportName)
	setString(&c.S3Bucket, other.S3Bucket)
	setString(&c.S3Prefix, other.S3Prefix)
	setString(&c.AWSProfile, other.AWSProfile)
	setString(&c.AWSRegion, other.AWSRegion)
	if other.Trend {
		c.Trend = true
	}
	if other.TopN != 0 {
		c.TopN = other.TopN
	}
	if other.TimeoutSeconds != 0 {
		c.TimeoutSeconds = other.TimeoutSeconds
	}
	if len(other.ReportType) > 0 {
		c.ReportType = other.ReportType
	}
}

// DateRange converte StartDate/EndDate no intervalo inclusivo.
func (c *Config) DateRange() (entity.DateRange, error) {
	start, err := time.Parse("2006-01-02", c.StartDate)
	if err != nil {
		return entity.DateRange{}, fmt.Errorf("%w: start_date %q: %v", ErrInvalidConfig, c.StartDate, err)
	}
	end, err := time.Parse("2006-01-02", c.EndDate)
	if err != nil {
		return entity.DateRange{}, fmt.Errorf("%w: end_date %q: %v", ErrInvalidConfig, c.EndDate, err)
	}
	if end.Before(start) {
		return entity.DateRange{}, fmt.Errorf("%w: end_date %s is before start_date %s", ErrInvalidConfig, c.EndDate, c.StartDate)
	}
	return entity.DateRange{Start: start, End: end}, nil
}

// Timeout returns the HTTP client timeout.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeout * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Validate checks the settings shared by both reports.
func (c *Config) Validate() error {
	for _, rt := range c.ReportType {
		switch strings.ToLower(rt) {
		case "csv", "json", "pdf":
		default:
			return fmt.Errorf("%w: %q (use csv, json or pdf)", ErrUnsupportedReport, rt)
		}
	}
	if c.TopN < 1 {
		return fmt.Errorf("%w: top_n must be at least 1, got %d", ErrInvalidConfig, c.TopN)
	}
	if strings.TrimSpace(c.DatasetID) == "" {
		return fmt.Errorf("%w: dataset_id is empty", ErrInvalidConfig)
	}
	if _, err := c.DateRange(); err != nil {
		return err
	}
	return nil
}

// ResolvePath coloca um caminho relativo dentro de Dir. Vazio continua vazio.
func (c *Config) ResolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) || c.Dir == "" {
		return path
	}
	return filepath.Join(c.Dir, path)
}

// WantsReport reports whether the given report type was requested.
func (c *Config) WantsReport(reportType string) bool {
	for _, rt := range c.ReportType {
		if strings.EqualFold(rt, reportType) {
			return true
		}
	}
	return false
}
