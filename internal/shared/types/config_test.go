package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "data_noviembre_2025", cfg.DataPath)
	assert.Equal(t, "Desconexion_mes_agen.csv", cfg.OutputPath)
	assert.Equal(t, "EC6945", cfg.DatasetID)
	assert.Equal(t, "TX1", cfg.VersionTag)
	assert.Equal(t, 3, cfg.TopN)
	assert.Equal(t, []string{"csv"}, cfg.ReportType)
	assert.NoError(t, cfg.Validate())
}

func TestConfigApply(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Apply(&Config{DataPath: "other", TopN: 10, ReportType: []string{"json"}, Trend: true})

	assert.Equal(t, "other", cfg.DataPath)
	assert.Equal(t, 10, cfg.TopN)
	assert.Equal(t, []string{"json"}, cfg.ReportType)
	assert.True(t, cfg.Trend)
	// campos vazios não sobrescrevem
	assert.Equal(t, "EC6945", cfg.DatasetID)
	assert.Equal(t, DefaultTimeout, cfg.TimeoutSeconds)

	cfg.Apply(nil)
	assert.Equal(t, "other", cfg.DataPath)
}

func TestConfigDateRange(t *testing.T) {
	cfg := DefaultConfig()

	period, err := cfg.DateRange()
	require.NoError(t, err)
	assert.Equal(t, 31, period.Days())
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), period.Start)

	cfg.StartDate = "2025-13-01"
	_, err = cfg.DateRange()
	assert.ErrorIs(t, err, ErrInvalidConfig)

	cfg.StartDate, cfg.EndDate = "2025-12-31", "2025-12-01"
	_, err = cfg.DateRange()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{name: "unknown report type", mutate: func(c *Config) { c.ReportType = []string{"xlsx"} }, want: ErrUnsupportedReport},
		{name: "top below one", mutate: func(c *Config) { c.TopN = 0 }, want: ErrInvalidConfig},
		{name: "empty dataset", mutate: func(c *Config) { c.DatasetID = " " }, want: ErrInvalidConfig},
		{name: "bad end date", mutate: func(c *Config) { c.EndDate = "tomorrow" }, want: ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.want)
		})
	}
}

func TestConfigTimeoutAndReports(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 60*time.Second, cfg.Timeout())

	cfg.TimeoutSeconds = 5
	assert.Equal(t, 5*time.Second, cfg.Timeout())

	cfg.ReportType = []string{"CSV", "pdf"}
	assert.True(t, cfg.WantsReport("csv"))
	assert.True(t, cfg.WantsReport("PDF"))
	assert.False(t, cfg.WantsReport("json"))
}

func TestConfig_ResolvePath(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "chart.pdf", cfg.ResolvePath("chart.pdf"))

	cfg.Dir = "/data/reports"
	assert.Equal(t, "/data/reports/chart.pdf", cfg.ResolvePath("chart.pdf"))
	assert.Equal(t, "/data/reports/graficos/chart.pdf", cfg.ResolvePath("graficos/chart.pdf"))
	assert.Equal(t, "/tmp/chart.pdf", cfg.ResolvePath("/tmp/chart.pdf"))
	assert.Equal(t, "", cfg.ResolvePath(""))
}
