package usecase

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/diillson/xm-reports-go/internal/domain/entity"
	"github.com/diillson/xm-reports-go/internal/shared/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func num(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

// recordingConsole guarda tudo o que os casos de uso imprimem.
type recordingConsole struct {
	out      strings.Builder
	infos    []string
	warnings []string
	errors   []string
	success  []string
	trend    []types.MonthlyAmount
	tables   []*recordingTable
}

func (c *recordingConsole) Print(a ...interface{})                 { fmt.Fprint(&c.out, a...) }
func (c *recordingConsole) Printf(format string, a ...interface{}) { fmt.Fprintf(&c.out, format, a...) }
func (c *recordingConsole) Println(a ...interface{})               { fmt.Fprintln(&c.out, a...) }

func (c *recordingConsole) LogInfo(format string, a ...interface{}) {
	c.infos = append(c.infos, fmt.Sprintf(format, a...))
}

func (c *recordingConsole) LogWarning(format string, a ...interface{}) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, a...))
}

func (c *recordingConsole) LogError(format string, a ...interface{}) {
	c.errors = append(c.errors, fmt.Sprintf(format, a...))
}

func (c *recordingConsole) LogSuccess(format string, a ...interface{}) {
	c.success = append(c.success, fmt.Sprintf(format, a...))
}

func (c *recordingConsole) Status(string) types.StatusHandle { return noopHandle{} }

func (c *recordingConsole) ProgressWithTotal(string, int) types.ProgressHandle { return noopHandle{} }

func (c *recordingConsole) CreateTable() types.TableInterface {
	table := &recordingTable{}
	c.tables = append(c.tables, table)
	return table
}

func (c *recordingConsole) DisplayTrendBars(_ string, monthly []types.MonthlyAmount) {
	c.trend = monthly
}

type noopHandle struct{}

func (noopHandle) Update(string) {}
func (noopHandle) Increment()    {}
func (noopHandle) Stop()         {}

type recordingTable struct {
	columns []string
	rows    [][]string
}

func (t *recordingTable) AddColumn(name string, _ ...interface{}) { t.columns = append(t.columns, name) }

func (t *recordingTable) AddRow(cells ...interface{}) {
	row := make([]string, len(cells))
	for i, c := range cells {
		row[i] = fmt.Sprint(c)
	}
	t.rows = append(t.rows, row)
}

func (t *recordingTable) Render() string { return "" }

type fakeReadingRepo struct {
	readings   []entity.Reading
	mapping    []entity.MappingEntry
	readingErr error
	mappingErr error
}

func (f *fakeReadingRepo) LoadReadings(context.Context, string) ([]entity.Reading, error) {
	return f.readings, f.readingErr
}

func (f *fakeReadingRepo) LoadMapping(context.Context, string) ([]entity.MappingEntry, error) {
	return f.mapping, f.mappingErr
}

type fakeExportRepo struct {
	csvPath     string
	csvErr      error
	jsonPaths   []string
	pdfPaths    []string
	priceCSV    []entity.PriceReport
	priceJSON   []entity.PriceReport
	exportedRow []entity.MonthlyReportRow
}

func (f *fakeExportRepo) ExportMonthlyReportToCSV(rows []entity.MonthlyReportRow, path string) (string, error) {
	f.exportedRow = rows
	f.csvPath = path
	return path, f.csvErr
}

func (f *fakeExportRepo) ExportMonthlyReportToJSON(_ []entity.MonthlyReportRow, path string) (string, error) {
	f.jsonPaths = append(f.jsonPaths, path)
	return path, nil
}

func (f *fakeExportRepo) ExportMonthlyReportToPDF(_ []entity.MonthlyReportRow, path string) (string, error) {
	f.pdfPaths = append(f.pdfPaths, path)
	return path, nil
}

func (f *fakeExportRepo) ReadMonthlyReportCSV(string) ([]entity.MonthlyReportRow, error) {
	return f.exportedRow, nil
}

func (f *fakeExportRepo) ExportPriceReportToCSV(report entity.PriceReport, filename, outputDir string) (string, error) {
	f.priceCSV = append(f.priceCSV, report)
	return outputDir + "/" + filename + ".csv", nil
}

func (f *fakeExportRepo) ExportPriceReportToJSON(report entity.PriceReport, filename, outputDir string) (string, error) {
	f.priceJSON = append(f.priceJSON, report)
	return outputDir + "/" + filename + ".json", nil
}

type fakeStorage struct {
	keys []string
	err  error
}

func (f *fakeStorage) Upload(_ context.Context, _ string, key string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.keys = append(f.keys, key)
	return "s3://bucket/" + key, nil
}

type fakeMarketRepo struct {
	records []entity.MarketRecord
	err     error
	period  entity.DateRange
}

func (f *fakeMarketRepo) Fetch(_ context.Context, _ string, period entity.DateRange) ([]entity.MarketRecord, error) {
	f.period = period
	return f.records, f.err
}

type fakeChart struct {
	series []entity.PriceRecord
	lines  []entity.ReferenceLine
	err    error
}

func (f *fakeChart) Render(series []entity.PriceRecord, lines []entity.ReferenceLine) error {
	f.series = series
	f.lines = lines
	return f.err
}
