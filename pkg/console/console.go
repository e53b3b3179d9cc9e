package console

import (
	"fmt"
	"math"
	"strings"

	"github.com/diillson/xm-reports-go/internal/shared/types"
	"github.com/pterm/pterm"
)

// Console é uma implementação do ConsoleInterface.
type Console struct{}

// NewConsole cria um novo Console.
func NewConsole() *Console {
	return &Console{}
}

// Print imprime no console.
func (c *Console) Print(a ...interface{}) {
	fmt.Print(a...)
}

// Printf imprime uma string formatada no console.
func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Printf(format, a...)
}

// Println imprime no console com uma nova linha.
func (c *Console) Println(a ...interface{}) {
	fmt.Println(a...)
}

// LogInfo registra uma mensagem de informação.
func (c *Console) LogInfo(format string, a ...interface{}) {
	pterm.Info.Printfln(format, a...)
}

// LogWarning registra uma mensagem de aviso.
func (c *Console) LogWarning(format string, a ...interface{}) {
	pterm.Warning.Printfln(format, a...)
}

// LogError registra uma mensagem de erro.
func (c *Console) LogError(format string, a ...interface{}) {
	pterm.Error.Printfln(format, a...)
}

// LogSuccess registra uma mensagem de sucesso.
func (c *Console) LogSuccess(format string, a ...interface{}) {
	pterm.Success.Printfln(format, a...)
}

// statusHandle é uma implementação do StatusHandle.
type statusHandle struct {
	spinner *pterm.SpinnerPrinter
}

// Status cria um spinner de status com a mensagem especificada.
func (c *Console) Status(message string) types.StatusHandle {
	spinner, _ := pterm.DefaultSpinner.Start(message)
	return &statusHandle{spinner: spinner}
}

// Update atualiza a mensagem de status.
func (h *statusHandle) Update(message string) {
	if h.spinner != nil {
		h.spinner.UpdateText(message)
	}
}

// Stop pára o spinner de status.
func (h *statusHandle) Stop() {
	if h.spinner != nil {
		h.spinner.Stop()
	}
}

// progressHandle é uma implementação do ProgressHandle.
type progressHandle struct {
	bar *pterm.ProgressbarPrinter
}

// ProgressWithTotal cria uma barra de progresso com total etapas.
func (c *Console) ProgressWithTotal(title string, total int) types.ProgressHandle {
	bar, _ := pterm.DefaultProgressbar.
		WithTotal(total).
		WithTitle(title).
		WithShowElapsedTime(true).
		WithShowCount(true).
		WithRemoveWhenDone(false). // Manter a barra após concluir
		Start()
	return &progressHandle{bar: bar}
}

// Increment incrementa a barra de progresso.
func (h *progressHandle) Increment() {
	if h.bar != nil {
		h.bar.Increment()
	}
}

// Stop pára a barra de progresso.
func (h *progressHandle) Stop() {
	if h.bar != nil {
		h.bar.Stop()
	}
}

// Table é uma implementação do TableInterface.
type Table struct {
	columns []string
	rows    [][]string
}

// CreateTable cria uma nova tabela.
func (c *Console) CreateTable() types.TableInterface {
	return &Table{
		columns: []string{},
		rows:    [][]string{},
	}
}

// AddColumn adiciona uma coluna à tabela.
func (t *Table) AddColumn(name string, options ...interface{}) {
	t.columns = append(t.columns, name)
}

// AddRow adiciona uma linha à tabela.
func (t *Table) AddRow(cells ...interface{}) {
	// Convertemos cada célula para string
	processedCells := make([]string, len(cells))
	for i, cell := range cells {
		processedCells[i] = fmt.Sprint(cell)
	}
	t.rows = append(t.rows, processedCells)
}

// Render renderiza a tabela como uma string.
func (t *Table) Render() string {
	// Use o pterm para criar uma tabela visualmente agradável
	tableData := pterm.TableData{t.columns}
	for _, row := range t.rows {
		tableData = append(tableData, row)
	}

	table := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(tableData)

	renderedTable, _ := table.Srender()
	return renderedTable
}

// DisplayTrendBars exibe gráficos de barras com a variação mês a mês.
func (c *Console) DisplayTrendBars(title string, monthly []types.MonthlyAmount) {
	fmt.Println("\n" + RenderTrendBars(title, monthly))
}

// RenderTrendBars monta o painel de barras; retorna só o aviso quando todos os valores são zero.
func RenderTrendBars(title string, monthly []types.MonthlyAmount) string {
	// Encontra o valor máximo para escala
	maxAmount := 0.0
	for _, m := range monthly {
		if m.Amount > maxAmount {
			maxAmount = m.Amount
		}
	}

	if maxAmount == 0 {
		return pterm.Warning.Sprintln("All amounts are 0.00 kWh for this period")
	}

	tableData := pterm.TableData{
		{"Month", "kWh", "", "MoM Change"},
	}

	var prev *float64

	for _, m := range monthly {
		barLength := int((m.Amount / maxAmount) * 40)
		bar := strings.Repeat("█", barLength)

		barColor := pterm.FgBlue.Sprint(bar)
		change := ""

		if prev != nil {
			change, barColor = momChange(*prev, m.Amount, bar)
		}

		tableData = append(tableData, []string{
			m.Month,
			fmt.Sprintf("%.2f", m.Amount),
			barColor,
			change,
		})

		current := m.Amount
		prev = &current
	}

	table := pterm.DefaultTable.WithHasHeader().WithData(tableData)
	renderedTable, _ := table.Srender()

	return pterm.DefaultBox.WithTitle(title).WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).Sprint(renderedTable)
}

// momChange formata a variação percentual e colore a barra (alta em vermelho).
func momChange(prev, current float64, bar string) (string, string) {
	if prev < 0.01 {
		if current < 0.01 {
			return pterm.FgYellow.Sprint("0%"), pterm.FgYellow.Sprint(bar)
		}
		return pterm.FgRed.Sprint("N/A"), pterm.FgRed.Sprint(bar)
	}

	changePercent := ((current - prev) / prev) * 100.0

	switch {
	case math.Abs(changePercent) < 0.01:
		return pterm.FgYellow.Sprintf("0%%"), pterm.FgYellow.Sprint(bar)
	case changePercent > 999:
		return pterm.FgRed.Sprint(">+999%"), pterm.FgRed.Sprint(bar)
	case changePercent < -999:
		return pterm.FgGreen.Sprint(">-999%"), pterm.FgGreen.Sprint(bar)
	case changePercent > 0:
		return pterm.FgRed.Sprintf("+%.2f%%", changePercent), pterm.FgRed.Sprint(bar)
	default:
		return pterm.FgGreen.Sprintf("%.2f%%", changePercent), pterm.FgGreen.Sprint(bar)
	}
}
