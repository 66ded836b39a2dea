package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iudanet/patientdesk/internal/models"
)

type palette struct {
	Title  lipgloss.Style
	Header lipgloss.Style
	Cell   lipgloss.Style
	Muted  lipgloss.Style
	Error  lipgloss.Style
	Ok     lipgloss.Style
}

var styles = palette{
	Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
	Header: lipgloss.NewStyle().Bold(true).Padding(0, 1),
	Cell:   lipgloss.NewStyle().Padding(0, 1),
	Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	Ok:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
}

var statusColors = map[models.Status]lipgloss.Color{
	models.StatusInquiry:    lipgloss.Color("33"),
	models.StatusOnboarding: lipgloss.Color("214"),
	models.StatusActive:     lipgloss.Color("42"),
	models.StatusChurned:    lipgloss.Color("241"),
}

// statusBadge отрисовывает статус пациента, неизвестный статус выводится как есть
func statusBadge(status string) string {
	color, ok := statusColors[models.Status(status)]
	if !ok {
		return status
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render(status)
}

// table рендерит простую текстовую таблицу с выравниванием по ширине ячеек
type table struct {
	headers []string
	rows    [][]string
}

func newTable(headers ...string) *table {
	return &table{headers: headers}
}

func (t *table) addRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) render() string {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	// Width в lipgloss включает padding
	for i := range widths {
		widths[i] += 2
	}

	var sb strings.Builder
	sep := styles.Muted.Render("|")
	line := func(style lipgloss.Style, cells []string) {
		for i, cell := range cells {
			if i >= len(widths) {
				break
			}
			sb.WriteString(style.Width(widths[i]).Render(cell))
			if i < len(cells)-1 {
				sb.WriteString(sep)
			}
		}
		sb.WriteString("\n")
	}

	line(styles.Header, t.headers)
	total := len(widths) - 1
	for _, w := range widths {
		total += w
	}
	sb.WriteString(styles.Muted.Render(strings.Repeat("-", total)))
	sb.WriteString("\n")
	for _, row := range t.rows {
		line(styles.Cell, row)
	}
	return sb.String()
}
