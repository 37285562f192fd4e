package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/dkgw-corpus/dkgw/internal/estimate"
)

// WordCountView renders word counts per section against the corpus goal.
type WordCountView struct {
	stats *estimate.Stats

	// Styles
	headerStyle   lipgloss.Style
	sectionStyle  lipgloss.Style
	valueStyle    lipgloss.Style
	progressFull  lipgloss.Style
	progressEmpty lipgloss.Style
	warningStyle  lipgloss.Style
}

// NewWordCountView creates a view writing to w. Colors follow the
// capabilities of w and are dropped entirely when useColor is false.
func NewWordCountView(w io.Writer, stats *estimate.Stats, useColor bool) *WordCountView {
	r := lipgloss.NewRenderer(w)
	v := &WordCountView{
		stats:         stats,
		headerStyle:   r.NewStyle(),
		sectionStyle:  r.NewStyle(),
		valueStyle:    r.NewStyle(),
		progressFull:  r.NewStyle(),
		progressEmpty: r.NewStyle(),
		warningStyle:  r.NewStyle(),
	}
	if !useColor {
		return v
	}

	v.headerStyle = r.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("15"))
	v.sectionStyle = r.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true)
	v.valueStyle = r.NewStyle().
		Foreground(lipgloss.Color("252")).
		Bold(true)
	v.progressFull = r.NewStyle().
		Foreground(lipgloss.Color("34"))
	v.progressEmpty = r.NewStyle().
		Foreground(lipgloss.Color("240"))
	v.warningStyle = r.NewStyle().
		Foreground(lipgloss.Color("214"))
	return v
}

// View renders the per-section table and the corpus total.
func (v *WordCountView) View() string {
	var b strings.Builder

	b.WriteString(v.headerStyle.Render("#### Word count by section ####"))
	b.WriteString("\n")
	for _, section := range v.stats.Sections() {
		count, _ := v.stats.SectionCount(section)
		pct, _ := v.stats.PercentageOfGoal(section)
		b.WriteString(fmt.Sprintf("%s –– words: %s –– %% of goal: %.2f\n",
			v.sectionStyle.Render(section),
			v.valueStyle.Render(FormatNumber(count)),
			pct))
	}

	b.WriteString(v.headerStyle.Render("#### TOTAL ####"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Estimated word count: %s\n", v.valueStyle.Render(FormatNumber(v.stats.Total))))

	total := v.stats.TotalPercentageOfGoal()
	b.WriteString(fmt.Sprintf("That is: %.2f%% of the %s word goal\n", total, FormatNumber(v.stats.Goal)))
	b.WriteString(v.renderProgressBar(total, 30))
	b.WriteString("\n")

	return b.String()
}

// renderProgressBar renders a progress bar.
func (v *WordCountView) renderProgressBar(pct float64, width int) string {
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}

	filled := int(pct / 100 * float64(width))
	empty := width - filled

	fullStyle := v.progressFull
	if pct < 10 {
		fullStyle = v.warningStyle
	}

	bar := fullStyle.Render(strings.Repeat("█", filled)) +
		v.progressEmpty.Render(strings.Repeat("░", empty))

	return fmt.Sprintf("  [%s]", bar)
}

// FormatNumber formats n with spaces as thousands separators.
func FormatNumber(n int64) string {
	return strings.ReplaceAll(humanize.Comma(n), ",", " ")
}
