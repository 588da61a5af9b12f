// Package monitor implements the plant monitoring dashboard TUI using
// BubbleTea: metric tiles, a watering action and the sensor history chart.
package monitor

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/luki/plantmon/internal/chart"
	"github.com/luki/plantmon/internal/history"
	"github.com/luki/plantmon/internal/plant"
)

const (
	defaultTitle  = "Plant Monitor"
	defaultLayout = "1/2/2006, 3:04:05 PM"
	wideLayout    = 100 // min content width for a single row of tiles
	chartHeight   = 16
	lowBanner     = "Low Moisture - Plant Needs Attention"
)

// ── Model ────────────────────────────────────────────────────────────

// Options configures a new Model. Zero values pick defaults.
type Options struct {
	Title           string
	TimestampLayout string
	Initial         *plant.Reading // nil starts from plant.DefaultReading
	Now             func() time.Time
	Logger          *zap.Logger
}

// Model is the BubbleTea model for the plant dashboard. The reading is
// replaced wholesale on every change and the history is never modified.
type Model struct {
	reading plant.Reading
	history *history.Store
	title   string
	layout  string
	now     func() time.Time
	log     *zap.Logger
	width   int
	height  int
	scroll  int
}

// New creates the initial dashboard model.
func New(opts Options) Model {
	m := Model{
		history: history.NewStore(plant.DefaultHistory()),
		title:   opts.Title,
		layout:  opts.TimestampLayout,
		now:     opts.Now,
		log:     opts.Logger,
	}
	if m.title == "" {
		m.title = defaultTitle
	}
	if m.layout == "" {
		m.layout = defaultLayout
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.log == nil {
		m.log = zap.NewNop()
	}

	if opts.Initial != nil {
		m.reading = *opts.Initial
	} else {
		m.reading = plant.DefaultReading(m.now(), m.layout)
	}
	return m
}

// Reading returns the current reading.
func (m Model) Reading() plant.Reading { return m.reading }

// History returns the chart history.
func (m Model) History() *history.Store { return m.history }

// BannerVisible reports whether the low-moisture banner is shown.
func (m Model) BannerVisible() bool { return plant.LowMoisture(m.reading) }

// WaterPlant raises moisture and stamps the watering time.
func (m Model) WaterPlant() Model {
	prev := m.reading
	m.reading = plant.Water(prev, m.now(), m.layout)
	m.log.Info("plant watered",
		zap.Int("moisture_before", prev.Moisture),
		zap.Int("moisture_after", m.reading.Moisture),
		zap.String("last_watered", m.reading.LastWatered),
	)
	return m
}

// ── Init / Update ────────────────────────────────────────────────────

func (m Model) Init() tea.Cmd {
	m.log.Debug("monitor started",
		zap.Int("moisture", m.reading.Moisture),
		zap.Int("history_points", m.history.Len()),
	)
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "w", "enter", " ":
			m = m.WaterPlant()
		case "up", "k":
			if m.scroll > 0 {
				m.scroll--
			}
		case "down", "j":
			m.scroll++
		case "home":
			m.scroll = 0
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// ── Color palette ────────────────────────────────────────────────────

var (
	colorTitleBg  = lipgloss.Color("22")
	colorTitleFg  = lipgloss.Color("255")
	colorBorder   = lipgloss.Color("34")
	colorLabel    = lipgloss.Color("245")
	colorDim      = lipgloss.Color("240")
	colorActionBg = lipgloss.Color("236")
	colorButtonBg = lipgloss.Color("35")
	colorButtonFg = lipgloss.Color("231")
	colorHeading  = lipgloss.Color("252")
	colorFooterBg = lipgloss.Color("235")
	colorNormal   = lipgloss.Color("40")
	colorAlert    = lipgloss.Color("196")
	colorWarning  = lipgloss.Color("220")
	colorInfo     = lipgloss.Color("33")
)

// StatusColor maps a metric status to its display color.
func StatusColor(s plant.Status) lipgloss.Color {
	switch s {
	case plant.StatusAlert:
		return colorAlert
	case plant.StatusWarning:
		return colorWarning
	case plant.StatusInfo:
		return colorInfo
	default:
		return colorNormal
	}
}

// ── View ─────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.width == 0 {
		return "  Initializing..."
	}

	contentWidth := m.width - 2
	if contentWidth < 40 {
		contentWidth = 40
	}

	sections := []string{
		m.renderTitleBar(contentWidth),
		m.renderTiles(contentWidth),
		m.renderActionBar(contentWidth),
		m.renderHistory(contentWidth),
		m.renderFooter(contentWidth),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	lines := strings.Split(content, "\n")
	visibleLines := m.height
	if visibleLines < 5 {
		visibleLines = 5
	}
	maxScroll := len(lines) - visibleLines
	if maxScroll < 0 {
		maxScroll = 0
	}
	start := min(m.scroll, maxScroll)
	end := start + visibleLines
	if end > len(lines) {
		end = len(lines)
	}

	return strings.Join(lines[start:end], "\n")
}

func (m Model) renderTitleBar(width int) string {
	logo := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorTitleFg).
		Render(strings.ToUpper(m.title))

	status := lipgloss.NewStyle().Foreground(colorNormal).Render("ϟ") +
		lipgloss.NewStyle().Foreground(colorTitleFg).Render(" Connected")

	gap := width - lipgloss.Width(logo) - lipgloss.Width(status) - 4
	if gap < 1 {
		gap = 1
	}
	filler := strings.Repeat(" ", gap)

	return lipgloss.NewStyle().
		Background(colorTitleBg).
		Width(width).
		Padding(0, 1).
		Render(logo + filler + status)
}

func (m Model) renderTiles(width int) string {
	cols := 2
	if width >= wideLayout {
		cols = 4
	}
	// one space between tiles; border takes two columns per tile
	tileW := (width-(cols-1))/cols - 2
	innerW := tileW - 2

	var boxes []string
	for _, t := range plant.Tiles(m.reading) {
		color := StatusColor(t.Status)

		glyph := lipgloss.NewStyle().Foreground(color).Bold(true).Render(t.Glyph)
		label := lipgloss.NewStyle().Foreground(colorLabel).Render(t.Label)
		value := lipgloss.NewStyle().Foreground(color).Bold(true).Render(t.Value)

		top := glyph + pad(innerW-lipgloss.Width(glyph)-lipgloss.Width(label)) + label
		bottom := pad(innerW-lipgloss.Width(value)) + value

		boxes = append(boxes, lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1).
			Width(tileW).
			Render(top+"\n"+bottom))
	}

	var rows []string
	for i := 0; i < len(boxes); i += cols {
		end := min(i+cols, len(boxes))
		var row []string
		for j, b := range boxes[i:end] {
			if j > 0 {
				row = append(row, " ")
			}
			row = append(row, b)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderActionBar(width int) string {
	left := lipgloss.NewStyle().Foreground(colorLabel).
		Render("Last Watered: " + m.reading.LastWatered)
	if m.BannerVisible() {
		banner := lipgloss.NewStyle().Foreground(colorAlert).Bold(true).
			Render("▲ " + lowBanner)
		left += "\n" + banner
	}

	button := lipgloss.NewStyle().
		Background(colorButtonBg).
		Foreground(colorButtonFg).
		Bold(true).
		Padding(0, 2).
		Render("◍ Water Plant")
	hint := lipgloss.NewStyle().Foreground(colorDim).Render(" (w)")
	right := button + hint

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Center, left, pad(gap), right)

	return lipgloss.NewStyle().
		Background(colorActionBg).
		Width(width).
		Padding(1, 1).
		Render(bar)
}

func (m Model) renderHistory(width int) string {
	innerWidth := width - 4
	if innerWidth < 30 {
		innerWidth = 30
	}

	heading := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorHeading).
		Render("Sensor History")

	series := m.history.All()
	plot := chart.RenderLineChart(m.history.Labels(), series, innerWidth, chartHeight)
	legend := chart.RenderLegend(series)

	content := lipgloss.JoinVertical(lipgloss.Left, heading, "", plot, "", legend)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Width(width).
		Render(content)
}

func (m Model) renderFooter(width int) string {
	swatch := func(c lipgloss.Color) string {
		return lipgloss.NewStyle().Foreground(c).Render("██")
	}

	dimS := lipgloss.NewStyle().Foreground(colorDim)
	keyS := lipgloss.NewStyle().Foreground(colorHeading)

	legend := swatch(colorNormal) + dimS.Render(" ok ") +
		swatch(colorAlert) + dimS.Render(" alert ") +
		swatch(colorWarning) + dimS.Render(" warn ") +
		swatch(colorInfo) + dimS.Render(" dim")

	keys := dimS.Render("q") + keyS.Render(":quit") +
		dimS.Render("  w") + keyS.Render(":water") +
		dimS.Render("  j/k") + keyS.Render(":scroll")

	gap := width - lipgloss.Width(legend) - lipgloss.Width(keys) - 4
	if gap < 1 {
		gap = 1
	}

	return lipgloss.NewStyle().
		Background(colorFooterBg).
		Width(width).
		Padding(0, 1).
		Render(legend + pad(gap) + keys)
}

func pad(n int) string {
	if n < 1 {
		return " "
	}
	return strings.Repeat(" ", n)
}

// String summarizes the current reading for logs and debugging.
func (m Model) String() string {
	r := m.reading
	return fmt.Sprintf("moisture=%d%% temp=%d°C light=%dlux water=%d%% watered=%q",
		r.Moisture, r.Temperature, r.Light, r.WaterLevel, r.LastWatered)
}
