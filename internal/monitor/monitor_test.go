package monitor

import (
	"reflect"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/luki/plantmon/internal/plant"
)

var testNow = time.Date(2026, 2, 21, 14, 30, 0, 0, time.Local)

func newTestModel(moisture int) Model {
	r := plant.Reading{Moisture: moisture, Temperature: 22, Light: 450, WaterLevel: 30, LastWatered: "earlier"}
	return New(Options{
		Title:   "Inventify Team Project",
		Initial: &r,
		Now:     func() time.Time { return testNow },
	})
}

func press(t *testing.T, m Model, key tea.KeyMsg) Model {
	t.Helper()
	next, _ := m.Update(key)
	return next.(Model)
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func render(t *testing.T, m Model, width, height int) string {
	t.Helper()
	next, _ := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return ansi.Strip(next.(Model).View())
}

func TestDefaults(t *testing.T) {
	m := New(Options{Now: func() time.Time { return testNow }})
	r := m.Reading()
	if r.Moisture != 45 || r.Temperature != 22 || r.Light != 450 || r.WaterLevel != 30 {
		t.Errorf("default reading: got %+v", r)
	}
	if r.LastWatered != "2/21/2026, 2:30:00 PM" {
		t.Errorf("default LastWatered: got %q", r.LastWatered)
	}
	if m.History().Len() != 4 {
		t.Errorf("history: got %d points, want 4", m.History().Len())
	}
}

func TestWaterKeys(t *testing.T) {
	keys := []tea.KeyMsg{
		runeKey("w"),
		{Type: tea.KeyEnter},
		{Type: tea.KeySpace, Runes: []rune{' '}},
	}
	for _, k := range keys {
		m := press(t, newTestModel(45), k)
		if got := m.Reading().Moisture; got != 65 {
			t.Errorf("key %q: moisture %d, want 65", k.String(), got)
		}
		if got := m.Reading().LastWatered; got != "2/21/2026, 2:30:00 PM" {
			t.Errorf("key %q: LastWatered %q", k.String(), got)
		}
	}
}

func TestWaterScenarios(t *testing.T) {
	tests := []struct {
		start      int
		want       int
		bannerPre  bool
		bannerPost bool
	}{
		{45, 65, false, false},
		{85, 100, false, false},
		{25, 45, true, false},
	}
	for _, tt := range tests {
		m := newTestModel(tt.start)
		if m.BannerVisible() != tt.bannerPre {
			t.Errorf("start %d: banner %v, want %v", tt.start, m.BannerVisible(), tt.bannerPre)
		}
		m = press(t, m, runeKey("w"))
		if m.Reading().Moisture != tt.want {
			t.Errorf("start %d: moisture %d, want %d", tt.start, m.Reading().Moisture, tt.want)
		}
		if m.BannerVisible() != tt.bannerPost {
			t.Errorf("start %d: banner after watering %v, want %v", tt.start, m.BannerVisible(), tt.bannerPost)
		}
	}
}

func TestWaterKeepsOtherFields(t *testing.T) {
	m := newTestModel(50)
	before := m.Reading()
	m = m.WaterPlant().WaterPlant().WaterPlant()
	after := m.Reading()

	if after.Moisture != 100 {
		t.Errorf("moisture: got %d, want 100", after.Moisture)
	}
	if after.Temperature != before.Temperature || after.Light != before.Light || after.WaterLevel != before.WaterLevel {
		t.Errorf("watering changed other fields: before %+v, after %+v", before, after)
	}
}

func TestWaterLeavesPreviousModel(t *testing.T) {
	m := newTestModel(45)
	_ = m.WaterPlant()
	if m.Reading().Moisture != 45 {
		t.Errorf("previous model changed: moisture %d", m.Reading().Moisture)
	}
}

func TestHistoryNeverChanges(t *testing.T) {
	m := newTestModel(30)
	want := m.History().Points()

	for _, k := range []tea.KeyMsg{runeKey("w"), runeKey("j"), runeKey("k"), {Type: tea.KeyEnter}} {
		m = press(t, m, k)
		_ = render(t, m, 120, 60)
	}

	if got := m.History().Points(); !reflect.DeepEqual(got, want) {
		t.Errorf("history changed: got %+v, want %+v", got, want)
	}
	if !reflect.DeepEqual(want, plant.DefaultHistory()) {
		t.Errorf("history differs from defaults: %+v", want)
	}
}

func TestQuit(t *testing.T) {
	for _, k := range []tea.KeyMsg{runeKey("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := newTestModel(45).Update(k)
		if cmd == nil {
			t.Fatalf("key %q: expected quit command", k.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("key %q: expected tea.QuitMsg", k.String())
		}
	}
}

func TestViewBeforeResize(t *testing.T) {
	if got := newTestModel(45).View(); !strings.Contains(got, "Initializing") {
		t.Errorf("got %q", got)
	}
}

func TestViewContent(t *testing.T) {
	out := render(t, newTestModel(45), 120, 80)
	for _, want := range []string{
		"INVENTIFY TEAM PROJECT",
		"Connected",
		"Moisture", "45%",
		"Temperature", "22°C",
		"Light", "450 lux",
		"Water Level", "30%",
		"Last Watered: earlier",
		"Water Plant",
		"Sensor History",
		"9am", "12pm",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(out, lowBanner) {
		t.Error("banner should be hidden at 45% moisture")
	}
}

func TestViewBanner(t *testing.T) {
	m := newTestModel(25)
	if out := render(t, m, 120, 80); !strings.Contains(out, lowBanner) {
		t.Error("banner should show at 25% moisture")
	}
	m = press(t, m, runeKey("w"))
	if out := render(t, m, 120, 80); strings.Contains(out, lowBanner) {
		t.Error("banner should hide after watering to 45%")
	}
}

func TestViewTileColumns(t *testing.T) {
	wide := render(t, newTestModel(45), 120, 80)
	narrow := render(t, newTestModel(45), 60, 80)

	tileLine := func(out string) string {
		for _, l := range strings.Split(out, "\n") {
			if strings.Contains(l, "Moisture") {
				return l
			}
		}
		return ""
	}
	if l := tileLine(wide); !strings.Contains(l, "Water Level") {
		t.Errorf("wide layout should put all tiles on one row: %q", l)
	}
	if l := tileLine(narrow); strings.Contains(l, "Light") {
		t.Errorf("narrow layout should use two columns: %q", l)
	}
}

func TestViewScroll(t *testing.T) {
	m := newTestModel(45)
	full := render(t, m, 120, 200)
	top := render(t, m, 120, 10)
	if lines := strings.Split(top, "\n"); len(lines) != 10 {
		t.Fatalf("expected 10 visible lines, got %d", len(lines))
	}

	for i := 0; i < 500; i++ {
		m = press(t, m, runeKey("j"))
	}
	bottom := render(t, m, 120, 10)
	fullLines := strings.Split(full, "\n")
	if !strings.HasSuffix(bottom, fullLines[len(fullLines)-1]) {
		t.Error("scrolling past the end should show the last line")
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyHome})
	if got := render(t, m, 120, 10); got != top {
		t.Error("home should return to the top")
	}
}

func TestStatusColor(t *testing.T) {
	tests := []struct {
		s    plant.Status
		want string
	}{
		{plant.StatusNormal, string(colorNormal)},
		{plant.StatusAlert, string(colorAlert)},
		{plant.StatusWarning, string(colorWarning)},
		{plant.StatusInfo, string(colorInfo)},
	}
	for _, tt := range tests {
		if got := string(StatusColor(tt.s)); got != tt.want {
			t.Errorf("StatusColor(%v) = %s, want %s", tt.s, got, tt.want)
		}
	}
}

func TestWaterLogsTransition(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := plant.Reading{Moisture: 85}
	m := New(Options{Initial: &r, Now: func() time.Time { return testNow }, Logger: zap.New(core)})

	m.WaterPlant()

	entries := logs.FilterMessage("plant watered").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["moisture_before"] != int64(85) || fields["moisture_after"] != int64(100) {
		t.Errorf("unexpected fields: %v", fields)
	}
}

func TestString(t *testing.T) {
	got := newTestModel(45).String()
	if !strings.Contains(got, "moisture=45%") || !strings.Contains(got, `watered="earlier"`) {
		t.Errorf("String: got %q", got)
	}
}
