package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/focusflow/internal/store"
)

type statsModel struct {
	store  store.Store
	width  int
	height int

	today  store.TodayStats
	streak int
	series store.ChartSeries

	chart barchart.Model
}

func newStatsModel(s store.Store) statsModel {
	return statsModel{
		store: s,
		chart: barchart.New(60, 12),
	}
}

func (s *statsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s statsModel) refresh() tea.Cmd {
	st := s.store
	return func() tea.Msg {
		today, _ := st.TodayStats()
		streak, _ := st.CurrentStreak()
		series, _ := st.ChartSeries()
		return statsDataMsg{today: today, streak: streak, series: series}
	}
}

func (s statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statsDataMsg:
		s.today = msg.today
		s.streak = msg.streak
		s.series = msg.series
		s.buildChart()
		return s, nil
	}
	return s, nil
}

// buildChart renders the trailing week of focus scores, one bar per day.
func (s *statsModel) buildChart() {
	chartWidth := s.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if s.height > 28 {
		chartHeight = 14
	}

	s.chart = barchart.New(chartWidth, chartHeight, barchart.WithMaxValue(100))

	var bars []barchart.BarData
	for i, date := range s.series.Dates {
		score := s.series.FocusScores[i]
		style := successStyle
		switch {
		case score == 0 && s.series.OnTrack[i]+s.series.Distracted[i]+s.series.Idle[i] == 0:
			style = lipgloss.NewStyle().Foreground(colorSubtle)
		case score < 40:
			style = errorStyle
		case score < 70:
			style = warningStyle
		}

		bars = append(bars, barchart.BarData{
			Label: date,
			Values: []barchart.BarValue{
				{Name: "focus", Value: score, Style: style},
			},
		})
	}

	s.chart.PushAll(bars)
	s.chart.Draw()
}

func (s statsModel) view() string {
	w := s.width - 4

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Focus Stats"), "  ",
		mutedStyle.Render("trailing 7 days"),
	)

	todayPanel := s.renderToday()
	chartView := s.chart.View()
	weekTable := s.renderWeekTable(w)

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", todayPanel, "", chartView, "", weekTable,
		),
	)
}

func (s statsModel) renderToday() string {
	if s.today.TotalChecks == 0 {
		return mutedStyle.Render("  No checks recorded today yet.")
	}

	score := successStyle
	switch {
	case s.today.FocusScore < 40:
		score = errorStyle
	case s.today.FocusScore < 70:
		score = warningStyle
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("  ⭐ Focus score: %s   🔥 Streak: %s   Max streak: %d",
			score.Bold(true).Render(fmt.Sprintf("%.1f/100", s.today.FocusScore)),
			highlightStyle.Bold(true).Render(fmt.Sprintf("%d", s.streak)),
			s.today.MaxStreak,
		),
		mutedStyle.Render(fmt.Sprintf("  %d checks: ✅ %d on track, ⚠️ %d distracted, 💤 %d idle",
			s.today.TotalChecks, s.today.OnTrack, s.today.Distracted, s.today.Idle)),
	)
}

func (s statsModel) renderWeekTable(w int) string {
	if len(s.series.Dates) == 0 {
		return mutedStyle.Render("  No data for this period")
	}

	var rows []string
	headerRow := mutedStyle.Render(fmt.Sprintf("  %-8s %8s %9s %12s %6s", "Date", "Score", "On Track", "Distracted", "Idle"))
	rows = append(rows, headerRow)
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 48))))

	for i, date := range s.series.Dates {
		rows = append(rows, fmt.Sprintf("  %-8s %7.1f%% %9d %12d %6d",
			date, s.series.FocusScores[i], s.series.OnTrack[i], s.series.Distracted[i], s.series.Idle[i],
		))
	}

	return strings.Join(rows, "\n")
}
