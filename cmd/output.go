package main

import (
	"fmt"
	"strings"

	"github.com/bmordue/voting-rings/game"
	"github.com/bmordue/voting-rings/montecarlo"
	"github.com/bmordue/voting-rings/report"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const histogramWidth = 40

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

func renderSummary(s montecarlo.Summary, end game.EndCondition) string {
	t := newTable("rounds", "value")
	t.Row("games", fmt.Sprint(s.Games))
	t.Row("mean", fmt.Sprintf("%.3f", s.Rounds.Mean))
	t.Row("median", fmt.Sprintf("%.1f", s.Rounds.Median))
	t.Row("mode", fmt.Sprint(s.Rounds.Mode))
	t.Row("min", fmt.Sprint(s.Rounds.Min))
	t.Row("max", fmt.Sprint(s.Rounds.Max))
	t.Row("std dev", fmt.Sprintf("%.3f", s.Rounds.StdDev))

	o := newTable("outcome", "games", "rate")
	for _, outcome := range end.Outcomes() {
		o.Row(string(outcome), fmt.Sprint(s.Outcomes[outcome]), fmt.Sprintf("%.1f%%", s.Rate(outcome)*100))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, t.String(), " ", o.String())
}

func renderHistogram(buckets []report.HistogramBucket, games int) string {
	t := newTable("rounds", "games", "")
	for _, b := range buckets {
		bar := 0
		if games > 0 {
			bar = b.Games * histogramWidth / games
		}
		t.Row(fmt.Sprint(b.Rounds), fmt.Sprint(b.Games), strings.Repeat("█", bar))
	}
	return t.String()
}

func renderOutcomeCounts(counts []report.OutcomeCount, games int) string {
	t := newTable("outcome", "games", "rate")
	for _, c := range counts {
		rate := 0.0
		if games > 0 {
			rate = float64(c.Games) / float64(games) * 100
		}
		t.Row(c.Outcome, fmt.Sprint(c.Games), fmt.Sprintf("%.1f%%", rate))
	}
	return t.String()
}

func renderSweep(rows []sweepRow) string {
	t := newTable("loyalists", "traitors", "strategy", "end condition", "mean rounds", "median", "outcomes", "vs baseline")
	for _, r := range rows {
		var rates, deltas []string
		deltas = append(deltas, fmt.Sprintf("rounds %+.2f", r.summary.Rounds.Mean-r.baseline.Rounds.Mean))
		for _, outcome := range r.config.EndCondition.Outcomes() {
			rate := r.summary.Rate(outcome) * 100
			rates = append(rates, fmt.Sprintf("%s %.1f%%", outcome, rate))
			deltas = append(deltas, fmt.Sprintf("%s %+.1fpp", outcome, rate-r.baseline.Rate(outcome)*100))
		}
		t.Row(
			fmt.Sprint(r.config.Loyalists),
			fmt.Sprint(r.config.Traitors),
			string(r.config.Strategy),
			string(r.config.EndCondition),
			fmt.Sprintf("%.2f", r.summary.Rounds.Mean),
			fmt.Sprintf("%.1f", r.summary.Rounds.Median),
			strings.Join(rates, ", "),
			strings.Join(deltas, ", "),
		)
	}
	return t.String()
}
