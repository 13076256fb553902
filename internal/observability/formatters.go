// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonathan/elemental-vibe/internal/elements"
	"github.com/jonathan/elemental-vibe/internal/narrative"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// barWidth is the width of a full 100-point score bar
	barWidth = 25
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, boxWidth-4), boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to width runes, ending in "..."
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

// pad right-pads s with spaces to width runes
func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// wrap breaks text into lines of at most width runes on word boundaries,
// prefixing every line with indent.
func wrap(text string, width int, indent string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return indent
	}
	var (
		lines []string
		line  = indent + words[0]
	)
	for _, w := range words[1:] {
		if utf8.RuneCountInString(line)+1+utf8.RuneCountInString(w) > width {
			lines = append(lines, line)
			line = indent + w
			continue
		}
		line += " " + w
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}

// bar renders a score as a horizontal bar out of 100
func bar(score int) string {
	n := score * barWidth / 100
	n = max(0, min(n, barWidth))
	return strings.Repeat("█", n) + strings.Repeat("░", barWidth-n)
}

// PrintReading outputs the scores, archetype and season of a reading.
func (p *Printer) PrintReading(r elements.Reading, assets elements.AssetPair) {
	var sb strings.Builder

	if r.Name != "" {
		sb.WriteString(fmt.Sprintf("Name:      %s\n", r.Name))
	}
	sb.WriteString(fmt.Sprintf("Born:      %02d/%02d/%04d (%s)\n", r.Date.Month, r.Date.Day, r.Date.Year, r.Season))
	sb.WriteString(fmt.Sprintf("Archetype: %s\n", r.Archetype.Name))
	sb.WriteString(fmt.Sprintf("Dominant:  %s + %s\n", r.Archetype.Primary, r.Archetype.Secondary))
	sb.WriteString("\n")

	for _, a := range elements.Axes() {
		score := r.Profile.Score(a)
		marker := " "
		if a == r.Archetype.Primary || a == r.Archetype.Secondary {
			marker = "*"
		}
		sb.WriteString(fmt.Sprintf("%s %-6s %s %3d\n", marker, strings.ToUpper(string(a)), bar(score), score))
	}

	if assets.Front != "" {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("Front:     %s\n", assets.Front))
		sb.WriteString(fmt.Sprintf("Side:      %s\n", assets.Side))
	}

	p.printBox("ELEMENTAL READING", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintNarrative outputs a successful narrative outcome.
func (p *Printer) PrintNarrative(outcome *narrative.Outcome) {
	if outcome == nil {
		return
	}

	width := boxWidth - 4
	var sections [][2]string
	switch {
	case outcome.Full != nil:
		n := outcome.Full
		sections = [][2]string{
			{"", n.Opening},
			{"Born", n.BirthImagery},
			{"Soul city", n.SoulCity},
			{"Kindred", n.ComplementarySouls},
			{"Color", n.Talismans.Color},
			{"Talisman", n.Talismans.Item},
			{"Mantra", n.Talismans.Mantra},
			{"P.S.", n.PS},
		}
	case outcome.Minimal != nil:
		n := outcome.Minimal
		sections = [][2]string{
			{"", n.Description},
			{"Vibe", n.Vibe},
		}
	default:
		return
	}

	var sb strings.Builder
	for i, s := range sections {
		if s[0] != "" {
			sb.WriteString(s[0] + ":\n")
			sb.WriteString(wrap(s[1], width, "  "))
		} else {
			sb.WriteString(wrap(s[1], width, ""))
		}
		sb.WriteString("\n")
		if i < len(sections)-1 {
			sb.WriteString("\n")
		}
	}
	sb.WriteString(fmt.Sprintf("\n%s in %d attempt(s), %s", outcome.Color(), outcome.Attempts, outcome.Elapsed.Round(time.Millisecond)))

	p.printBox("NARRATIVE", sb.String())
}

// PrintFailure outputs the fixed apology shown when no narrative arrives.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintFailure() {
	fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
	fmt.Fprintf(p.out, "│ %s │\n", pad("☁ "+narrative.ApologyMessage, boxWidth-4))
	fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
}

// PrintDistribution outputs archetype and primary-axis shares of a simulation.
func (p *Printer) PrintDistribution(d elements.Distribution) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Iterations: %d\n\n", d.Iterations))

	sb.WriteString("Archetypes:\n")
	for _, s := range d.ArchetypeShares() {
		sb.WriteString(fmt.Sprintf("  %-20s %7d  %5.1f%%\n", s.Name, s.Count, s.Percent))
	}
	sb.WriteString("\nPrimary element:\n")
	for _, s := range d.PrimaryShares() {
		sb.WriteString(fmt.Sprintf("  %-20s %7d  %5.1f%%\n", s.Name, s.Count, s.Percent))
	}

	p.printBox("ARCHETYPE DISTRIBUTION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMetrics outputs counters and histogram summaries gathered from g.
func (p *Printer) PrintMetrics(g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	if len(families) == 0 {
		return nil
	}

	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			name := mf.GetName() + labelSuffix(m.GetLabel())
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				lines = append(lines, fmt.Sprintf("%s %g", name, m.GetCounter().GetValue()))
			case dto.MetricType_GAUGE:
				lines = append(lines, fmt.Sprintf("%s %g", name, m.GetGauge().GetValue()))
			case dto.MetricType_HISTOGRAM:
				h := m.GetHistogram()
				lines = append(lines, fmt.Sprintf("%s count=%d sum=%.3f", name, h.GetSampleCount(), h.GetSampleSum()))
			}
		}
	}
	sort.Strings(lines)

	p.printBox("METRICS", strings.Join(lines, "\n"))
	return nil
}

func labelSuffix(labels []*dto.LabelPair) string {
	if len(labels) == 0 {
		return ""
	}
	parts := make([]string, 0, len(labels))
	for _, l := range labels {
		parts = append(parts, fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
	}
	return "{" + strings.Join(parts, ",") + "}"
}
