package main

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	keyframe "github.com/tphakala/go-keyframe-reducer"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, footer []string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(toRow(headers, columns))
	for _, row := range rows {
		tw.AppendRow(toRow(row, columns))
	}
	if len(footer) > 0 {
		tw.AppendFooter(toRow(footer, columns))
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignFooter: align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func toRow(cells []string, columns int) table.Row {
	r := make(table.Row, columns)
	for i := range columns {
		if i < len(cells) {
			r[i] = cells[i]
		} else {
			r[i] = ""
		}
	}
	return r
}

// reportTable renders one row per curve of clip plus a total row.
func reportTable(clip *keyframe.Clip) string {
	headers := []string{"Animation", "Curve", "Type", "Mode", "Channels", "Before", "After", "Ratio", "Max error", "RMS error"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight}

	var rows [][]string
	var all []keyframe.Stats
	channels := 0
	for _, a := range clip.Animations {
		for _, c := range a.Curves {
			stats := keyframe.Measure(c)
			s := keyframe.SummaryStats(stats)
			all = append(all, stats...)
			channels += c.NumElements()
			rows = append(rows, []string{
				a.Name,
				c.Name,
				c.Type().String(),
				c.Mode().String(),
				strconv.Itoa(c.NumElements()),
				strconv.Itoa(s.KeysBefore),
				strconv.Itoa(s.KeysAfter),
				formatRatio(s),
				formatError(s.MaxError),
				formatError(s.RMSError),
			})
		}
	}

	total := keyframe.SummaryStats(all)
	footer := []string{
		"Total", "", "", "",
		strconv.Itoa(channels),
		strconv.Itoa(total.KeysBefore),
		strconv.Itoa(total.KeysAfter),
		formatRatio(total),
		formatError(total.MaxError),
		formatError(total.RMSError),
	}
	return renderTable(headers, rows, footer, aligns)
}

// layoutTable lists the supported key layouts.
func layoutTable() string {
	headers := []string{"Layout", "Bytes", "Tangent mode", "Weights"}
	aligns := []columnAlignment{alignLeft, alignRight, alignLeft, alignLeft}

	var rows [][]string
	for _, l := range keyframe.Layouts() {
		rows = append(rows, []string{
			l.Name(),
			strconv.Itoa(l.Size()),
			yesNo(l.HasTangentMode()),
			yesNo(l.HasWeights()),
		})
	}
	return renderTable(headers, rows, nil, aligns)
}

func formatRatio(s keyframe.Stats) string {
	return fmt.Sprintf("%.1f%%", s.Ratio()*100)
}

func formatError(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', 4, 32)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
