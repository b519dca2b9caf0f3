package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func printJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := range columns {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func movieRows(movies []Movie) [][]string {
	rows := make([][]string, 0, len(movies))
	for _, m := range movies {
		rows = append(rows, []string{
			m.ID,
			m.PrimaryTitle,
			optInt(m.StartYear),
			optRating(m.AverageRating),
			optRuntime(m.RuntimeMinutes),
			strings.Join(m.Genres, ", "),
		})
	}
	return rows
}

func renderMovies(movies []Movie) string {
	return renderTable(
		[]string{"ID", "Title", "Year", "Rating", "Runtime", "Genres"},
		movieRows(movies),
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
	)
}

func printMovie(w io.Writer, m *Movie) {
	fmt.Fprintf(w, "%s (%s)\n", m.PrimaryTitle, optInt(m.StartYear))
	if m.OriginalTitle != "" && m.OriginalTitle != m.PrimaryTitle {
		fmt.Fprintf(w, "  Original: %s\n", m.OriginalTitle)
	}
	fmt.Fprintf(w, "  ID:       %s\n", m.ID)
	fmt.Fprintf(w, "  Rating:   %s\n", optRating(m.AverageRating))
	fmt.Fprintf(w, "  Runtime:  %s\n", optRuntime(m.RuntimeMinutes))
	if len(m.Genres) > 0 {
		fmt.Fprintf(w, "  Genres:   %s\n", strings.Join(m.Genres, ", "))
	}
}

func optInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func optRating(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 1, 64)
}

func optRuntime(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v) + "m"
}
