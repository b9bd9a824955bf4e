package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"lacquer/internal/convert"
)

type reportCounts struct {
	ok   int
	skip int
	fail int
}

// writeReport prints one entry per result plus a summary line. On a terminal
// the entries render as a table; otherwise as one plain line per file so the
// output stays scriptable.
func writeReport(out io.Writer, results []convert.Result) reportCounts {
	var counts reportCounts
	for _, result := range results {
		switch result.Class() {
		case convert.ClassSkip:
			counts.skip++
		case convert.ClassOK:
			counts.ok++
		case convert.ClassFail:
			counts.fail++
		}
	}

	if isTerminal(out) {
		writeTable(out, results)
	} else {
		writePlain(out, results)
	}

	fmt.Fprintf(out, "done: %d ok, %d skip, %d fail\n", counts.ok, counts.skip, counts.fail)
	return counts
}

func writePlain(out io.Writer, results []convert.Result) {
	for _, result := range results {
		dest := result.Dest
		if dest == "" {
			dest = "-"
		}
		line := fmt.Sprintf("[%s] %s -> %s", result.Class(), result.Source, dest)
		if result.Class() == convert.ClassFail {
			line += fmt.Sprintf(" (%s)", result.Message)
		}
		fmt.Fprintln(out, line)
	}
}

func writeTable(out io.Writer, results []convert.Result) {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"STATUS", "SOURCE", "OUTPUT", "DETAIL"})

	for _, result := range results {
		dest := result.Dest
		if dest == "" {
			dest = "-"
		}
		detail := ""
		if result.Class() == convert.ClassFail {
			detail = result.Message
		}
		tw.AppendRow(table.Row{string(result.Class()), result.Source, dest, detail})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
	})

	fmt.Fprintln(out, tw.Render())
}

func isTerminal(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
