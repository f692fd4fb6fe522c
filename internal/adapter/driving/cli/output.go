package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/ericfisherdev/semefopanel/internal/adapter/driven/semefo"
	"github.com/ericfisherdev/semefopanel/internal/application"
)

// ColorMode represents color output mode.
type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// ParseColorMode parses "auto", "always" or "never".
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "auto", "":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("invalid color mode %q: must be auto, always, or never", s)
	}
}

// resolveColors decides whether to colorize output written to out.
func resolveColors(mode ColorMode, out io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	f, ok := out.(*os.File)
	return ok && f == os.Stdout && !color.NoColor
}

// Printer writes command output and diagnostics.
type Printer struct {
	out       io.Writer
	err       io.Writer
	useColors bool
}

// NewPrinter creates a Printer writing results to out and notices to errOut.
func NewPrinter(out, errOut io.Writer, useColors bool) *Printer {
	return &Printer{out: out, err: errOut, useColors: useColors}
}

func (p *Printer) paint(attr color.Attribute, format string, args ...any) string {
	msg := fmt.Sprintf(format, args...)
	if !p.useColors {
		return msg
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(msg)
}

// Println writes a plain line to the output stream.
func (p *Printer) Println(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Success writes a green confirmation line.
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.out, p.paint(color.FgGreen, format, args...))
}

// Warn writes a yellow notice to the error stream.
func (p *Printer) Warn(format string, args ...any) {
	fmt.Fprintln(p.err, p.paint(color.FgYellow, format, args...))
}

// Error writes a red message to the error stream.
func (p *Printer) Error(format string, args ...any) {
	fmt.Fprintln(p.err, p.paint(color.FgRed, format, args...))
}

// Status colors a job or session state.
func (p *Printer) Status(s string) string {
	switch s {
	case "completado", "finalizada", "ok", "activo":
		return p.paint(color.FgGreen, "%s", s)
	case "error", "inactivo", "desconocido":
		return p.paint(color.FgRed, "%s", s)
	case "pendiente", "procesando", "en_progreso":
		return p.paint(color.FgYellow, "%s", s)
	default:
		return s
	}
}

// Table renders rows under headers with borderless styling.
func (p *Printer) Table(headers []string, rows [][]string) {
	table := tablewriter.NewTable(p.out,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)
	table.Header(headers)
	_ = table.Bulk(rows)
	_ = table.Render()
}

// ReportError writes err the way a user should read it.
func (p *Printer) ReportError(err error) {
	var verr *application.ValidationError
	if errors.As(err, &verr) {
		p.Error("Datos inválidos:")
		fields := make([]string, 0, len(verr.Fields))
		for f := range verr.Fields {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			p.Error("  %s: %s", f, verr.Fields[f])
		}
		return
	}

	var apiErr *semefo.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Detail != "" {
			p.Error("Error %d: %s", apiErr.StatusCode, apiErr.Detail)
			return
		}
		p.Error("Error %d en %s %s", apiErr.StatusCode, apiErr.Method, apiErr.Path)
		return
	}

	p.Error("Error: %v", err)
}
