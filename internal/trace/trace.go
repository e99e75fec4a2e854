// Package trace renders abstract values and arenas for humans. Nothing in
// it affects analysis results.
package trace

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/gnoswap-labs/lamp/internal/product"
	"github.com/gnoswap-labs/lamp/internal/relational"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
)

const columnGap = 2

// Printer writes arena dumps, colored when the destination is a terminal.
type Printer struct {
	w io.Writer

	handleStyle *color.Color
	tagStyle    *color.Color
	domainStyle *color.Color
	valueStyle  *color.Color
	argStyle    *color.Color
}

// NewPrinter creates a Printer for w. Colors are enabled only when w is a
// terminal.
func NewPrinter(w io.Writer) *Printer {
	p := &Printer{
		w:           w,
		handleStyle: color.New(color.FgHiBlue, color.Bold),
		tagStyle:    color.New(color.FgYellow, color.Bold),
		domainStyle: color.New(color.FgCyan),
		valueStyle:  color.New(color.FgWhite),
		argStyle:    color.New(color.FgHiBlack),
	}
	p.SetColor(isTerminal(w))
	return p
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SetColor forces colors on or off.
func (p *Printer) SetColor(on bool) {
	for _, c := range []*color.Color{p.handleStyle, p.tagStyle, p.domainStyle, p.valueStyle, p.argStyle} {
		if on {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
}

// Value returns the one-line form of v: producing operator, domain and
// payload.
func Value(v product.Value) string {
	return fmt.Sprintf("%s %s %s", v.Tag, v.Primary.Domain(), v.Primary.Payload())
}

type row struct {
	handle, tag, domain, value, args string
}

// Dump writes one aligned row per node of a.
func (p *Printer) Dump(a *relational.Arena) error {
	rows := make([]row, a.Len())
	var widths [4]int
	for i := range rows {
		h := relational.Handle(i)
		v := a.Value(h)
		r := row{
			handle: h.String(),
			tag:    v.Tag.String(),
			domain: v.Primary.Domain().String(),
			value:  v.Primary.Payload(),
			args:   formatArgs(a.Args(h)),
		}
		for j, cell := range []string{r.handle, r.tag, r.domain, r.value} {
			if w := runewidth.StringWidth(cell); w > widths[j] {
				widths[j] = w
			}
		}
		rows[i] = r
	}

	for _, r := range rows {
		line := p.handleStyle.Sprint(pad(r.handle, widths[0])) +
			p.tagStyle.Sprint(pad(r.tag, widths[1])) +
			p.domainStyle.Sprint(pad(r.domain, widths[2]))
		if r.args == "" {
			line += p.valueStyle.Sprint(r.value)
		} else {
			line += p.valueStyle.Sprint(pad(r.value, widths[3])) + p.argStyle.Sprint(r.args)
		}
		if _, err := fmt.Fprintln(p.w, line); err != nil {
			return err
		}
	}
	return nil
}

// Dump writes a to w, colored when w is a terminal.
func Dump(w io.Writer, a *relational.Arena) error {
	return NewPrinter(w).Dump(a)
}

func pad(s string, width int) string {
	return runewidth.FillRight(s, width+columnGap)
}

func formatArgs(args [2]relational.Handle) string {
	var parts []string
	for _, h := range args {
		if h != relational.None {
			parts = append(parts, h.String())
		}
	}
	return strings.Join(parts, " ")
}
