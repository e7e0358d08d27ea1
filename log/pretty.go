package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles used by the pretty handlers. Styles come from a
// renderer bound to the handler's writer, so colors are only emitted when
// that writer is a terminal.
type palette struct {
	key, str, num, yes, no, dur, when, null lipgloss.Style

	trace, debug, info, warn, fail lipgloss.Style
}

func newPalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return palette{
		key:  fg("8"),
		str:  fg("6"),
		num:  fg("3"),
		yes:  fg("2"),
		no:   fg("1"),
		dur:  fg("5"),
		when: fg("4"),
		null: fg("8"),

		trace: fg("8"),
		debug: fg("4"),
		info:  fg("2"),
		warn:  fg("3"),
		fail:  fg("1"),
	}
}

func (p palette) level(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return p.fail
	case l >= slog.LevelWarn:
		return p.warn
	case l >= slog.LevelInfo:
		return p.info
	case l >= slog.LevelDebug:
		return p.debug
	default:
		return p.trace
	}
}

// value renders a resolved slog value without quoting.
func (p palette) value(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return p.str.Render(v.String())

	case slog.KindInt64:
		return p.num.Render(strconv.FormatInt(v.Int64(), 10))

	case slog.KindUint64:
		return p.num.Render(strconv.FormatUint(v.Uint64(), 10))

	case slog.KindFloat64:
		return p.num.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64))

	case slog.KindBool:
		if v.Bool() {
			return p.yes.Render("true")
		}

		return p.no.Render("false")

	case slog.KindDuration:
		return p.dur.Render(v.Duration().String())

	case slog.KindTime:
		return p.when.Render(v.Time().Format(time.RFC3339))

	case slog.KindAny:
		if v.Any() == nil {
			return p.null.Render("null")
		}

		switch x := v.Any().(type) {
		case levelText:
			return p.level(x.level).Render(x.text)
		case slog.Level:
			return p.level(x).Render(x.String())
		}

		return p.str.Render(fmt.Sprint(v.Any()))

	default:
		return p.str.Render(v.String())
	}
}

// levelText carries the display text of a record's level along with the
// level itself, so the text can be colored by severity.
type levelText struct {
	level slog.Level
	text  string
}

// base is shared by both pretty handlers: it applies ReplaceAttr, tracks
// preformatted attributes and groups, and serializes writes.
type base struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	pal    palette
	attrs  []slog.Attr
	groups []string
}

func newBase(w io.Writer, opts *slog.HandlerOptions) base {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}

	return base{
		opts: *opts,
		mu:   &sync.Mutex{},
		w:    w,
		pal:  newPalette(w),
	}
}

func (b base) enabled(level slog.Level) bool {
	threshold := slog.LevelInfo
	if b.opts.Level != nil {
		threshold = b.opts.Level.Level()
	}

	return level >= threshold
}

func (b base) withAttrs(attrs []slog.Attr) base {
	prefixed := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		prefixed[i] = b.qualify(a)
	}

	b.attrs = append(b.attrs[:len(b.attrs):len(b.attrs)], prefixed...)

	return b
}

func (b base) withGroup(name string) base {
	if name != "" {
		b.groups = append(b.groups[:len(b.groups):len(b.groups)], name)
	}

	return b
}

// qualify prefixes the attribute key with the open groups.
func (b base) qualify(a slog.Attr) slog.Attr {
	for i := len(b.groups) - 1; i >= 0; i-- {
		a.Key = b.groups[i] + "." + a.Key
	}

	return a
}

// replace applies the configured ReplaceAttr to a built-in attribute.
// A zero Attr means the attribute is dropped.
func (b base) replace(a slog.Attr) slog.Attr {
	if b.opts.ReplaceAttr == nil {
		return a
	}

	return b.opts.ReplaceAttr(nil, a)
}

// record collects the attributes of r in output order.
func (b base) record(r slog.Record) []slog.Attr {
	out := make([]slog.Attr, 0, 4+len(b.attrs)+r.NumAttrs())

	if !r.Time.IsZero() {
		if a := b.replace(slog.Time(slog.TimeKey, r.Time)); a.Key != "" {
			out = append(out, a)
		}
	}

	if a := b.replace(slog.Any(slog.LevelKey, r.Level)); a.Key != "" {
		text := r.Level.String()
		if a.Value.Kind() == slog.KindString {
			text = a.Value.String()
		}

		out = append(out, slog.Any(a.Key, levelText{r.Level, text}))
	}

	if b.opts.AddSource && r.PC != 0 {
		if src := r.Source(); src != nil {
			out = append(out, slog.String(
				slog.SourceKey,
				fmt.Sprintf("%s:%d", src.File, src.Line),
			))
		}
	}

	out = append(out, slog.String(slog.MessageKey, r.Message))
	out = append(out, b.attrs...)

	r.Attrs(func(a slog.Attr) bool {
		out = append(out, b.qualify(a))

		return true
	})

	return out
}

func (b base) write(buf *bytes.Buffer) error {
	buf.WriteByte('\n')

	b.mu.Lock()
	defer b.mu.Unlock()

	_, err := b.w.Write(buf.Bytes())

	return err
}

// prettyTextHandler implements a colorized key=value handler.
type prettyTextHandler struct{ base }

func newPrettyTextHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyTextHandler {
	return &prettyTextHandler{newBase(w, opts)}
}

func (h *prettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.enabled(level)
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	for _, a := range h.record(r) {
		h.writeAttr(buf, a)
	}

	return h.write(buf)
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyTextHandler{h.withAttrs(attrs)}
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	return &prettyTextHandler{h.withGroup(name)}
}

func (h *prettyTextHandler) writeAttr(buf *bytes.Buffer, a slog.Attr) {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			if a.Key != "" {
				ga.Key = a.Key + "." + ga.Key
			}

			h.writeAttr(buf, ga)
		}

		return
	}

	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	buf.WriteString(h.pal.key.Render(a.Key))
	buf.WriteByte('=')
	buf.WriteString(h.pal.value(a.Value))
}

// prettyJSONHandler implements an indented, colorized JSON-like handler.
// Values are written unquoted for readability; use the plain JSON format
// when output must be machine readable.
type prettyJSONHandler struct{ base }

func newPrettyJSONHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyJSONHandler {
	return &prettyJSONHandler{newBase(w, opts)}
}

func (h *prettyJSONHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.enabled(level)
}

func (h *prettyJSONHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	buf.WriteString("{")
	h.writeFields(buf, h.record(r), 1)
	buf.WriteString("\n}")

	return h.write(buf)
}

func (h *prettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyJSONHandler{h.withAttrs(attrs)}
}

func (h *prettyJSONHandler) WithGroup(name string) slog.Handler {
	return &prettyJSONHandler{h.withGroup(name)}
}

func (h *prettyJSONHandler) writeFields(
	buf *bytes.Buffer,
	attrs []slog.Attr,
	depth int,
) {
	indent := bytes.Repeat([]byte("  "), depth)

	for i, a := range attrs {
		a.Value = a.Value.Resolve()

		if i > 0 {
			buf.WriteByte(',')
		}

		buf.WriteByte('\n')
		buf.Write(indent)
		buf.WriteString(h.pal.key.Render(a.Key))
		buf.WriteString(": ")

		if a.Value.Kind() == slog.KindGroup {
			buf.WriteString("{")
			h.writeFields(buf, a.Value.Group(), depth+1)
			buf.WriteByte('\n')
			buf.Write(indent)
			buf.WriteString("}")

			continue
		}

		buf.WriteString(h.pal.value(a.Value))
	}
}
