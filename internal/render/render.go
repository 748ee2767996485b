package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	json "github.com/goccy/go-json"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/raysh454/httpr/internal/logging"
	"github.com/raysh454/httpr/internal/webclient"
)

// ErrBodyFormat is returned when a body declared as application/json does
// not parse.
var ErrBodyFormat = errors.New("body format error")

type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// MIMEKind is the rendering branch chosen from a Content-Type header.
type MIMEKind int

const (
	MIMEOther MIMEKind = iota
	MIMEJSON
)

func (k MIMEKind) String() string {
	if k == MIMEJSON {
		return "json"
	}
	return "other"
}

const jsonIndent = "  "

// Renderer writes a response to a terminal: status line, headers, body.
type Renderer struct {
	out    io.Writer
	status *color.Color
	name   *color.Color
	logger logging.Logger
}

// New returns a Renderer writing to out. With ColorAuto, colour is used only
// when out is a terminal and NO_COLOR is unset.
func New(out io.Writer, mode ColorMode, logger logging.Logger) *Renderer {
	if logger == nil {
		logger = logging.NopLogger{}
	}

	enabled := useColor(out, mode)
	if f, ok := out.(*os.File); ok && enabled {
		out = colorable.NewColorable(f)
	}

	status := color.New(color.FgBlue)
	name := color.New(color.FgGreen)
	if enabled {
		status.EnableColor()
		name.EnableColor()
	} else {
		status.DisableColor()
		name.DisableColor()
	}

	return &Renderer{
		out:    out,
		status: status,
		name:   name,
		logger: logger.With(logging.Field{Key: "component", Value: "render"}),
	}
}

func useColor(out io.Writer, mode ColorMode) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := out.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Render prints resp in a single pass. When a JSON body fails to parse the
// status line and headers have already been written and the body is not.
func (r *Renderer) Render(resp *webclient.Response) error {
	if resp == nil {
		return errors.New("render: nil response")
	}
	w := &stickyWriter{w: r.out}

	fmt.Fprintln(w, r.status.Sprintf("%d %s", resp.StatusCode, resp.Proto))

	for _, h := range resp.HeaderPairs() {
		fmt.Fprintf(w, "%s: %s\n", r.name.Sprint(h.Name), h.Value)
	}
	fmt.Fprintln(w)

	contentType := resp.ContentType()
	kind := ClassifyMIME(contentType)
	r.logger.Debug("rendering body",
		logging.Field{Key: "request_id", Value: resp.RequestID},
		logging.Field{Key: "mime", Value: kind.String()},
		logging.Field{Key: "body_bytes", Value: len(resp.Body)})

	text := DecodeBody(resp.Body, contentType)
	if kind == MIMEJSON {
		pretty, err := PrettyJSON(text)
		if err != nil {
			return err
		}
		text = pretty
	}
	fmt.Fprintln(w, text)

	return w.err
}

// ClassifyMIME maps a Content-Type header value to a rendering branch.
// Parameters are ignored; a missing, non-UTF-8 or unparseable value is
// MIMEOther.
func ClassifyMIME(contentType string) MIMEKind {
	if contentType == "" || !utf8.ValidString(contentType) {
		return MIMEOther
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return MIMEOther
	}
	if mediaType == "application/json" {
		return MIMEJSON
	}
	return MIMEOther
}

// DecodeBody converts body to UTF-8 text. A leading byte order mark wins and
// is stripped; otherwise the charset parameter of contentType is used. Unknown
// or missing charsets are treated as UTF-8 and invalid sequences are replaced
// with U+FFFD.
func DecodeBody(body []byte, contentType string) string {
	fallback := encoding.Nop.NewDecoder()
	if label := charsetLabel(contentType); label != "" {
		if enc, name := charset.Lookup(label); enc != nil && name != "utf-8" {
			fallback = enc.NewDecoder()
		}
	}

	decoded, _, err := transform.Bytes(unicode.BOMOverride(fallback), body)
	if err != nil {
		decoded = bytes.TrimPrefix(body, utf8BOM)
	}
	return strings.ToValidUTF8(string(decoded), "\uFFFD")
}

var utf8BOM = []byte("\xEF\xBB\xBF")

func charsetLabel(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return params["charset"]
}

// PrettyJSON re-indents a JSON document with two spaces. Key order and
// number formatting are preserved. A blank body yields "".
func PrettyJSON(text string) (string, error) {
	src := []byte(text)
	if len(bytes.TrimSpace(src)) == 0 {
		return "", nil
	}
	if !json.Valid(src) {
		return "", fmt.Errorf("%w: response declared application/json but body is not valid JSON", ErrBodyFormat)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, src, "", jsonIndent); err != nil {
		return "", fmt.Errorf("%w: %w", ErrBodyFormat, err)
	}
	return string(bytes.TrimSpace(buf.Bytes())), nil
}

// stickyWriter remembers the first write error so rendering can stay a
// straight sequence of prints.
type stickyWriter struct {
	w   io.Writer
	err error
}

func (s *stickyWriter) Write(p []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	n, err := s.w.Write(p)
	if err != nil {
		s.err = err
	}
	return n, err
}
