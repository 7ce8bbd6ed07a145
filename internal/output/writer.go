package output

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// asciiLabels are the IANA aliases of US-ASCII. x/text ships no ASCII
// encoding and the WHATWG index folds these labels into windows-1252.
var asciiLabels = map[string]bool{
	"us-ascii":         true,
	"ascii":            true,
	"us":               true,
	"iso-ir-6":         true,
	"ansi_x3.4-1968":   true,
	"ansi_x3.4-1986":   true,
	"iso_646.irv:1991": true,
	"iso646-us":        true,
	"ibm367":           true,
	"cp367":            true,
	"csascii":          true,
}

// Writer prints text in a destination character set. Characters the set
// cannot represent are dropped rather than replaced, so a narrow terminal
// encoding never turns into a failed run.
type Writer struct {
	w     io.Writer
	enc   encoding.Encoding
	name  string
	ascii bool
	log   zerolog.Logger
}

// New resolves label for w. IANA names are tried first, then WHATWG labels.
func New(w io.Writer, label string, log zerolog.Logger) (*Writer, error) {
	key := strings.ToLower(strings.TrimSpace(label))
	if asciiLabels[key] {
		return &Writer{w: w, name: "us-ascii", ascii: true, log: log}, nil
	}
	enc, name, err := lookup(key)
	if err != nil {
		return nil, fmt.Errorf("output encoding %q: %w", label, err)
	}
	return &Writer{w: w, enc: enc, name: name, log: log}, nil
}

func lookup(label string) (encoding.Encoding, string, error) {
	if enc, err := ianaindex.IANA.Encoding(label); err == nil && enc != nil {
		for _, idx := range []*ianaindex.Index{ianaindex.MIME, ianaindex.IANA} {
			if name, err := idx.Name(enc); err == nil && name != "" {
				return enc, strings.ToLower(name), nil
			}
		}
		return enc, label, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, "", err
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		name = label
	}
	return enc, strings.ToLower(name), nil
}

// Encoding is the lower-cased canonical name of the destination character set.
func (w *Writer) Encoding() string { return w.name }

// WriteText writes s followed by a newline.
func (w *Writer) WriteText(s string) error {
	out, dropped := w.encode(s + "\n")
	if dropped > 0 {
		w.log.Debug().Str("encoding", w.name).Int("dropped", dropped).Msg("output fallback dropped unencodable characters")
	}
	if _, err := io.WriteString(w.w, out); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func (w *Writer) encode(s string) (string, int) {
	switch {
	case w.ascii:
		return keepASCII(s)
	case w.enc == unicode.UTF8 || w.name == "utf-8":
		clean := strings.ToValidUTF8(s, "")
		return clean, len(s) - len(clean)
	}
	out, err := w.enc.NewEncoder().String(s)
	if err == nil {
		return out, 0
	}
	return encodeDropping(w.enc, s)
}

func keepASCII(s string) (string, int) {
	var b strings.Builder
	b.Grow(len(s))
	dropped := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		if r >= utf8.RuneSelf {
			dropped++
			continue
		}
		b.WriteByte(byte(r))
	}
	return b.String(), dropped
}

// encodeDropping filters out the runes enc rejects, then encodes what is
// left in one pass so stateful encodings switch modes once per run.
func encodeDropping(enc encoding.Encoding, s string) (string, int) {
	check := enc.NewEncoder()
	var kept strings.Builder
	dropped := 0
	for _, r := range s {
		if _, err := check.String(string(r)); err != nil {
			dropped++
			continue
		}
		kept.WriteRune(r)
	}
	out, err := enc.NewEncoder().String(kept.String())
	if err != nil {
		return "", dropped + utf8.RuneCountInString(kept.String())
	}
	return out, dropped
}
