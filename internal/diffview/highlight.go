package diffview

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlighter applies per-line syntax colors to diff row text. Tokenizing
// line by line loses multi-line constructs (block comments, raw strings),
// which is an accepted trade for not re-highlighting whole files on
// every scroll.
type Highlighter struct {
	style     *chroma.Style
	formatter chroma.Formatter
	byPath    map[string]chroma.Lexer
}

func NewHighlighter() *Highlighter {
	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}
	return &Highlighter{
		style:     style,
		formatter: formatters.TTY256,
		byPath:    make(map[string]chroma.Lexer),
	}
}

// Line returns text with ANSI colors for the lexer matching path. Unknown
// file types and tokenizer errors return the text unchanged.
func (h *Highlighter) Line(path, text string) string {
	if text == "" {
		return text
	}
	lexer := h.lexerFor(path)
	if lexer == nil {
		return text
	}

	it, err := lexer.Tokenise(nil, text)
	if err != nil {
		return text
	}
	var b strings.Builder
	if err := h.formatter.Format(&b, h.style, it); err != nil {
		return text
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (h *Highlighter) lexerFor(path string) chroma.Lexer {
	if lexer, ok := h.byPath[path]; ok {
		return lexer
	}
	lexer := lexers.Match(path)
	if lexer != nil {
		lexer = chroma.Coalesce(lexer)
	}
	h.byPath[path] = lexer
	return lexer
}
