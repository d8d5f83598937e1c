package sanitize

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	xhtml "golang.org/x/net/html"

	"github.com/wp2csv/wp2csv/pkg/wp2csv"
)

// Format selects how content columns are cleaned.
type Format int

const (
	// FormatText strips tags with a lazy pattern and decodes entities.
	FormatText Format = iota
	// FormatHTML extracts text nodes with a real parser.
	FormatHTML
	// FormatMarkdown converts markup to Markdown.
	FormatMarkdown
)

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatHTML:
		return "html"
	case FormatMarkdown:
		return "markdown"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat converts a format name. Empty means text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "plain":
		return FormatText, nil
	case "html":
		return FormatHTML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return 0, fmt.Errorf("unknown content format %q (use text, html, or markdown): %w", s, wp2csv.ErrInvalidConfig)
	}
}

var tagPattern = regexp.MustCompile(`(?s)<.*?>`)

// Clean strips tags and decodes entities until the value is stable.
// Each pass that changes s removes at least one rune, so the loop terminates.
func Clean(s string) string {
	for {
		next := cleanOnce(s)
		if next == s {
			return s
		}
		s = next
	}
}

func cleanOnce(s string) string {
	return html.UnescapeString(tagPattern.ReplaceAllString(s, ""))
}

// Cleaner applies one Format. The zero value cleans as text.
type Cleaner struct {
	format Format
}

// New returns a Cleaner for format.
func New(format Format) *Cleaner {
	return &Cleaner{format: format}
}

// Format reports the configured format.
func (c *Cleaner) Format() Format {
	if c == nil {
		return FormatText
	}
	return c.format
}

// Clean cleans s according to the configured format. Markdown conversion
// failures fall back to text cleaning so one bad row cannot fail an export.
func (c *Cleaner) Clean(s string) string {
	switch c.Format() {
	case FormatHTML:
		return extractTextStable(s)
	case FormatMarkdown:
		md, err := htmltomarkdown.ConvertString(s)
		if err != nil {
			return Clean(s)
		}
		return strings.TrimSpace(md)
	default:
		return Clean(s)
	}
}

func extractTextStable(s string) string {
	for {
		next := extractText(s)
		if next == s {
			return s
		}
		s = next
	}
}

// extractText returns the decoded text tokens of s, skipping script and style bodies.
func extractText(s string) string {
	z := xhtml.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	skip := 0
	for {
		switch z.Next() {
		case xhtml.ErrorToken:
			return b.String()
		case xhtml.StartTagToken:
			if name, _ := z.TagName(); isRawText(name) {
				skip++
			}
		case xhtml.EndTagToken:
			if name, _ := z.TagName(); isRawText(name) && skip > 0 {
				skip--
			}
		case xhtml.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		}
	}
}

func isRawText(tag []byte) bool {
	name := string(tag)
	return name == "script" || name == "style"
}
