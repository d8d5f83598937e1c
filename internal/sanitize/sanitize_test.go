package sanitize

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wp2csv/wp2csv/pkg/wp2csv"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"paragraph with entity", "<p>Hello &amp; welcome</p>", "Hello & welcome"},
		{"plain text", "no markup here", "no markup here"},
		{"empty", "", ""},
		{"nested tags", "<div><p>a <b>bold</b> move</p></div>", "a bold move"},
		{"tag with attributes", `<a href="https://example.com" title="x">link</a>`, "link"},
		{"multiline tag", "<img\nsrc=\"x.png\"\n/>caption", "caption"},
		{"escaped markup is removed", "a &lt;b&gt; c", "a  c"},
		{"double escaped entity", "fish &amp;amp; chips", "fish & chips"},
		{"numeric reference", "caf&#233;", "café"},
		{"unterminated tag kept", "1 < 2", "1 < 2"},
		{"gutenberg comments", "<!-- wp:paragraph --><p>Hi</p><!-- /wp:paragraph -->", "Hi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"<p>Hello &amp; welcome</p>",
		"&amp;lt;script&amp;gt;alert(1)&amp;lt;/script&amp;gt;",
		"&lt;&lt;b&gt;&gt;",
		"<<b>>",
		"a &amp;amp;amp;amp; b",
		"x < y > z",
		"&nGt; &lt",
	}
	for _, in := range inputs {
		once := Clean(in)
		assert.Equal(t, once, Clean(once), in)
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"":         FormatText,
		"text":     FormatText,
		" TEXT ":   FormatText,
		"html":     FormatHTML,
		"markdown": FormatMarkdown,
		"md":       FormatMarkdown,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("rtf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, wp2csv.ErrInvalidConfig))
}

func TestFormat_String(t *testing.T) {
	assert.Equal(t, "text", FormatText.String())
	assert.Equal(t, "html", FormatHTML.String())
	assert.Equal(t, "markdown", FormatMarkdown.String())
	assert.Equal(t, "Format(9)", Format(9).String())
}

func TestCleaner_HTML(t *testing.T) {
	c := New(FormatHTML)

	assert.Equal(t, "Hello & welcome", c.Clean("<p>Hello &amp; welcome</p>"))
	assert.Equal(t, "before after", c.Clean("before <script>var x = '<b>';</script>after"))
	assert.Equal(t, "styled", c.Clean("<style>p { color: red; }</style>styled"))

	in := "a &lt;b&gt; c &amp;amp; d"
	once := c.Clean(in)
	assert.Equal(t, once, c.Clean(once))
}

func TestCleaner_Markdown(t *testing.T) {
	c := New(FormatMarkdown)
	out := c.Clean("<h2>Title</h2><p>Some <strong>bold</strong> text</p>")
	assert.Contains(t, out, "## Title")
	assert.Contains(t, out, "**bold**")
}

func TestCleaner_ZeroAndNil(t *testing.T) {
	var zero Cleaner
	assert.Equal(t, "x", zero.Clean("<i>x</i>"))

	var nilCleaner *Cleaner
	assert.Equal(t, FormatText, nilCleaner.Format())
}
