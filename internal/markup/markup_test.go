package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRendererHTML(t *testing.T) {
	r := NewRenderer()

	tests := []struct {
		name     string
		input    string
		contains []string
		absent   []string
	}{
		{
			name:     "emphasis and lists",
			input:    "**urgent**\n\n- one\n- two",
			contains: []string{"<strong>urgent</strong>", "<li>one</li>"},
		},
		{
			name:     "links get safe attributes",
			input:    "[docs](https://example.com/docs)",
			contains: []string{`href="https://example.com/docs"`, "nofollow", `target="_blank"`},
		},
		{
			name:   "script is removed",
			input:  "hi <script>alert(1)</script>",
			absent: []string{"<script>"},
		},
		{
			name:   "javascript urls are dropped",
			input:  "[x](javascript:alert(1))",
			absent: []string{"javascript:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := r.HTML(tt.input)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestRendererHTMLEmpty(t *testing.T) {
	assert.Empty(t, NewRenderer().HTML("   \n"))
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "bold", PlainText("<b>bold</b>"))
	assert.Equal(t, "plain", PlainText("  plain "))
	assert.Equal(t, "VPN & Wi-Fi", PlainText("VPN & Wi-Fi"))
	assert.Equal(t, "Printer broken", PlainText("<script>x</script>Printer <i>broken</i>"))
}
