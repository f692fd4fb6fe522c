package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdown_EmptyInput(t *testing.T) {
	assert.Equal(t, "", RenderMarkdown(""))
}

func TestRenderMarkdown_PlainText(t *testing.T) {
	result := RenderMarkdown("Sala de autopsias 2")
	assert.Contains(t, result, "Sala de autopsias 2")
}

func TestRenderMarkdown_Bold(t *testing.T) {
	result := RenderMarkdown("**fuera de servicio**")
	assert.Contains(t, result, "<strong>fuera de servicio</strong>")
}

func TestRenderMarkdown_Link(t *testing.T) {
	result := RenderMarkdown("[manual](https://example.com/manual.pdf)")
	assert.Contains(t, result, `<a href="https://example.com/manual.pdf"`)
	assert.Contains(t, result, "manual</a>")
}

func TestRenderMarkdown_SanitizesScript(t *testing.T) {
	result := RenderMarkdown(`<script>alert("xss")</script>`)
	assert.NotContains(t, result, "<script>")
}

func TestRenderMarkdown_SanitizesEventHandlers(t *testing.T) {
	result := RenderMarkdown(`<img src="x.png" onerror="alert(1)">`)
	assert.NotContains(t, result, "onerror")
}

func TestRenderMarkdown_GFMTable(t *testing.T) {
	result := RenderMarkdown("| Cámara | IP |\n|---|---|\n| 1 | 10.0.0.5 |")
	assert.Contains(t, result, "<table>")
	assert.Contains(t, result, "10.0.0.5")
}

func TestRenderMarkdown_GFMTaskList(t *testing.T) {
	result := RenderMarkdown("- [x] calibrada\n- [ ] limpieza")
	assert.Contains(t, result, "<li>")
	assert.Contains(t, result, "calibrada")
	assert.Contains(t, result, "limpieza")
}
