package template

import (
	"bytes"
	htmltemplate "html/template"
	"strings"
)

// Engine renders logic-less HTML email templates. Templates only interpolate
// fields the mapper already computed; formatting never happens here.
type Engine struct{}

// NewEngine creates a new template engine
func NewEngine() *Engine {
	return &Engine{}
}

// RenderHTML parses templateStr and executes it with the given data.
func (e *Engine) RenderHTML(templateStr string, data interface{}) (string, error) {
	tmpl, err := htmltemplate.New("email").Funcs(e.funcMap()).Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (e *Engine) funcMap() htmltemplate.FuncMap {
	return htmltemplate.FuncMap{
		"upper":    strings.ToUpper,
		"lower":    strings.ToLower,
		"trim":     strings.TrimSpace,
		"safeHTML": safeHTML,
	}
}

func safeHTML(s string) htmltemplate.HTML {
	return htmltemplate.HTML(s)
}
