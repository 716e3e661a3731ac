package provider

import (
	"bytes"
	_ "embed"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/pkg/errors"

	"github.com/nostromo/mother/internal/settings"
)

//go:embed system_prompt.tmpl
var systemPromptTemplate string

var systemPrompt = template.Must(template.New("system_prompt").Funcs(sprig.TxtFuncMap()).Parse(systemPromptTemplate))

// RenderSystemPrompt renders the persona sent with every request.
func RenderSystemPrompt(provider settings.Provider, model string) (string, error) {
	data := struct {
		Provider settings.Provider
		Model    string
	}{Provider: provider, Model: model}
	var buffer bytes.Buffer
	if err := systemPrompt.Execute(&buffer, data); err != nil {
		return "", errors.Wrap(err, "executing system prompt template")
	}
	return strings.TrimSpace(buffer.String()), nil
}
