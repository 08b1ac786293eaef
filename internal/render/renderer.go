package render

import (
	"embed"
	"errors"
	"fmt"
	"strings"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// documents holds every embedded template, parsed once. Missing fields in
// the data fail the render instead of printing "<no value>".
var documents = sync.OnceValues(func() (*template.Template, error) {
	return template.New("documents").
		Option("missingkey=error").
		Funcs(sprig.TxtFuncMap()).
		ParseFS(templateFS, "templates/*.tmpl")
})

// execute renders the named embedded template with data.
func execute(name TemplateName, data any) (string, error) {
	set, err := documents()
	if err != nil {
		return "", fmt.Errorf("parsing templates: %w", err)
	}
	var out strings.Builder
	if err := set.ExecuteTemplate(&out, string(name), data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return out.String(), nil
}

// Logback renders the logback cluster.xml with every appender writing under
// logDir.
func Logback(logDir string) (string, error) {
	if logDir == "" {
		return "", errors.New("log directory must not be empty")
	}
	return execute(TplClusterXML, LogbackData{
		Banner: Banner,
		LogDir: logDir,
	})
}
