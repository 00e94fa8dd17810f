package settings

import (
	"bytes"
	"os"
	"text/template"

	"github.com/fastlab-io/server/plugins/common"
)

// ITemplateProvider defines template logic.
type ITemplateProvider interface {
	Process([]byte) ([]byte, error)
}

// Template engine provider.
type provider struct {
	Logger    common.ILoggerProvider
	functions template.FuncMap
}

// Contains data required for a new template.
type constructTemplate struct {
	Logger common.ILoggerProvider
}

// Constructs a new template engine.
func newTemplateProvider(ctor *constructTemplate) ITemplateProvider {
	provider := &provider{
		Logger: ctor.Logger,
	}

	provider.functions = template.FuncMap{
		"env": provider.getEnvVariable,
	}

	return provider
}

// Process applies template functions to the config file,
// so values can be read from environment variables.
func (p *provider) Process(rawFile []byte) ([]byte, error) {
	tpl, err := template.New("fastlab").Funcs(p.functions).Parse(string(rawFile))
	if err != nil {
		p.Logger.Error("Failed to parse template", err, common.LogSystemToken, logSystem)
		return nil, err
	}

	b := bytes.Buffer{}
	err = tpl.Execute(&b, nil)
	if err != nil {
		p.Logger.Error("Failed to execute template", err, common.LogSystemToken, logSystem)
		return nil, err
	}

	return b.Bytes(), nil
}

// Returns environment variable.
func (p *provider) getEnvVariable(name string) string {
	p.Logger.Debug("Template is requesting environment variable",
		common.LogFieldToken, name, common.LogSystemToken, logSystem)
	return os.Getenv(name)
}
