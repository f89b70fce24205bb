package executor

import (
	"encoding/json"
	"regexp"

	"github.com/yesoreyeram/thaiyyal/backend/pkg/types"
)

type textTemplateConfig struct {
	Template string `json:"template"`
}

var templatePlaceholder = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_]+)\s*\}\}`)

// TextTemplateNode executes the textTemplate node kind: interpolates
// {{name}} placeholders, resolving each name first against the "variables"
// object input, then against any other named input (excluding "template").
// A placeholder whose name resolves nowhere is left in the output literally.
type TextTemplateNode struct{}

func (TextTemplateNode) Kind() string { return "textTemplate" }

func (TextTemplateNode) Execute(ctx ExecutionContext, inputs map[string]types.Value, config json.RawMessage) (map[string]types.Value, error) {
	var cfg textTemplateConfig
	if len(config) > 0 {
		if err := json.Unmarshal(config, &cfg); err != nil {
			return nil, err
		}
	}

	template := cfg.Template
	if tv, ok := inputs["template"]; ok {
		if s, ok := tv.AsString(); ok {
			template = s
		}
	}

	variables := map[string]types.Value{}
	if vv, ok := inputs["variables"]; ok && vv.Kind == types.KindObject {
		variables = vv.Obj
	}

	result := templatePlaceholder.ReplaceAllStringFunc(template, func(match string) string {
		name := templatePlaceholder.FindStringSubmatch(match)[1]
		if v, ok := variables[name]; ok {
			s, _ := v.AsString()
			return s
		}
		if name == "template" {
			return match
		}
		if v, ok := inputs[name]; ok {
			s, _ := v.AsString()
			return s
		}
		return match
	})

	return map[string]types.Value{"result": types.String(result)}, nil
}
