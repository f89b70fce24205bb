package executor

import (
	"encoding/json"
	"regexp"

	"github.com/yesoreyeram/thaiyyal/backend/pkg/types"
)

const maxRegexPatternLength = 1000

type regexConfig struct {
	Pattern     string `json:"pattern"`
	Mode        string `json:"mode"`
	Replacement string `json:"replacement"`
}

// RegexNode executes the regex node kind, matching or replacing against a
// string input.
type RegexNode struct{}

func (RegexNode) Kind() string { return "regex" }

func (RegexNode) Execute(ctx ExecutionContext, inputs map[string]types.Value, config json.RawMessage) (map[string]types.Value, error) {
	var cfg regexConfig
	if len(config) > 0 {
		if err := json.Unmarshal(config, &cfg); err != nil {
			return nil, err
		}
	}
	if cfg.Mode == "" {
		cfg.Mode = "match"
	}
	if len(cfg.Pattern) > maxRegexPatternLength {
		return nil, ErrPatternTooLarge
	}

	re, err := regexp.Compile(cfg.Pattern)
	if err != nil {
		return nil, ErrInvalidRegex
	}

	input := inputOrNull(inputs, "input")
	s, _ := input.AsString()

	switch cfg.Mode {
	case "replace":
		result := re.ReplaceAllString(s, cfg.Replacement)
		return map[string]types.Value{
			"result":  types.String(result),
			"matches": types.Array(nil),
		}, nil
	default:
		found := re.FindAllString(s, -1)
		matches := make([]types.Value, len(found))
		for i, m := range found {
			matches[i] = types.String(m)
		}
		return map[string]types.Value{
			"matches": types.Array(matches),
			"result":  types.String(s),
		}, nil
	}
}
