package executor

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/yesoreyeram/thaiyyal/backend/pkg/types"
)

type fileWriteConfig struct {
	Path   string `json:"path"`
	Append bool   `json:"append"`
}

// FileWriteNode executes the fileWrite node kind: writes (or appends) a
// string-coerced "content" input to a file, under the same path-traversal
// guard as fileRead.
type FileWriteNode struct{}

func (FileWriteNode) Kind() string { return "fileWrite" }

func (FileWriteNode) Execute(ctx ExecutionContext, inputs map[string]types.Value, config json.RawMessage) (map[string]types.Value, error) {
	var cfg fileWriteConfig
	if len(config) > 0 {
		if err := json.Unmarshal(config, &cfg); err != nil {
			return nil, err
		}
	}
	if p, ok := inputs["path"]; ok {
		if s, ok := p.AsString(); ok && s != "" {
			cfg.Path = s
		}
	}
	if cfg.Path == "" {
		return nil, ErrEmptyPath
	}
	if hasPathTraversal(cfg.Path) {
		return nil, ErrPathTraversal
	}

	content, _ := inputOrNull(inputs, "content").AsString()

	if cfg.Append {
		f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("io error: %v", err)
		}
		defer f.Close()
		if _, err := f.WriteString(content); err != nil {
			return nil, fmt.Errorf("io error: %v", err)
		}
	} else {
		if err := os.WriteFile(cfg.Path, []byte(content), 0o644); err != nil {
			return nil, fmt.Errorf("io error: %v", err)
		}
	}

	info, err := os.Stat(cfg.Path)
	var size int64
	if err == nil {
		size = info.Size()
	}

	return map[string]types.Value{"file": types.File(types.FileRef{Path: cfg.Path, Size: size})}, nil
}
