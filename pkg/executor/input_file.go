package executor

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/yesoreyeram/thaiyyal/backend/pkg/types"
)

type fileReadConfig struct {
	Path string `json:"path"`
}

// FileReadNode executes the fileRead node kind: reads a file's contents as
// UTF-8 text, decoding a leading byte-order-mark the way the lineinfile
// plugin's file_ops.go does in the Streamy codebase.
type FileReadNode struct{}

func (FileReadNode) Kind() string { return "fileRead" }

func (FileReadNode) Execute(ctx ExecutionContext, inputs map[string]types.Value, config json.RawMessage) (map[string]types.Value, error) {
	var cfg fileReadConfig
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

	raw, err := os.ReadFile(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("io error: %v", err)
	}

	decoded, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), raw)
	if err != nil {
		return nil, fmt.Errorf("io error: invalid UTF-8: %v", err)
	}

	return map[string]types.Value{
		"content": types.String(string(decoded)),
		"file":    types.File(types.FileRef{Path: cfg.Path, Size: int64(len(raw))}),
	}, nil
}

// hasPathTraversal rejects any path containing a ".." segment, the same
// guard this module's fileWrite node applies.
func hasPathTraversal(path string) bool {
	for _, part := range strings.Split(strings.ReplaceAll(path, "\\", "/"), "/") {
		if part == ".." {
			return true
		}
	}
	return false
}
