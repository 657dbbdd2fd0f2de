package handlers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spak-project/spak/internal/effect"
)

// Filesystem handles effect.ReadFile and effect.WriteFile, both UTF-8.
// WriteFile creates any missing parent directories before writing.
type Filesystem struct{}

// NewFilesystem returns a ready-to-register Filesystem handler.
func NewFilesystem() Filesystem { return Filesystem{} }

func (Filesystem) CanHandle(k effect.Kind) bool {
	return k == effect.ReadFile || k == effect.WriteFile
}

func (Filesystem) Handle(ctx context.Context, e effect.Effect) (any, error) {
	switch e.Kind {
	case effect.ReadFile:
		req, ok := e.Payload.(effect.FileRead)
		if !ok {
			return nil, fmt.Errorf("filesystem handler: unexpected payload type %T", e.Payload)
		}
		data, err := os.ReadFile(req.Path)
		if err != nil {
			return nil, err
		}
		return string(data), nil

	case effect.WriteFile:
		req, ok := e.Payload.(effect.FileWrite)
		if !ok {
			return nil, fmt.Errorf("filesystem handler: unexpected payload type %T", e.Payload)
		}
		if dir := filepath.Dir(req.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
		if err := os.WriteFile(req.Path, []byte(req.Content), 0o644); err != nil {
			return nil, err
		}
		return nil, nil

	default:
		return nil, fmt.Errorf("filesystem handler: declined effect %s reached Handle", e.Kind)
	}
}
