package export

import (
	"fmt"
	"os"
	"path/filepath"
)

// ============================================================
// Delivery Sinks
// ============================================================

// Sink is the delivery boundary: it receives the finished artifact
// and performs the user-facing side effect.
type Sink interface {
	Deliver(artifact *Artifact) error
}

// DirSink keeps a copy of every delivered artifact under a root
// directory on the server.
type DirSink struct {
	root string
}

func NewDirSink(root string) *DirSink {
	return &DirSink{root: root}
}

func (s *DirSink) Path(filename string) string {
	return filepath.Join(s.root, filepath.Base(filename))
}

func (s *DirSink) Deliver(artifact *Artifact) error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("mkdir export dir: %w", err)
	}
	if err := os.WriteFile(s.Path(artifact.Filename), artifact.Data, 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	return nil
}
