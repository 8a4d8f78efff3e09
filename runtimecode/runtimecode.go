// Package runtimecode provides the compiled ledger runtime blob that is
// placed into genesis storage.
package runtimecode

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/rony4d/go-collator-spec/utils/lazy"
)

var log = logrus.WithField("module", "runtimecode")

var (
	// ErrRuntimeNotBuilt is returned when the binary was linked without the runtime blob.
	ErrRuntimeNotBuilt = errors.New("runtime code was not built, please build it")
	// ErrEmptyRuntime is returned for a zero-length blob.
	ErrEmptyRuntime = errors.New("runtime code is empty")
)

// Artifact is a source of compiled runtime code.
type Artifact interface {
	// Code returns the runtime blob. Callers must not modify it.
	Code() ([]byte, error)
}

// Static is an in-memory artifact.
type Static []byte

// Code implements Artifact.
func (s Static) Code() ([]byte, error) {
	if len(s) == 0 {
		return nil, ErrEmptyRuntime
	}
	return s, nil
}

type fileArtifact struct {
	path string
	code *lazy.Value[[]byte]
}

// File returns an artifact read from path on first use. The read result,
// success or failure, is kept for the life of the artifact.
func File(path string) Artifact {
	return &fileArtifact{
		path: path,
		code: lazy.New(func() ([]byte, error) {
			code, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read runtime code: %w", err)
			}
			if len(code) == 0 {
				return nil, fmt.Errorf("%w: %s", ErrEmptyRuntime, path)
			}
			log.WithFields(logrus.Fields{"path": path, "size": len(code)}).Debug("Loaded runtime code")
			return code, nil
		}),
	}
}

// Code implements Artifact.
func (f *fileArtifact) Code() ([]byte, error) {
	return f.code.Force()
}

func (f *fileArtifact) String() string {
	return "file:" + f.path
}

type embedded struct{}

// Embedded returns the artifact linked into the binary at build time.
func Embedded() Artifact {
	return embedded{}
}

// Code implements Artifact.
func (embedded) Code() ([]byte, error) {
	if len(embeddedCode) == 0 {
		return nil, ErrRuntimeNotBuilt
	}
	return embeddedCode, nil
}

func (embedded) String() string {
	return "embedded"
}
