package service

import (
	"os"
	"path/filepath"
)

// pending is an output file written under a temporary name in the target
// directory and renamed into place on commit.
type pending struct {
	f *os.File
}

func createPending(dir string) (*pending, error) {
	f, err := os.CreateTemp(dir, ".huf-*.tmp")
	if err != nil {
		return nil, err
	}
	return &pending{f: f}, nil
}

func (p *pending) commit(path string) error {
	if err := p.f.Chmod(0o644); err != nil {
		p.abort()
		return err
	}
	if err := p.f.Close(); err != nil {
		os.Remove(p.f.Name())
		return err
	}
	if err := os.Rename(p.f.Name(), filepath.Clean(path)); err != nil {
		os.Remove(p.f.Name())
		return err
	}
	return nil
}

func (p *pending) abort() {
	p.f.Close()
	os.Remove(p.f.Name())
}
