package frameworks

import (
	"path/filepath"
)

// FilePath returns the suite's local file path. For remote runs, the remote
// file is re-based from the remote mount point onto the local root.
func (s *Suite) FilePath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.runsInRemote {
		return s.file
	}
	return filepath.Join(s.root, relative(filepath.Join(s.remotePath, s.path), s.file))
}

// RelativePath returns the suite's file relative to the scanned root. A
// remote run mounted at "/" has no prefix to strip.
func (s *Suite) RelativePath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.relativePathLocked()
}

func (s *Suite) relativePathLocked() string {
	if s.runsInRemote && s.remotePath == "/" {
		return s.file
	}
	base := s.root
	if s.runsInRemote {
		base = filepath.Join(s.remotePath, s.path)
	}
	return relative(base, s.file)
}

// DisplayName returns the name to show for the suite.
func (s *Suite) DisplayName() string {
	return s.RelativePath()
}

// relative is filepath.Rel, falling back to target when no relative path
// exists (e.g. mixing absolute and relative paths).
func relative(base, target string) string {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return target
	}
	return rel
}
