package config

import (
	"path/filepath"
	"strings"

	"github.com/LegacyCodeHQ/amalgamate/vcs"
)

// RawPath is a path as written in the configuration or an #include directive.
type RawPath string

// AbsolutePath is a normalized absolute filesystem path.
type AbsolutePath string

func (p AbsolutePath) String() string {
	return string(p)
}

// Resolver maps logical paths onto files under the source root.
type Resolver struct {
	sourceRoot   AbsolutePath
	includePaths []string
	isFile       vcs.FileChecker
}

// NewResolver returns a Resolver for cfg that checks candidates with isFile.
func NewResolver(cfg *Config, isFile vcs.FileChecker) *Resolver {
	return &Resolver{
		sourceRoot:   cfg.SourceRoot,
		includePaths: cfg.IncludePaths,
		isFile:       isFile,
	}
}

// Resolve looks for path under the source root, then under each of searchDirs
// (relative to the source root) in order, and returns the first regular file.
func (r *Resolver) Resolve(path RawPath, searchDirs []string) (AbsolutePath, bool) {
	logical := filepath.FromSlash(strings.TrimSpace(string(path)))
	if logical == "" || filepath.IsAbs(logical) {
		return "", false
	}

	for _, dir := range r.candidateDirs(searchDirs) {
		candidate := filepath.Clean(filepath.Join(dir.String(), logical))
		if r.isFile(candidate) {
			return AbsolutePath(candidate), true
		}
	}
	return "", false
}

// ResolveSource resolves a root source file. Root sources must live directly
// under the source root, so include directories are not searched.
func (r *Resolver) ResolveSource(path RawPath) (AbsolutePath, bool) {
	return r.Resolve(path, nil)
}

// ResolveInclude resolves the path of an #include directive against the
// source root and every configured include directory.
func (r *Resolver) ResolveInclude(path RawPath) (AbsolutePath, bool) {
	return r.Resolve(path, r.includePaths)
}

// SearchDirs returns the source root followed by each include directory.
func (r *Resolver) SearchDirs() []AbsolutePath {
	return r.candidateDirs(r.includePaths)
}

func (r *Resolver) candidateDirs(searchDirs []string) []AbsolutePath {
	dirs := make([]AbsolutePath, 0, len(searchDirs)+1)
	dirs = append(dirs, r.sourceRoot)
	for _, dir := range searchDirs {
		dirs = append(dirs, AbsolutePath(filepath.Clean(filepath.Join(r.sourceRoot.String(), filepath.FromSlash(dir)))))
	}
	return dirs
}
