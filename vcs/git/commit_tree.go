package git

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// CommitTree is a read-only view of every file that exists in one commit.
// Its IsFile and ReadFile methods satisfy vcs.FileChecker and vcs.ContentReader,
// so an amalgamation can be produced from history instead of the working tree.
type CommitTree struct {
	repoRoot string
	commit   string
	files    map[string]bool
}

// NewCommitTree lists the tree of commitID in the repository containing path.
func NewCommitTree(path, commitID string) (*CommitTree, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("repository path does not exist: %s", path)
	}

	if !isGitRepository(path) {
		return nil, fmt.Errorf("%s is not a git repository (use 'git init' to initialize)", path)
	}

	if err := validateCommit(path, commitID); err != nil {
		return nil, err
	}

	repoRoot, err := GetRepositoryRoot(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get repository root: %w", err)
	}

	hash, err := resolveCommit(path, commitID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve commit %s: %w", commitID, err)
	}

	out, stderr, err := runGitCommand(repoRoot, "ls-tree", "-r", "-z", "--name-only", hash)
	if err != nil {
		return nil, gitCommandError(err, stderr)
	}

	files := make(map[string]bool)
	for _, name := range bytes.Split(out, []byte{0}) {
		if len(name) == 0 {
			continue
		}
		files[filepath.Join(repoRoot, filepath.FromSlash(string(name)))] = true
	}

	return &CommitTree{
		repoRoot: repoRoot,
		commit:   hash,
		files:    files,
	}, nil
}

// Commit returns the full hash the tree was read from.
func (t *CommitTree) Commit() string {
	return t.commit
}

// IsFile reports whether the absolute path names a file in the commit.
func (t *CommitTree) IsFile(filePath string) bool {
	return t.files[filepath.Clean(filePath)]
}

// ReadFile returns the content of the absolute path as of the commit.
func (t *CommitTree) ReadFile(filePath string) ([]byte, error) {
	filePath = filepath.Clean(filePath)
	rel, err := filepath.Rel(t.repoRoot, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate path %q: %w", filePath, err)
	}
	if err := validateGitRelPath(rel); err != nil {
		return nil, err
	}
	if !t.files[filePath] {
		return nil, fmt.Errorf("%s is not in commit %s: %w", rel, t.commit[:min(len(t.commit), 7)], fs.ErrNotExist)
	}

	out, stderr, err := runGitCommand(t.repoRoot, "show", t.commit+":"+filepath.ToSlash(rel))
	if err != nil {
		return nil, fmt.Errorf("git show failed: %w", gitCommandError(err, stderr))
	}
	return out, nil
}
