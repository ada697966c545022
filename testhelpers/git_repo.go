// Package testhelpers runs real git repositories inside temporary
// directories for tests.
package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const textFileName = "test.txt"

// GitRepo is a real git repository used as a test fixture.
type GitRepo struct {
	Dir string
}

// NewGitRepo initializes a repository in dir with master as the
// initial branch and a test identity configured.
func NewGitRepo(dir string) (*GitRepo, error) {
	repo := &GitRepo{Dir: dir}

	cmd := exec.Command("git",
		"-c", "init.defaultBranch=master",
		"-c", "core.autocrlf=false",
		"init", dir, "-b", "master")
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("failed to init repo: %w", err)
	}

	if err := repo.runGit("config", "user.name", "Test User"); err != nil {
		return nil, err
	}
	if err := repo.runGit("config", "user.email", "test@example.com"); err != nil {
		return nil, err
	}
	return repo, nil
}

// runGit executes a git command in the repository directory.
// GIT_CONFIG_GLOBAL=/dev/null keeps the host's config out of tests.
func (r *GitRepo) runGit(args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	return cmd.Run()
}

// RunGit executes a git command and returns an error if it fails.
func (r *GitRepo) RunGit(args ...string) error {
	return r.runGit(args...)
}

// RunGitOutput executes a git command and returns its trimmed output.
func (r *GitRepo) RunGitOutput(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git command failed: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// CreateChange writes a file into the working copy without staging it.
func (r *GitRepo) CreateChange(textValue, prefix string) (string, error) {
	fileName := textFileName
	if prefix != "" {
		fileName = prefix + "_" + fileName
	}
	path := filepath.Join(r.Dir, fileName)
	if err := os.WriteFile(path, []byte(textValue), 0o600); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return fileName, nil
}

// CreateChangeAndCommit writes a file, stages everything and commits.
func (r *GitRepo) CreateChangeAndCommit(textValue, prefix string) error {
	if _, err := r.CreateChange(textValue, prefix); err != nil {
		return err
	}
	if err := r.runGit("add", "."); err != nil {
		return err
	}
	return r.runGit("commit", "-m", textValue)
}

// DeleteTrackedFile removes a tracked file from the working copy only.
func (r *GitRepo) DeleteTrackedFile(name string) error {
	return os.Remove(filepath.Join(r.Dir, name))
}

// CreateBareRemote creates a sibling bare repository and adds it as a
// remote under the given name. Returns the bare path.
func (r *GitRepo) CreateBareRemote(name string) (string, error) {
	bareDir := r.Dir + "-" + name + ".git"

	cmd := exec.Command("git", "init", "--bare", bareDir)
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("failed to create bare repo: %w", err)
	}

	if err := r.runGit("remote", "add", name, bareDir); err != nil {
		return "", fmt.Errorf("failed to add remote: %w", err)
	}
	return bareDir, nil
}

// PushBranch pushes a branch to a remote with upstream tracking.
func (r *GitRepo) PushBranch(remote, branch string) error {
	cmd := exec.Command("git", "push", "-u", remote, branch)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("push failed: %w, output: %s", err, string(out))
	}
	return nil
}

// CurrentBranchName returns the name of the current branch.
func (r *GitRepo) CurrentBranchName() (string, error) {
	return r.RunGitOutput("branch", "--show-current")
}

// CreateAndCheckoutBranch creates and checks out a new branch.
func (r *GitRepo) CreateAndCheckoutBranch(name string) error {
	return r.runGit("checkout", "-b", name)
}

// CheckoutBranch checks out an existing branch.
func (r *GitRepo) CheckoutBranch(name string) error {
	return r.runGit("checkout", name)
}

// ListCommitMessages returns the subject lines on the current branch,
// newest first.
func (r *GitRepo) ListCommitMessages() ([]string, error) {
	out, err := r.RunGitOutput("log", "--format=%s")
	if err != nil {
		return nil, err
	}
	if out == "" {
		return []string{}, nil
	}
	return strings.Split(out, "\n"), nil
}

// GetRevision resolves a revision to its SHA.
func (r *GitRepo) GetRevision(rev string) (string, error) {
	return r.RunGitOutput("rev-parse", rev)
}
