package gateways

import (
	"context"
	"errors"
	"fmt"

	git "github.com/go-git/go-git/v5"
)

// shortCommitLen matches the commit length shown in rules-update output
const shortCommitLen = 12

// RulesFetcher clones and updates upstream detection-rule repositories
type RulesFetcher struct{}

// NewRulesFetcher creates a new rules fetcher
func NewRulesFetcher() *RulesFetcher {
	return &RulesFetcher{}
}

// CloneOrUpdate opens the repository at dest, cloning it from repoURL first
// if it does not exist, then pulls origin. Returns the short HEAD commit.
func (f *RulesFetcher) CloneOrUpdate(ctx context.Context, repoURL, dest string) (string, error) {
	repo, err := git.PlainOpen(dest)
	switch {
	case errors.Is(err, git.ErrRepositoryNotExists):
		repo, err = git.PlainCloneContext(ctx, dest, false, &git.CloneOptions{
			URL:          repoURL,
			SingleBranch: true,
		})
		if err != nil {
			return "", fmt.Errorf("failed to clone rules repo: %w", err)
		}
	case err != nil:
		return "", fmt.Errorf("failed to open existing rules repo: %w", err)
	default:
		if err := f.pull(ctx, repo); err != nil {
			return "", err
		}
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	commit := head.Hash().String()
	if len(commit) > shortCommitLen {
		commit = commit[:shortCommitLen]
	}

	return commit, nil
}

func (f *RulesFetcher) pull(ctx context.Context, repo *git.Repository) error {
	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open worktree: %w", err)
	}

	err = wt.PullContext(ctx, &git.PullOptions{RemoteName: "origin"})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("failed to pull rules repo: %w", err)
	}

	return nil
}
