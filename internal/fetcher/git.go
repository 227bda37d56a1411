// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Git clone and reference checkout implementation

package fetcher

import (
	"context"
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// fetchFromGit clones a repository at the requested reference. Branch and
// tag names are handed to the clone itself via ReferenceName; commit hashes
// cannot be cloned directly, so those fall back to a full clone followed by
// revision resolution and a forced checkout.
func fetchFromGit(ctx context.Context, config *FetchConfig) (*FetchResult, error) {
	if config.Reference == "" {
		return nil, fmt.Errorf("reference is empty")
	}

	if config.Verbose {
		fmt.Fprintf(config.Progress, "Cloning %s at %q into %s...\n",
			config.Source, config.Reference, config.Destination)
	}

	if result, err := cloneAtReference(ctx, config); err == nil {
		return result, nil
	}

	return cloneAndResolve(ctx, config)
}

// CloneReferences returns the reference names tried, in order, when the
// clone itself is pinned to the requested reference: the branch namespace
// first, then tags.
func CloneReferences(reference string) []plumbing.ReferenceName {
	return []plumbing.ReferenceName{
		plumbing.NewBranchReferenceName(reference),
		plumbing.NewTagReferenceName(reference),
	}
}

// cloneAtReference clones with the requested reference name as HEAD. Each
// failed candidate leaves a partial clone behind, which is removed before
// the next attempt.
func cloneAtReference(ctx context.Context, config *FetchConfig) (*FetchResult, error) {
	var lastErr error

	for _, refName := range CloneReferences(config.Reference) {
		cloneOpts := &git.CloneOptions{
			URL:           config.Source,
			ReferenceName: refName,
			SingleBranch:  true,
			Progress:      nil,
		}
		if config.Verbose {
			cloneOpts.Progress = config.Progress
		}

		// The context aborts an in-progress transfer on interrupt
		repo, err := git.PlainCloneContext(ctx, config.Destination, false, cloneOpts)
		if err != nil {
			lastErr = err
			_ = os.RemoveAll(config.Destination)
			continue
		}

		head, err := repo.Head()
		if err != nil {
			return nil, fmt.Errorf("failed to read HEAD after clone: %w", err)
		}

		if config.Verbose {
			fmt.Fprintf(config.Progress, "Checked out %s at %s\n", config.Reference, head.Hash())
		}

		return &FetchResult{
			Source:      config.Source,
			Destination: config.Destination,
			SourceType:  SourceTypeGit,
			Reference:   config.Reference,
			CommitHash:  head.Hash().String(),
		}, nil
	}

	return nil, fmt.Errorf("failed to clone at reference %q: %w", config.Reference, lastErr)
}

// cloneAndResolve fetches the full repository and resolves the reference
// locally. This is the path taken for commit hashes and abbreviated names.
func cloneAndResolve(ctx context.Context, config *FetchConfig) (*FetchResult, error) {
	cloneOpts := &git.CloneOptions{
		URL:      config.Source,
		Progress: nil,
		Tags:     git.AllTags,
	}
	if config.Verbose {
		cloneOpts.Progress = config.Progress
	}

	repo, err := git.PlainCloneContext(ctx, config.Destination, false, cloneOpts)
	if err != nil {
		// Clean up partial clone on failure
		_ = os.RemoveAll(config.Destination)
		return nil, fmt.Errorf("failed to clone repository: %w", err)
	}

	hash, err := resolveReference(repo, config.Reference)
	if err != nil {
		return nil, err
	}

	// A repository without a working tree (bare clone) cannot be built from
	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("workspace directory not found: %w", err)
	}

	if err := worktree.Checkout(&git.CheckoutOptions{Hash: hash, Force: true}); err != nil {
		return nil, fmt.Errorf("failed to checkout %q: %w", config.Reference, err)
	}

	if config.Verbose {
		fmt.Fprintf(config.Progress, "Checked out %s at %s\n", config.Reference, hash)
	}

	return &FetchResult{
		Source:      config.Source,
		Destination: config.Destination,
		SourceType:  SourceTypeGit,
		Reference:   config.Reference,
		CommitHash:  hash.String(),
	}, nil
}

// CandidateRevisions returns the revisions tried, in order, when resolving
// a user-supplied reference: the name itself (commit hashes, local branches,
// tags), the tag namespace explicitly, then the clone's remote branches.
func CandidateRevisions(reference string) []string {
	return []string{
		reference,
		"refs/tags/" + reference,
		"refs/remotes/origin/" + reference,
	}
}

// resolveReference resolves a branch, tag, or commit-like name to a commit hash
func resolveReference(repo *git.Repository, reference string) (plumbing.Hash, error) {
	var lastErr error

	for _, candidate := range CandidateRevisions(reference) {
		hash, err := repo.ResolveRevision(plumbing.Revision(candidate))
		if err == nil {
			return *hash, nil
		}
		lastErr = err
	}

	return plumbing.ZeroHash, fmt.Errorf("failed to resolve reference %q: %w", reference, lastErr)
}
