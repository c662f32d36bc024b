// Package gitrepo contains helpers for interrogating Git repositories.
//
// It exposes RepositoryManager for inspecting branches, commits, upstream
// divergence, and worktree status through read-only git queries consumed by
// the scan service.
package gitrepo
