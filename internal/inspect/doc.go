// Package inspect implements the repository scan pipeline used by the
// gitscope CLI.
//
// It exposes Service for driving discovery, per-repository inspection,
// progress estimation, and dashboard rendering, along with the supporting
// abstractions for Git, filesystem, and rendering collaborators.
package inspect
