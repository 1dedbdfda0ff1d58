// Package filesystem reads catalog documents from a base directory and
// reports changes to them.
//
// Loaded content is never refreshed in place: the watcher only tells the
// operator that a restart is needed to pick up a change.
package filesystem
