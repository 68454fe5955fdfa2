// Package filesystem provides the filesystem abstraction used for content and
// staging trees.
//
// The abstraction is go-billy's Filesystem, which keeps the staging code
// independent of where bytes live and lets tests inject failures.
//
// Constructors:
//   - OpenDir: OS filesystem rooted at an existing directory
//   - Host: OS filesystem addressed with host paths (explicit ignore files)
//   - NewFaulty: wrapper that fails chosen operations on chosen paths
package filesystem
