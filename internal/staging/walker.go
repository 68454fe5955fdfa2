package staging

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"github.com/vvka-141/wsup/internal/checksum"
	"github.com/vvka-141/wsup/internal/files/filesystem"
	"github.com/vvka-141/wsup/pkg/wsup"
)

// Entry is one path visited during a walk.
type Entry struct {
	// Path is slash-separated and relative to the content root.
	Path  string
	IsDir bool
	// Depth is 1 for direct children of the root.
	Depth int
}

// Result summarizes a walk.
type Result struct {
	// Files are the copied files in traversal order.
	Files []string
	// Dirs are the directories created in the staging tree, parents first.
	Dirs []string
	// Excluded lists entries left out by a rule. Children of a pruned
	// directory are not listed.
	Excluded []Entry
	Warnings []Warning
	// Bytes is the total size of the copied files.
	Bytes int64
	// Digest fingerprints the copied files, their paths and their content.
	// Unchanged content staged with the same rules has the same digest.
	Digest string
}

type walker struct {
	src   filesystem.FileSystem
	dst   filesystem.FileSystem
	rules *RuleSet
	log   wsup.Logger

	result  *Result
	created map[string]bool
	tree    *checksum.Tree
}

// Walk copies every entry of src that rules include into dst, mirroring
// relative paths. dst must exist; src is never modified.
//
// Per-entry read problems become warnings in the result. A directory or file
// that cannot be written to dst aborts the walk with a *MaterializeError; the
// partial staging tree is left for the caller to discard.
func Walk(src, dst filesystem.FileSystem, rules *RuleSet, log wsup.Logger) (*Result, error) {
	w := &walker{
		src:     src,
		dst:     dst,
		rules:   rules,
		log:     log,
		result:  &Result{},
		created: make(map[string]bool),
		tree:    checksum.NewTree(),
	}

	infos, err := src.ReadDir(".")
	if err != nil {
		return nil, fmt.Errorf("failed to read content root: %w", err)
	}

	if _, err := w.walkDir("", nil, infos, rules.explicit); err != nil {
		return w.result, err
	}
	w.result.Digest = w.tree.Sum()
	return w.result, nil
}

// walkDir visits the children of rel and reports whether anything was
// materialized beneath it.
func (w *walker) walkDir(rel string, parts []string, infos []os.FileInfo, inherited []gitignore.Pattern) (bool, error) {
	slices.SortFunc(infos, func(a, b os.FileInfo) int {
		return strings.Compare(nameOf(a), nameOf(b))
	})

	scoped := w.discoverIgnores(rel, parts, infos, inherited)
	matcher := gitignore.NewMatcher(scoped)
	depth := len(parts) + 1

	materialized := false
	for _, info := range infos {
		if info == nil {
			w.warn(rel, fmt.Errorf("unreadable directory entry"))
			continue
		}

		name := info.Name()
		childRel := path.Join(rel, name)
		childParts := append(slices.Clip(parts), name)

		kind, target := w.classify(childRel, info)
		if kind == kindSkip {
			continue
		}
		isDir := kind == kindDir

		decision, layer := w.rules.decide(childParts, isDir, matcher)
		if decision == DecisionExclude {
			w.log.Verbose("Excluding from item content", "path", childRel, "dir", isDir, "rule", layer)
			w.result.Excluded = append(w.result.Excluded, Entry{Path: childRel, IsDir: isDir, Depth: depth})
			continue
		}

		if isDir {
			children, err := w.src.ReadDir(toOS(childRel))
			if err != nil {
				w.warn(childRel, err)
				continue
			}

			if len(children) == 0 {
				if err := w.ensureDir(childRel); err != nil {
					return materialized, err
				}
				materialized = true
				continue
			}

			ok, err := w.walkDir(childRel, childParts, children, scoped)
			if err != nil {
				return materialized, err
			}
			materialized = materialized || ok
			continue
		}

		ok, err := w.copyFile(childRel, target)
		if err != nil {
			return materialized, err
		}
		materialized = materialized || ok
	}

	return materialized, nil
}

type entryKind int

const (
	kindSkip entryKind = iota
	kindFile
	kindDir
)

// classify resolves symbolic links and reports what to do with an entry.
// Links to directories are not followed; dangling links and special files are
// skipped without a warning.
func (w *walker) classify(rel string, info os.FileInfo) (entryKind, os.FileInfo) {
	mode := info.Mode()

	if mode&os.ModeSymlink != 0 {
		target, err := w.src.Stat(toOS(rel))
		if err != nil {
			w.log.Verbose("Skipping dangling link", "path", rel, "error", err)
			return kindSkip, nil
		}
		if target.IsDir() {
			w.log.Verbose("Skipping link to directory", "path", rel)
			return kindSkip, nil
		}
		info, mode = target, target.Mode()
	}

	switch {
	case mode.IsDir():
		return kindDir, info
	case mode.IsRegular():
		return kindFile, info
	default:
		w.log.Verbose("Skipping special file", "path", rel, "mode", mode.String())
		return kindSkip, nil
	}
}

// discoverIgnores appends the ignore files found in rel to the inherited
// patterns. Later patterns win, so deeper directories override shallower ones
// and .ignore overrides .gitignore.
func (w *walker) discoverIgnores(rel string, parts []string, infos []os.FileInfo, inherited []gitignore.Pattern) []gitignore.Pattern {
	scoped := slices.Clip(inherited)

	for _, name := range w.rules.ignoreFileNames {
		idx := slices.IndexFunc(infos, func(fi os.FileInfo) bool {
			return fi != nil && fi.Name() == name && !fi.IsDir()
		})
		if idx < 0 {
			continue
		}

		file := path.Join(rel, name)
		content, err := filesystem.ReadFile(w.src, toOS(file))
		if err != nil {
			w.warn(file, err)
			continue
		}

		patterns, errs := parseIgnore(bytes.NewReader(content), slices.Clone(parts), file)
		for _, perr := range errs {
			w.warn(file, perr)
		}
		if len(patterns) > 0 {
			w.log.Verbose("Applying ignore file", "path", file, "patterns", len(patterns))
			scoped = append(scoped, patterns...)
		}
	}

	return scoped
}

// copyFile mirrors one file into dst. A source that cannot be opened is a
// warning; any failure on the destination side is fatal.
func (w *walker) copyFile(rel string, info os.FileInfo) (bool, error) {
	in, err := w.src.Open(toOS(rel))
	if err != nil {
		w.warn(rel, err)
		return false, nil
	}
	defer in.Close()

	if err := w.ensureDir(path.Dir(rel)); err != nil {
		return false, err
	}

	out, err := w.dst.OpenFile(toOS(rel), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return false, &MaterializeError{Op: "copy", Path: rel, Err: err}
	}

	sum := w.tree.Track(rel)
	n, err := io.Copy(io.MultiWriter(out, sum), in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return false, &MaterializeError{Op: "copy", Path: rel, Err: err}
	}
	sum.Commit()

	w.log.Verbose("Adding to item content", "file", rel, "bytes", n)
	w.result.Files = append(w.result.Files, rel)
	w.result.Bytes += n
	return true, nil
}

// ensureDir creates rel and any missing parents in dst, recording each.
func (w *walker) ensureDir(rel string) error {
	if rel == "." || rel == "" || w.created[rel] {
		return nil
	}
	if err := w.ensureDir(path.Dir(rel)); err != nil {
		return err
	}

	if err := w.dst.MkdirAll(toOS(rel), 0o755); err != nil {
		return &MaterializeError{Op: "mkdir", Path: rel, Err: err}
	}
	w.created[rel] = true
	w.result.Dirs = append(w.result.Dirs, rel)
	return nil
}

func (w *walker) warn(rel string, err error) {
	if rel == "" {
		rel = "."
	}
	w.log.Warn("Skipping entry", "path", rel, "error", err)
	w.result.Warnings = append(w.result.Warnings, Warning{Path: rel, Err: err})
}

func nameOf(fi os.FileInfo) string {
	if fi == nil {
		return ""
	}
	return fi.Name()
}

func toOS(rel string) string {
	if rel == "" {
		return "."
	}
	return filepath.FromSlash(rel)
}
