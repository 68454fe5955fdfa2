package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
)

// Tree accumulates the digest of a set of files.
type Tree struct {
	h     hash.Hash
	files int
}

// NewTree creates an empty tree digest.
func NewTree() *Tree {
	return &Tree{h: sha256.New()}
}

// Track starts hashing the content of the file at path. Write the content to
// the returned File, then Commit it. A File that is never committed leaves
// the tree unchanged.
func (t *Tree) Track(path string) *File {
	return &File{tree: t, path: path, h: sha256.New()}
}

// Sum returns the hex digest of every committed file. An empty tree has the
// digest of no input.
func (t *Tree) Sum() string {
	return hex.EncodeToString(t.h.Sum(nil))
}

// Files returns how many files were committed.
func (t *Tree) Files() int {
	return t.files
}

// File hashes one file's content.
type File struct {
	tree *Tree
	path string
	h    hash.Hash
}

var _ io.Writer = (*File)(nil)

// Write implements io.Writer.
func (f *File) Write(p []byte) (int, error) {
	return f.h.Write(p)
}

// Commit records the file in its tree and returns the file's own hex digest.
func (f *File) Commit() string {
	sum := hex.EncodeToString(f.h.Sum(nil))

	// NUL cannot occur in a path, so entries cannot run into each other.
	io.WriteString(f.tree.h, f.path)
	f.tree.h.Write([]byte{0})
	io.WriteString(f.tree.h, sum)
	f.tree.h.Write([]byte{'\n'})

	f.tree.files++
	return sum
}

// Sum returns the hex SHA-256 of content.
func Sum(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
