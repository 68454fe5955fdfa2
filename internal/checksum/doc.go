// Package checksum fingerprints staged content.
//
// A Tree hashes every file as it is copied and folds the per-file SHA-256
// sums, keyed by relative path, into one digest for the whole tree:
//
//   - Same selection and same bytes produce the same digest
//   - Renaming, adding, dropping, or editing any staged file changes it
//
// Two staging runs of an unchanged item therefore report the same digest,
// which tells the user whether an upload would change anything.
//
// # Example Usage
//
//	tree := checksum.NewTree()
//	f := tree.Track("maps/arena.bsp")
//	io.Copy(io.MultiWriter(dst, f), src)
//	f.Commit()
//	digest := tree.Sum()
//
// # Thread Safety
//
// A Tree is not safe for concurrent use. Files must be committed in a
// deterministic order for the digest to be reproducible.
package checksum
