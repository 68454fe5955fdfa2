// Package staging produces the filtered copy of a content directory that is
// uploaded as a workshop item.
//
// Staging happens in two steps:
//   - BuildRules assembles the override layer (the protected metadata file
//     plus user globs) and the explicit ignore files into a RuleSet.
//   - Walk descends the content tree once, discovers .gitignore and .ignore
//     files per directory, and copies every included file into the staging
//     tree, mirroring relative paths.
//
// Stager wraps both steps with input validation and temporary directory
// handling.
//
// # Precedence
//
// Override globs beat every ignore file. Within the override layer the last
// matching glob wins; a plain glob includes, a "!" glob excludes. When at
// least one including glob is given, files no override matches are left out.
// Below the override layer, deeper ignore files beat shallower ones, .ignore
// beats .gitignore in the same directory, and explicit ignore files rank
// lowest.
//
// The metadata file at the content root (workshop.toml) is protected: once it
// matched, only a later override naming it literally can exclude it again.
package staging
