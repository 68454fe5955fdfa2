// Package wsup holds the public types shared by the wsup command and its
// internal packages: sentinel errors, exit codes, the Logger contract and the
// identifiers used by the workshop platform.
package wsup
