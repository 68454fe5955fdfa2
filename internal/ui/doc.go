// Package ui holds the console prompts that guard staging into a directory
// which already has content.
package ui
