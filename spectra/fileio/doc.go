// Package fileio defines the contract between spectrum loading and detector
// file-format parsers.
//
// Parsers are registered per lower-case file extension in a [Registry]. Only
// the recognised detector formats (.spe, .spc, .cnf) may be registered; the
// parsers themselves live outside this module.
//
// [Glob] discovers candidate spectrum files in an [io/fs.FS] with
// doublestar patterns.
package fileio
