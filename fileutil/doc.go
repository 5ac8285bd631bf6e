// Package fileutil wraps the platform file-system primitives behind a small,
// uniform API.
//
// Every function that takes a path treats the empty string as an absent path
// and fails with ErrPathMissing (or ErrSourcePathMissing / ErrTargetPathMissing
// for two-path operations) before touching the file system. Absent content,
// prefixes and suffixes are likewise the empty string; an absent line list is
// a nil or empty slice.
//
// Failures reported by the platform are returned unchanged, so callers can use
// errors.Is with fs.ErrNotExist, fs.ErrExist, fs.ErrPermission and friends.
//
// Key functionality:
//   - Reading: Exists, ReadFile, ParseFile
//   - Writing: CreateFile, WriteToFile, WriteLines, AppendToFile, AppendLines
//   - Moving: RenameFile, MoveFile, CopyFile, TruncateFile, DeleteFile
//   - Listing: ListFiles, ListDirectories, FilterByPrefix, FilterBySuffix,
//     OrderByLastModified
//   - Bundled resources: ReadResource, ParseResource
//
// Whole files are held in memory; the package does no locking and keeps no
// state between calls.
package fileutil
