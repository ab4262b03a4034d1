// Package sync runs the mirroring pipeline: list the source repository, filter
// each job's files, transform every file into a rendered document and write it
// under the destination root.
//
// Processing is sequential. A fatal error stops the run; files already written
// stay in place and a rerun converges because every step is deterministic.
package sync
