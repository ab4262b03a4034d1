// Package git reads a source repository through a shallow, in-memory go-git clone.
//
// It is the alternative to the forge REST API when API rate limits or private
// hosting make tree and blob requests impractical.
package git
