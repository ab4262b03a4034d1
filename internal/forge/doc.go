// Package forge reads repository trees and file blobs through forge REST APIs
// (GitHub, GitLab, Forgejo) and builds web URLs for repository files.
package forge
