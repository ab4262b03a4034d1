package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID       = "run_id"
	KeyJob         = "job"
	KeyRepo        = "repository"
	KeyBranch      = "branch"
	KeyPath        = "path"
	KeyDestination = "destination"
	KeyAction      = "action"
	KeyStatus      = "status"
	KeyCount       = "count"
	KeyURL         = "url"
	KeyForgeType   = "forge_type"
	KeyDurationMS  = "duration_ms"
	KeyError       = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr        { return slog.String(KeyRunID, id) }
func Job(name string) slog.Attr        { return slog.String(KeyJob, name) }
func Repository(r string) slog.Attr    { return slog.String(KeyRepo, r) }
func Branch(b string) slog.Attr        { return slog.String(KeyBranch, b) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Destination(p string) slog.Attr   { return slog.String(KeyDestination, p) }
func Action(name string) slog.Attr     { return slog.String(KeyAction, name) }
func Status(s string) slog.Attr        { return slog.String(KeyStatus, s) }
func Count(n int) slog.Attr            { return slog.Int(KeyCount, n) }
func URL(u string) slog.Attr           { return slog.String(KeyURL, u) }
func ForgeType(t string) slog.Attr     { return slog.String(KeyForgeType, t) }
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
