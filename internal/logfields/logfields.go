package logfields

import "log/slog"

// Canonical log field names shared across packages.
const (
	KeyRenderID   = "render_id"
	KeyPage       = "page"
	KeyPackage    = "package"
	KeyClass      = "class"
	KeyAttempt    = "attempt"
	KeyDurationMS = "duration_ms"
	KeyFormat     = "format"
	KeyPath       = "path"
	KeyError      = "error"
)

func RenderID(id string) slog.Attr { return slog.String(KeyRenderID, id) }
func Page(name string) slog.Attr { return slog.String(KeyPage, name) }
func Package(name string) slog.Attr { return slog.String(KeyPackage, name) }
func Class(name string) slog.Attr { return slog.String(KeyClass, name) }
func Attempt(n int) slog.Attr { return slog.Int(KeyAttempt, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Format(f string) slog.Attr { return slog.String(KeyFormat, f) }
func Path(p string) slog.Attr { return slog.String(KeyPath, p) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
