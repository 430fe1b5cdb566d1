package api

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/serialform/internal/docerr"
	"github.com/dgallion1/serialform/internal/render"
	"github.com/dgallion1/serialform/internal/serialform"
)

// handlePage renders a fresh page in format f for every request.
func (s *Server) handlePage(f render.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		pr := serialform.PrinterFunc(func(doc *serialform.Document) error {
			buf.Reset()
			return render.Encode(&buf, doc, f, s.html)
		})
		if err := s.src.Current().Run(r.Context(), pr, string(f)); err != nil {
			jsonError(w, "render failed: "+err.Error(), statusFor(err))
			return
		}

		sum := sha256.Sum256(buf.Bytes())
		etag := `"` + hex.EncodeToString(sum[:]) + `"`
		w.Header().Set("ETag", etag)
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}

		w.Header().Set("Content-Type", f.ContentType())
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		if f == render.FormatDOCX {
			w.Header().Set("Content-Disposition", `attachment; filename="`+f.FileName()+`"`)
		}
		w.Write(buf.Bytes())
	}
}

// handleClassVisible reports whether a class is linked on the page.
func (s *Server) handleClassVisible(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	gen := s.src.Current()
	c, ok := gen.Set().Lookup(name)
	if !ok {
		jsonError(w, "unknown class: "+name, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"class":   c.Name,
		"visible": gen.Writer().IsVisibleClass(c),
	})
}

func statusFor(err error) int {
	switch docerr.GetCategory(err) {
	case docerr.CategoryOutput:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
