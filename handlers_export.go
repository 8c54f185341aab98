package main

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"terrawatch/export"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// handleExport streams the report artifact for the render pass named by the
// export token. The token carries the report that was displayed, so the
// download matches it and the generator is not called again.
func (a *App) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	claims := mustExportClaims(r)
	if claims == nil {
		http.Error(w, "missing export token", http.StatusUnauthorized)
		return
	}
	period, err := claims.period()
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	zone, err := a.ctrl.SelectZone(claims.Zone)
	if err != nil {
		writeEvaluateError(w, r, err)
		return
	}
	artifact, err := export.Build(format, zone, period, *claims.Report)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to build export")
		http.Error(w, "export error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", contentDisposition(artifact.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(artifact.Data)))
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(artifact.Data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to write export")
	}
}

// contentDisposition sets both an ASCII-safe and an RFC 5987 filename so zone
// names with accents survive.
func contentDisposition(filename string) string {
	return fmt.Sprintf("attachment; filename=%q; filename*=UTF-8''%s", asciiFilename(filename), url.PathEscape(filename))
}

func asciiFilename(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r < 0x20 || r > 0x7e || r == '"' || r == '\\' {
			r = '_'
		}
		out = append(out, r)
	}
	return string(out)
}
