// Copyright (c) 2025-2026 Joao M. Ribeiro
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/jmribeiro/newsdesk-go/internal/middleware"
	"github.com/jmribeiro/newsdesk-go/internal/transfer"
)

// ExportContent handles GET /api/admin/export: the full content
// archive as a JSON document.
func (h *Handler) ExportContent(w http.ResponseWriter, r *http.Request) {
	data, err := transfer.NewExporter(h.queries, slog.Default()).Export(r.Context())
	if err != nil {
		slog.Error("content export failed", "error", err)
		WriteInternalError(w, "Failed to export content")
		return
	}

	slog.Info("content exported", "user_id", middleware.GetUserID(r))
	w.Header().Set("Content-Disposition", `attachment; filename="newsdesk-export.json"`)
	WriteJSON(w, http.StatusOK, data)
}

// ImportContent handles POST /api/admin/import. Pass ?dry_run=true to
// validate and count without writing.
func (h *Handler) ImportContent(w http.ResponseWriter, r *http.Request) {
	opts := transfer.DefaultImportOptions()
	opts.DryRun = r.URL.Query().Get("dry_run") == "true"

	importer := transfer.NewImporter(h.queries, slog.Default())
	result, err := importer.ImportFromReader(r.Context(), r.Body, opts)
	if err != nil {
		WriteBadRequest(w, "Invalid export document", nil)
		return
	}

	slog.Info("content import finished",
		"user_id", middleware.GetUserID(r),
		"dry_run", result.DryRun,
		"created", result.TotalCreated(),
		"skipped", result.TotalSkipped(),
		"errors", len(result.Errors))
	WriteSuccess(w, result, nil)
}
