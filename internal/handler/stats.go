// Copyright (c) 2025-2026 Joao M. Ribeiro
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import "net/http"

// Stats handles GET /api/stats: dashboard aggregates.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.queries.GetStats(r.Context())
	if err != nil {
		writeStoreError(w, err, "stats")
		return
	}
	WriteSuccess(w, stats, nil)
}
