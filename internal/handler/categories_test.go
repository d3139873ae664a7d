// Copyright (c) 2025-2026 Joao M. Ribeiro
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"testing"

	"github.com/jmribeiro/newsdesk-go/internal/model"
)

func TestListCategories_Public(t *testing.T) {
	ts := newTestServer(t)

	ts.createCategory(t, "Mundo")
	ts.createCategory(t, "Local")

	resp, err := http.Get(ts.URL + "/api/categories")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)

	var categories []CategoryResponse
	decodeData(t, resp, &categories)
	if len(categories) != 2 {
		t.Fatalf("len = %d, want 2", len(categories))
	}
	// Ordered by name
	if categories[0].Name != "Local" || categories[1].Name != "Mundo" {
		t.Errorf("order = %q, %q", categories[0].Name, categories[1].Name)
	}
}

func TestGetCategory_Public(t *testing.T) {
	ts := newTestServer(t)
	ts.createCategory(t, "Política Nacional")

	resp, err := http.Get(ts.URL + "/api/categories/politica-nacional")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)

	var got CategoryResponse
	decodeData(t, resp, &got)
	if got.Name != "Política Nacional" {
		t.Errorf("name = %q", got.Name)
	}
	if got.Color != model.DefaultCategoryColor {
		t.Errorf("color = %q, want default", got.Color)
	}

	resp, err = http.Get(ts.URL + "/api/categories/no-such")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing slug status = %d, want 404", resp.StatusCode)
	}
}

func TestCreateCategory(t *testing.T) {
	ts := newTestServer(t)
	client := newClient(t)

	ts.createUser(t, "ana@example.com", model.RoleAdmin)
	ts.login(t, client, "ana@example.com")

	resp := doJSON(t, client, http.MethodPost, ts.URL+"/api/admin/categories", map[string]any{
		"name":  "Desporto",
		"color": "#FF5733",
	})
	assertStatus(t, resp, http.StatusCreated)

	var got CategoryResponse
	decodeData(t, resp, &got)
	if got.Slug != "desporto" {
		t.Errorf("slug = %q", got.Slug)
	}
	if got.Color != "#FF5733" {
		t.Errorf("color = %q", got.Color)
	}

	// Same name again collides on the slug
	resp = doJSON(t, client, http.MethodPost, ts.URL+"/api/admin/categories", map[string]any{"name": "Desporto"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("duplicate status = %d, want 409", resp.StatusCode)
	}
}

func TestCreateCategory_InvalidColor(t *testing.T) {
	ts := newTestServer(t)
	client := newClient(t)

	ts.createUser(t, "ana@example.com", model.RoleAdmin)
	ts.login(t, client, "ana@example.com")

	resp := doJSON(t, client, http.MethodPost, ts.URL+"/api/admin/categories", map[string]any{
		"name":  "Cor inválida",
		"color": "blue",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", resp.StatusCode)
	}
}

func TestUpdateCategory(t *testing.T) {
	ts := newTestServer(t)
	client := newClient(t)

	ts.createUser(t, "ana@example.com", model.RoleAdmin)
	category := ts.createCategory(t, "Economia")
	ts.login(t, client, "ana@example.com")

	resp := doJSON(t, client, http.MethodPut, ts.URL+"/api/admin/categories/"+category.ID, map[string]any{
		"name": "Economia e Negócios",
	})
	assertStatus(t, resp, http.StatusOK)

	var got CategoryResponse
	decodeData(t, resp, &got)
	if got.Name != "Economia e Negócios" {
		t.Errorf("name = %q", got.Name)
	}
	// Renames keep the published slug stable
	if got.Slug != "economia" {
		t.Errorf("slug = %q, want economia", got.Slug)
	}
}

func TestDeleteCategory(t *testing.T) {
	ts := newTestServer(t)
	client := newClient(t)

	author := ts.createUser(t, "ana@example.com", model.RoleAdmin)
	category := ts.createCategory(t, "Passageira")
	article := ts.createArticle(t, "Sobrevivente", model.StatusPublished, category.ID, author.ID)
	ts.login(t, client, "ana@example.com")

	resp := doJSON(t, client, http.MethodDelete, ts.URL+"/api/admin/categories/"+category.ID, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", resp.StatusCode)
	}

	// The article survives with its category detached
	resp = doJSON(t, client, http.MethodGet, ts.URL+"/api/admin/articles/"+article.ID, nil)
	assertStatus(t, resp, http.StatusOK)
	var got ArticleResponse
	decodeData(t, resp, &got)
	if got.Category != nil {
		t.Errorf("category = %+v, want detached", got.Category)
	}

	resp = doJSON(t, client, http.MethodDelete, ts.URL+"/api/admin/categories/"+category.ID, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", resp.StatusCode)
	}
}
