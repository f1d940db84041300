package main

import (
	"encoding/json"
	"net/http"
	"strconv"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeHTTPError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": code})
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func decodeActor(w http.ResponseWriter, r *http.Request, req *actorRequest) bool {
	if err := decodeJSON(r, req); err != nil {
		writeHTTPError(w, http.StatusBadRequest, "invalid_body")
		return false
	}
	if req.Identity == 0 {
		writeHTTPError(w, http.StatusBadRequest, "identity_required")
		return false
	}
	return true
}

func parseIdentityQuery(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.URL.Query().Get("identity")
	identity, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || identity == 0 {
		writeHTTPError(w, http.StatusBadRequest, "identity_required")
		return 0, false
	}
	return identity, true
}

func parseLimit(r *http.Request, def int) int {
	raw := r.URL.Query().Get("n")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
