package main

import (
	"errors"
	"net/http"

	"coin-bank/internal/ledger"
	"coin-bank/internal/store"
	"coin-bank/internal/wager"
)

type actorRequest struct {
	Identity int64  `json:"identity"`
	Name     string `json:"name"`
}

type wagerRequest struct {
	Identity int64  `json:"identity"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
}

func healthHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := st.Ping(r.Context()); err != nil {
			writeHTTPError(w, http.StatusServiceUnavailable, "db_unavailable")
			return
		}
		writeJSON(w, map[string]any{"status": "ok"})
	}
}

func registerHandler(eng *ledger.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req actorRequest
		if !decodeActor(w, r, &req) {
			return
		}
		res, err := eng.Register(r.Context(), req.Identity, req.Name)
		if err != nil {
			writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		writeJSON(w, res)
	}
}

func profileHandler(eng *ledger.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := parseIdentityQuery(w, r)
		if !ok {
			return
		}
		res, err := eng.Profile(r.Context(), identity, r.URL.Query().Get("name"))
		if err != nil {
			writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		writeJSON(w, res)
	}
}

func bankHandler(eng *ledger.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := eng.BankInfo(r.Context())
		if err != nil {
			writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		writeJSON(w, res)
	}
}

func bonusHandler(eng *ledger.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req actorRequest
		if !decodeActor(w, r, &req) {
			return
		}
		res, err := eng.ClaimBonus(r.Context(), req.Identity, req.Name)
		if err != nil {
			writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		writeJSON(w, res)
	}
}

func loanHandler(eng *ledger.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req actorRequest
		if !decodeActor(w, r, &req) {
			return
		}
		res, err := eng.ClaimLoan(r.Context(), req.Identity, req.Name)
		if err != nil {
			writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		writeJSON(w, res)
	}
}

func wagerHandler(eng *ledger.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req wagerRequest
		if err := decodeJSON(r, &req); err != nil {
			writeHTTPError(w, http.StatusBadRequest, "invalid_body")
			return
		}
		if req.Identity == 0 {
			writeHTTPError(w, http.StatusBadRequest, "identity_required")
			return
		}
		res, err := eng.PlaceWager(r.Context(), req.Identity, req.Name, wager.Kind(req.Kind))
		if errors.Is(err, wager.ErrUnknownKind) {
			writeHTTPError(w, http.StatusBadRequest, "unknown_wager_kind")
			return
		}
		if err != nil {
			writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		writeJSON(w, res)
	}
}

func leaderboardHandler(eng *ledger.Engine, defaultLimit int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n := parseLimit(r, defaultLimit)
		rows, err := eng.Leaderboard(r.Context(), n)
		if err != nil {
			writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		writeJSON(w, map[string]any{"items": rows})
	}
}
