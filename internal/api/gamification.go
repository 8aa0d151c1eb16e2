package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ritual-sh/ritual/internal/domain"
)

// ─── Points (/api/gamification/points) ──────────────────────────────────────

// queryDay resolves the optional ?date=YYYY-MM-DD parameter, defaulting
// to today.
func queryDay(r *http.Request) (domain.Day, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return domain.Today(), nil
	}
	return domain.ParseDay(raw)
}

func (s *Server) handleDailyPoints(w http.ResponseWriter, r *http.Request) {
	day, err := queryDay(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	breakdown, err := s.points.Daily(day)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, breakdown)
}

func (s *Server) handleWeeklyPoints(w http.ResponseWriter, r *http.Request) {
	day, err := queryDay(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := s.points.Weekly(day)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleMonthlyPoints(w http.ResponseWriter, r *http.Request) {
	today := domain.Today()
	year := today.Time().Year()
	month := int(today.Time().Month())

	q := r.URL.Query()
	if raw := q.Get("year"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid year")
			return
		}
		year = v
	}
	if raw := q.Get("month"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid month")
			return
		}
		month = v
	}

	summary, err := s.points.Monthly(year, month, today)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRange) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleLifetimePoints(w http.ResponseWriter, r *http.Request) {
	summary, err := s.points.Lifetime(domain.Today())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// ─── Streaks (/api/gamification/streaks) ────────────────────────────────────

func (s *Server) handleStreaks(w http.ResponseWriter, r *http.Request) {
	day, err := queryDay(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	streaks, err := s.streaks.All(day)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, streaks)
}

// ─── Level (/api/gamification/level) ────────────────────────────────────────

func (s *Server) handleLevel(w http.ResponseWriter, r *http.Request) {
	status, err := s.levels.Current()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, status)
}

type addXPRequest struct {
	Amount int `json:"amount"`
}

func (s *Server) handleAddXP(w http.ResponseWriter, r *http.Request) {
	var req addXPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.levels.AddXP(req.Amount)
	if err != nil {
		if errors.Is(err, domain.ErrNegativeXP) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ─── Achievements (/api/gamification/achievements) ──────────────────────────

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	entries, err := s.achievements.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"achievements": entries,
	})
}

func (s *Server) handleRecentAchievements(w http.ResponseWriter, r *http.Request) {
	limit := 5
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = v
	}

	entries, err := s.achievements.Recent(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"achievements": entries,
	})
}

func (s *Server) handleUnlockAchievement(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	result, err := s.achievements.Unlock(key)
	if err != nil {
		if errors.Is(err, domain.ErrAchievementNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ─── Freeze Tokens (/api/gamification/freeze) ───────────────────────────────

func (s *Server) handleFreezeStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.freezes.Current()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleFreezeEarn(w http.ResponseWriter, r *http.Request) {
	result, err := s.freezes.Earn()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleFreezeUse(w http.ResponseWriter, r *http.Request) {
	result, err := s.freezes.Use()
	if err != nil {
		if errors.Is(err, domain.ErrNoFreezeToken) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}
