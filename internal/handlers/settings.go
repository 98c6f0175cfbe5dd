package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"glasstodo/internal/models"
)

// GetProfile returns the saved user profile.
func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile := h.store.LoadProfile()
	if profile == nil {
		respondError(w, http.StatusNotFound, "no profile")
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// UpdateProfile saves the display name and theme choice.
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DisplayName   string `json:"display_name"`
		SelectedTheme string `json:"selected_theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}

	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		respondError(w, http.StatusBadRequest, "display_name is required")
		return
	}

	theme := models.ThemeSystem
	if req.SelectedTheme != "" {
		t, err := models.ParseTheme(req.SelectedTheme)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		theme = t
	}

	profile := models.UserProfile{DisplayName: name, SelectedTheme: theme}
	h.store.SaveProfile(profile)
	respondJSON(w, http.StatusOK, profile)
}

// GetTheme returns the saved theme preference, System when unset.
func (h *Handlers) GetTheme(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]models.Theme{"theme": h.store.LoadTheme()})
}

// UpdateTheme saves a theme preference.
func (h *Handlers) UpdateTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Theme string `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}

	theme, err := models.ParseTheme(req.Theme)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.store.SaveTheme(theme)
	respondJSON(w, http.StatusOK, map[string]models.Theme{"theme": theme})
}

// GetOnboarding reports whether onboarding has been completed.
func (h *Handlers) GetOnboarding(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]bool{"done": h.store.OnboardingDone()})
}

// SetOnboarding records the onboarding flag.
func (h *Handlers) SetOnboarding(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Done bool `json:"done"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}

	h.store.SetOnboardingDone(req.Done)
	respondJSON(w, http.StatusOK, map[string]bool{"done": req.Done})
}

// Reset clears everything: tasks, profile, theme, and onboarding flag.
func (h *Handlers) Reset(w http.ResponseWriter, r *http.Request) {
	h.store.ResetAll()
	h.svc.Reset()
	w.WriteHeader(http.StatusOK)
}
