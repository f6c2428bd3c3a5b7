package auth

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	authmw "github.com/trashquiz/trashquiz/internal/auth/middleware"
	"github.com/trashquiz/trashquiz/internal/config"
)

// GuestLoginHandler issues a guest identity. Guests are never written to the
// database: their scores and history live in the local bounded store only.
func GuestLoginHandler(a *authmw.AuthService, cfg config.Config) http.HandlerFunc {
	type out struct {
		AccessToken string `json:"access_token"`
		Username    string `json:"username"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if !cfg.EnableGuestAuth {
			http.Error(w, "guest auth disabled", http.StatusForbidden)
			return
		}

		// Reuse an existing guest identity from the cookie when present.
		if c, err := r.Cookie("tq_guest_id"); err == nil && authmw.IsGuest(c.Value) {
			username := guestName(strings.TrimPrefix(c.Value, "guest|"))
			tok, err := a.IssueJWT(c.Value, username)
			if err == nil {
				refreshGuestCookie(w, c.Value)
				_ = json.NewEncoder(w).Encode(out{AccessToken: tok, Username: username})
				return
			}
		}

		sfx := strconv.FormatInt(time.Now().UnixNano(), 36)
		userID := "guest|" + sfx
		username := guestName(sfx)

		tok, err := a.IssueJWT(userID, username)
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		refreshGuestCookie(w, userID)
		_ = json.NewEncoder(w).Encode(out{AccessToken: tok, Username: username})
	}
}

func guestName(sfx string) string {
	if len(sfx) > 6 {
		sfx = sfx[len(sfx)-6:]
	}
	return "guest-" + sfx
}

func refreshGuestCookie(w http.ResponseWriter, userID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "tq_guest_id",
		Value:    userID,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
		Expires:  time.Now().Add(30 * 24 * time.Hour),
	})
}
