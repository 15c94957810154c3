package admin_auth_controller

import "github.com/bodthegod/jpperformancecars-backend/services"

var (
	sessionService *services.AdminSessionService
	secureCookie   bool
)

// Init wires the session store used by login and logout. secure marks the
// admin_token cookie Secure, which production requires.
func Init(sessions *services.AdminSessionService, secure bool) {
	sessionService = sessions
	secureCookie = secure
}
