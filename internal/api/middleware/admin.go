package middleware

import (
	"net/http"

	"github.com/darknight08zz/protocol456/internal/api/apierr"
	"github.com/darknight08zz/protocol456/internal/services/admin"
)

// PassphraseHeader carries the shared admin secret
const PassphraseHeader = "X-Admin-Passphrase"

// Admin creates middleware that gates requests behind the admin passphrase
func Admin(adminService *admin.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			passphrase := r.Header.Get(PassphraseHeader)
			if passphrase == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			if err := adminService.Verify(passphrase); err != nil {
				apierr.WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
