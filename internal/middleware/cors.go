package middleware

import (
	"net/http"

	"github.com/hulukipedia/gateway/internal/utils"
)

// CORSMiddleware allows every origin, method and header. A request Origin is
// echoed back together with Allow-Credentials.
func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := w.Header()
		if origin := r.Header.Get("Origin"); origin != "" {
			header.Set(utils.HeaderAccessControlAllowOrigin, origin)
			header.Set(utils.HeaderAccessControlAllowCredentials, utils.CORSAllowCredentials)
			header.Add("Vary", "Origin")
		} else {
			header.Set(utils.HeaderAccessControlAllowOrigin, utils.CORSAllowOriginAll)
		}
		header.Set(utils.HeaderAccessControlAllowMethods, utils.CORSAllowMethodsAll)
		if requested := r.Header.Get("Access-Control-Request-Headers"); requested != "" {
			header.Set(utils.HeaderAccessControlAllowHeaders, requested)
		} else {
			header.Set(utils.HeaderAccessControlAllowHeaders, utils.CORSAllowHeadersAll)
		}
		header.Set(utils.HeaderAccessControlExposeHeaders, utils.CORSExposeHeadersStd)

		// Handle preflight requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
