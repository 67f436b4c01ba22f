package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows the listed browser origins. An empty list or "*" allows every origin.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	config := cors.DefaultConfig()
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Guest-Id", "X-Request-Id"}
	config.ExposeHeaders = []string{"X-Request-Id", "Content-Disposition"}
	config.MaxAge = 10 * time.Minute

	all, origins := parseOrigins(allowedOrigins)
	if all {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
		config.AllowCredentials = true
	}
	return cors.New(config)
}

// OriginChecker applies the CORS origin list to requests that bypass the CORS handshake,
// such as websocket upgrades. Requests without an Origin header are not from a browser and pass.
func OriginChecker(allowedOrigins []string) func(*http.Request) bool {
	all, origins := parseOrigins(allowedOrigins)
	return func(r *http.Request) bool {
		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if all || origin == "" {
			return true
		}
		for _, o := range origins {
			if strings.EqualFold(o, origin) {
				return true
			}
		}
		return false
	}
}

func parseOrigins(allowedOrigins []string) (bool, []string) {
	var origins []string
	for _, o := range allowedOrigins {
		o = strings.TrimSpace(o)
		switch {
		case o == "*":
			return true, nil
		case strings.HasPrefix(o, "http://") || strings.HasPrefix(o, "https://"):
			origins = append(origins, o)
		}
	}
	return len(origins) == 0, origins
}
