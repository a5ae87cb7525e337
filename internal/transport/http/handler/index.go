package handler

import "net/http"

// Index lists the available endpoint groups, matching what the admin client
// probes on first load.
func Index(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Peta Rawan Narkoba API",
		"endpoints": map[string]string{
			"auth":          "/api/auth",
			"banner":        "/api/banner",
			"logo":          "/api/logo",
			"locations":     "/api/locations",
			"news":          "/api/news",
			"notifications": "/api/notifications",
			"health":        "/api/health",
		},
	})
}
