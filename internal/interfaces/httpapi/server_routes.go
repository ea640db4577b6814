package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/standings", handler.GetStandings)
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/games", handler.ListGames)
	mux.HandleFunc("GET /v1/entries/{entryID}/players/{playerID}/stats", handler.GetRosterPlayerStats)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, adminKey string) {
	mux.Handle("POST /v1/admin/fetch-stats", RequireAdminKey(adminKey, http.HandlerFunc(handler.FetchStats)))
	mux.Handle("POST /v1/admin/upload-stats", RequireAdminKey(adminKey, http.HandlerFunc(handler.UploadStats)))
	mux.Handle("POST /v1/admin/recalculate", RequireAdminKey(adminKey, http.HandlerFunc(handler.Recalculate)))
}
