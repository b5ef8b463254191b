package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerBoardRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leaderboard", handler.GetLeaderboard)
	mux.HandleFunc("GET /v1/survivor", handler.GetSurvivorStandings)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/jobs/process-week", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunProcessWeekJob)))
}
