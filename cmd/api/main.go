// Command api serves the calculator as a headless JSON API, for deployments
// that bring their own front end.
package main

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"gopower/adapters/stats/engine"
	"gopower/app"
	"gopower/domain/study"
	"gopower/internal/config"
	"gopower/internal/errors"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	service := app.NewPowerService(engine.NewTTestEngine())
	router := newRouter(service, appConfig.Study)

	addr := ":" + appConfig.Server.Port
	log.Printf("[api] power calculator API listening on %s", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server failed:", err)
	}
}

func newRouter(service *app.PowerService, defaults config.StudyConfig) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/power", handlePower(service, defaults))
	r.Post("/sample-size", handleSampleSize(service, defaults))
	r.Post("/power/sweep", handleSweep(service, defaults))

	return r
}

func handlePower(service *app.PowerService, defaults config.StudyConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req app.PowerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Design.StudentsPerTeacher == 0 {
			req.Design.StudentsPerTeacher = defaults.StudentsPerTeacher
		}
		est, err := service.EstimatePower(req)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, est)
	}
}

func handleSampleSize(service *app.PowerService, defaults config.StudyConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req app.SampleSizeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.StudentsPerTeacher == 0 {
			req.StudentsPerTeacher = defaults.StudentsPerTeacher
		}
		est, err := service.EstimateSampleSize(req)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, est)
	}
}

func handleSweep(service *app.PowerService, defaults config.StudyConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var design study.Design
		if err := json.NewDecoder(r.Body).Decode(&design); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if design.StudentsPerTeacher == 0 {
			design.StudentsPerTeacher = defaults.StudentsPerTeacher
		}
		result, err := service.PowerSweep(design)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func writeAppError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.CodeInvalidRange:
		status = http.StatusBadRequest
	case errors.CodeDegenerateInput, errors.CodeSolverFailure:
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, map[string]string{"error": err.Error(), "code": errors.GetCode(err)})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[api] response encode failed: %v", err)
	}
}
