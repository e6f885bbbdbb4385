package shelter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func RegisterRoutes(r chi.Router, store *Store) {
	r.Route("/dogs", func(dr chi.Router) {
		dr.Get("/", listDogsHandler(store))
		dr.Post("/", createDogHandler(store))

		dr.Get("/{dogID}", getDogHandler(store))
		dr.Put("/{dogID}", updateDogHandler(store))
		dr.Delete("/{dogID}", deleteDogHandler(store))

		// Inicio de prueba (workflow)
		dr.Post("/{dogID}/trial", startTrialHandler(store))
	})

	r.Route("/adoptions", func(ar chi.Router) {
		ar.Get("/", listAdoptionsHandler(store))
		ar.Post("/{adoptionID}/decision", completeTrialHandler(store))
	})
}

type dogRequest struct {
	Name        string `json:"name"`
	Breed       string `json:"breed"`
	Age         int    `json:"age"`
	Size        string `json:"size"`
	Gender      string `json:"gender"`
	Description string `json:"description"`
	Personality string `json:"personality"`
	ImageURL    string `json:"imageUrl"`
}

type startTrialRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type decisionRequest struct {
	Decision string `json:"decision"` // Adopt | Return
}

func listDogsHandler(store *Store) http.HandlerFunc {
	// La vista filtrada/ordenada que consume el listado público.
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		f := FilterSpec{
			Breed:  strings.TrimSpace(q.Get("breed")),
			Size:   Size(strings.TrimSpace(q.Get("size"))),
			Status: Status(strings.TrimSpace(q.Get("status"))),
			Gender: Gender(strings.TrimSpace(q.Get("gender"))),
		}
		if v := strings.TrimSpace(q.Get("max_age")); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				http.Error(w, "max_age must be a non-negative integer", http.StatusBadRequest)
				return
			}
			f.MaxAge = n
		}

		// Defaults del listado original: nombre ascendente.
		sortSpec := SortSpec{Field: SortByName, Direction: SortAsc}
		if v := strings.TrimSpace(q.Get("sort")); v != "" {
			switch SortField(v) {
			case SortByName, SortByBreed, SortByAge:
				sortSpec.Field = SortField(v)
			default:
				http.Error(w, "sort must be one of name, breed, age", http.StatusBadRequest)
				return
			}
		}
		if v := strings.TrimSpace(q.Get("direction")); v != "" {
			switch SortDirection(v) {
			case SortAsc, SortDesc:
				sortSpec.Direction = SortDirection(v)
			default:
				http.Error(w, "direction must be asc or desc", http.StatusBadRequest)
				return
			}
		}

		writeJSON(w, http.StatusOK, Query(store.Dogs(), f, sortSpec))
	}
}

func createDogHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dogRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Breed) == "" {
			http.Error(w, "name and breed are required", http.StatusBadRequest)
			return
		}
		if req.Age <= 0 {
			http.Error(w, "age must be a positive integer", http.StatusBadRequest)
			return
		}

		now := time.Now()
		d := Dog{
			ID:          uuid.NewString(),
			Name:        strings.TrimSpace(req.Name),
			Breed:       strings.TrimSpace(req.Breed),
			Age:         req.Age,
			Size:        Size(strings.TrimSpace(req.Size)),
			Gender:      Gender(strings.TrimSpace(req.Gender)),
			Description: strings.TrimSpace(req.Description),
			Personality: strings.TrimSpace(req.Personality),
			ImageURL:    strings.TrimSpace(req.ImageURL),
			Status:      StatusAvailable, // el alta administrativa siempre entra Available
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if err := store.AddDog(r.Context(), d); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, d)
	}
}

func getDogHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := store.DogByID(chi.URLParam(r, "dogID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, d)
	}
}

// updateDogHandler aplica la edición administrativa: reemplaza los campos
// editables del perfil y preserva estado, ventana de prueba y timestamps de
// creación (esos solo los mueven los workflows).
func updateDogHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current, err := store.DogByID(chi.URLParam(r, "dogID"))
		if err != nil {
			writeError(w, err)
			return
		}

		var req dogRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Breed) == "" {
			http.Error(w, "name and breed are required", http.StatusBadRequest)
			return
		}
		if req.Age <= 0 {
			http.Error(w, "age must be a positive integer", http.StatusBadRequest)
			return
		}

		current.Name = strings.TrimSpace(req.Name)
		current.Breed = strings.TrimSpace(req.Breed)
		current.Age = req.Age
		current.Size = Size(strings.TrimSpace(req.Size))
		current.Gender = Gender(strings.TrimSpace(req.Gender))
		current.Description = strings.TrimSpace(req.Description)
		current.Personality = strings.TrimSpace(req.Personality)
		current.ImageURL = strings.TrimSpace(req.ImageURL)

		if err := store.UpdateDog(r.Context(), current); err != nil {
			writeError(w, err)
			return
		}

		updated, err := store.DogByID(current.ID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func deleteDogHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.DeleteDog(r.Context(), chi.URLParam(r, "dogID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func startTrialHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req startTrialRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
			http.Error(w, "name and email are required", http.StatusBadRequest)
			return
		}

		rec, err := store.StartTrial(r.Context(), chi.URLParam(r, "dogID"), Customer{
			Name:  strings.TrimSpace(req.Name),
			Email: strings.TrimSpace(req.Email),
			Phone: strings.TrimSpace(req.Phone),
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, rec)
	}
}

func listAdoptionsHandler(store *Store) http.HandlerFunc {
	// Listado para el panel administrativo.
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.Adoptions())
	}
}

func completeTrialHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req decisionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		adoptionID := chi.URLParam(r, "adoptionID")
		if err := store.CompleteTrial(r.Context(), adoptionID, Decision(strings.TrimSpace(req.Decision))); err != nil {
			writeError(w, err)
			return
		}

		rec, err := store.AdoptionByID(adoptionID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrInvalidState):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
