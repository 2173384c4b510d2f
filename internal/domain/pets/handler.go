package pets

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"pet-spa-booking/internal/apperr"
	"pet-spa-booking/internal/middleware"
	"pet-spa-booking/internal/platform/logger"
	"pet-spa-booking/internal/platform/patch"
	"pet-spa-booking/internal/platform/respond"
	"pet-spa-booking/internal/platform/validation"
)

func RegisterRoutes(r chi.Router, svc *Service, v *validation.Validator, log logger.Logger) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc, v, log))
		pr.Get("/", listPetsHandler(svc, log))

		// Perfil de mascota (staff o dueño)
		pr.Get("/{petID}", getPetHandler(svc, log))
		pr.Patch("/{petID}", updatePetHandler(svc, v, log))
		pr.Delete("/{petID}", deletePetHandler(svc, log))
	})

	// Mascotas de un cliente (staff o el propio cliente)
	r.Get("/clients/{clientID}/pets", listClientPetsHandler(svc, log))
}

type createPetRequest struct {
	ClientID string `json:"client_id" validate:"required"`
	TypeID   string `json:"type_id" validate:"required,max=10"`
	SizeID   string `json:"size_id" validate:"required,max=5"`
	Name     string `json:"name" validate:"required,max=15"`
	Breed    string `json:"breed" validate:"max=50"`
	Year     *int   `json:"year" validate:"omitempty,gte=1980,lte=2100"`
}

// updatePetRequest: campo ausente = no tocar; "year": null limpia el año.
type updatePetRequest struct {
	ClientID patch.Field[string] `json:"client_id" swaggertype:"string"`
	TypeID   patch.Field[string] `json:"type_id" swaggertype:"string"`
	SizeID   patch.Field[string] `json:"size_id" swaggertype:"string"`
	Name     patch.Field[string] `json:"name" swaggertype:"string"`
	Breed    patch.Field[string] `json:"breed" swaggertype:"string"`
	Year     patch.Field[int]    `json:"year" swaggertype:"integer"`
}

type petResponse struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"client_id"`
	TypeID    string    `json:"type_id"`
	SizeID    string    `json:"size_id"`
	Name      string    `json:"name"`
	Breed     string    `json:"breed"`
	Year      *int      `json:"year,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// createPetHandler godoc
// @Summary Registrar mascota
// @Description Staff puede registrar para cualquier cliente; un cliente solo para sí mismo (client_id = su id). Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>`.
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token"
// @Param payload body createPetRequest true "Datos de la mascota"
// @Success 201 {object} petResponse
// @Failure 400 {object} respond.ErrorBody
// @Failure 401 {object} respond.ErrorBody
// @Failure 404 {object} respond.ErrorBody "client not found"
// @Router /pets [post]
func createPetHandler(svc *Service, v *validation.Validator, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := middleware.GetPrincipal(r.Context())
		if !ok {
			respond.Error(w, log, apperr.Unauthorized("unauthorized"))
			return
		}

		var req createPetRequest
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, log, err)
			return
		}
		if err := v.Validate(req); err != nil {
			respond.Error(w, log, err)
			return
		}

		pet, err := svc.Create(r.Context(), p, CreateInput(req))
		if err != nil {
			respond.Error(w, log, err)
			return
		}
		respond.JSON(w, http.StatusCreated, toPetResponse(pet))
	}
}

// listPetsHandler godoc
// @Summary Listar todas las mascotas
// @Description Solo staff.
// @Tags pets
// @Produce json
// @Success 200 {array} petResponse
// @Failure 401 {object} respond.ErrorBody
// @Router /pets [get]
func listPetsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := middleware.GetPrincipal(r.Context())
		if !ok {
			respond.Error(w, log, apperr.Unauthorized("unauthorized"))
			return
		}

		items, err := svc.List(r.Context(), p)
		if err != nil {
			respond.Error(w, log, err)
			return
		}
		respond.JSON(w, http.StatusOK, toPetResponses(items))
	}
}

// listClientPetsHandler godoc
// @Summary Listar mascotas de un cliente
// @Tags pets
// @Produce json
// @Param clientID path string true "ID del cliente"
// @Success 200 {array} petResponse
// @Failure 401 {object} respond.ErrorBody
// @Failure 404 {object} respond.ErrorBody
// @Router /clients/{clientID}/pets [get]
func listClientPetsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := middleware.GetPrincipal(r.Context())
		if !ok {
			respond.Error(w, log, apperr.Unauthorized("unauthorized"))
			return
		}

		items, err := svc.ListByClient(r.Context(), p, chi.URLParam(r, "clientID"))
		if err != nil {
			respond.Error(w, log, err)
			return
		}
		respond.JSON(w, http.StatusOK, toPetResponses(items))
	}
}

// getPetHandler godoc
// @Summary Obtener mascota
// @Tags pets
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} petResponse
// @Failure 401 {object} respond.ErrorBody
// @Failure 404 {object} respond.ErrorBody
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := middleware.GetPrincipal(r.Context())
		if !ok {
			respond.Error(w, log, apperr.Unauthorized("unauthorized"))
			return
		}

		pet, err := svc.Get(r.Context(), p, chi.URLParam(r, "petID"))
		if err != nil {
			respond.Error(w, log, err)
			return
		}
		respond.JSON(w, http.StatusOK, toPetResponse(pet))
	}
}

// updatePetHandler godoc
// @Summary Actualizar mascota (PATCH)
// @Description Solo se tocan los campos enviados; "year": null limpia el año. Cambiar client_id es solo para staff.
// @Tags pets
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body updatePetRequest true "Campos a modificar"
// @Success 200 {object} petResponse
// @Failure 400 {object} respond.ErrorBody
// @Failure 401 {object} respond.ErrorBody
// @Failure 404 {object} respond.ErrorBody
// @Router /pets/{petID} [patch]
func updatePetHandler(svc *Service, v *validation.Validator, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := middleware.GetPrincipal(r.Context())
		if !ok {
			respond.Error(w, log, apperr.Unauthorized("unauthorized"))
			return
		}

		var req updatePetRequest
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, log, err)
			return
		}
		if req.Year.Set && !req.Year.Null {
			if err := v.Var("year", req.Year.Value, "gte=1980,lte=2100"); err != nil {
				respond.Error(w, log, err)
				return
			}
		}

		pet, err := svc.Update(r.Context(), p, chi.URLParam(r, "petID"), UpdateInput(req))
		if err != nil {
			respond.Error(w, log, err)
			return
		}
		respond.JSON(w, http.StatusOK, toPetResponse(pet))
	}
}

// deletePetHandler godoc
// @Summary Eliminar mascota
// @Tags pets
// @Param petID path string true "ID de la mascota"
// @Success 204
// @Failure 401 {object} respond.ErrorBody
// @Failure 404 {object} respond.ErrorBody
// @Router /pets/{petID} [delete]
func deletePetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := middleware.GetPrincipal(r.Context())
		if !ok {
			respond.Error(w, log, apperr.Unauthorized("unauthorized"))
			return
		}

		if err := svc.Delete(r.Context(), p, chi.URLParam(r, "petID")); err != nil {
			respond.Error(w, log, err)
			return
		}
		respond.NoContent(w)
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:        p.ID,
		ClientID:  p.ClientID,
		TypeID:    p.TypeID,
		SizeID:    p.SizeID,
		Name:      p.Name,
		Breed:     p.Breed,
		Year:      p.Year,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toPetResponses(items []Pet) []petResponse {
	out := make([]petResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toPetResponse(p))
	}
	return out
}
