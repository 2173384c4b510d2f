package rosters

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"pet-spa-booking/internal/apperr"
	"pet-spa-booking/internal/domain/schedule"
	"pet-spa-booking/internal/middleware"
	"pet-spa-booking/internal/platform/logger"
	"pet-spa-booking/internal/platform/patch"
	"pet-spa-booking/internal/platform/respond"
	"pet-spa-booking/internal/platform/validation"
)

func RegisterRoutes(r chi.Router, svc *Service, v *validation.Validator, log logger.Logger) {
	r.Route("/rosters", func(rr chi.Router) {
		rr.Get("/", listRostersHandler(svc, log))
		rr.Post("/", createRosterHandler(svc, v, log))
		rr.Get("/date/{date}", listRostersByDateHandler(svc, log))

		rr.Get("/{rosterID}", getRosterHandler(svc, log))
		rr.Patch("/{rosterID}", updateRosterHandler(svc, log))
		rr.Delete("/{rosterID}", deleteRosterHandler(svc, log))
	})
}

type createRosterRequest struct {
	EmployeeID string         `json:"employee_id" validate:"required"`
	Date       *schedule.Date `json:"date" validate:"required" swaggertype:"string" example:"2026-10-17"`
}

type updateRosterRequest struct {
	EmployeeID patch.Field[string]        `json:"employee_id" swaggertype:"string"`
	Date       patch.Field[schedule.Date] `json:"date" swaggertype:"string" example:"2026-10-17"`
}

type rosterResponse struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	Date       string    `json:"date"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// createRosterHandler godoc
// @Summary Crear roster
// @Description Solo staff. Fecha de hoy en adelante; un empleado una vez por día.
// @Tags rosters
// @Accept json
// @Produce json
// @Param payload body createRosterRequest true "Roster"
// @Success 201 {object} rosterResponse
// @Failure 400 {object} respond.ErrorBody "validación o fecha pasada (reason: past_date)"
// @Failure 401 {object} respond.ErrorBody
// @Failure 404 {object} respond.ErrorBody "employee inexistente"
// @Failure 409 {object} respond.ErrorBody "el empleado ya tiene roster ese día"
// @Router /rosters [post]
func createRosterHandler(svc *Service, v *validation.Validator, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := middleware.GetPrincipal(r.Context())
		if !ok {
			respond.Error(w, log, apperr.Unauthorized("unauthorized"))
			return
		}

		var req createRosterRequest
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, log, err)
			return
		}
		if err := v.Validate(req); err != nil {
			respond.Error(w, log, err)
			return
		}

		ro, err := svc.Create(r.Context(), p, CreateInput{EmployeeID: req.EmployeeID, Date: *req.Date})
		if err != nil {
			respond.Error(w, log, err)
			return
		}
		respond.JSON(w, http.StatusCreated, toRosterResponse(ro))
	}
}

// listRostersHandler godoc
// @Summary Listar rosters
// @Description Solo staff. Ordenados por fecha.
// @Tags rosters
// @Produce json
// @Success 200 {array} rosterResponse
// @Failure 401 {object} respond.ErrorBody
// @Router /rosters [get]
func listRostersHandler(svc *Service, log logger.Logger) http.HandlerFunc {
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
		respond.JSON(w, http.StatusOK, toRosterResponses(items))
	}
}

// listRostersByDateHandler godoc
// @Summary Rosters de un día
// @Tags rosters
// @Produce json
// @Param date path string true "Fecha YYYY-MM-DD"
// @Success 200 {array} rosterResponse
// @Failure 400 {object} respond.ErrorBody
// @Failure 401 {object} respond.ErrorBody
// @Router /rosters/date/{date} [get]
func listRostersByDateHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := middleware.GetPrincipal(r.Context())
		if !ok {
			respond.Error(w, log, apperr.Unauthorized("unauthorized"))
			return
		}

		d, err := schedule.ParseDate(chi.URLParam(r, "date"))
		if err != nil {
			respond.Error(w, log, apperr.ValidationWithDetails("validation failed", map[string]string{"date": "must be YYYY-MM-DD"}))
			return
		}

		items, err := svc.ListByDate(r.Context(), p, d)
		if err != nil {
			respond.Error(w, log, err)
			return
		}
		respond.JSON(w, http.StatusOK, toRosterResponses(items))
	}
}

// getRosterHandler godoc
// @Summary Obtener roster
// @Tags rosters
// @Produce json
// @Param rosterID path string true "ID del roster"
// @Success 200 {object} rosterResponse
// @Failure 401 {object} respond.ErrorBody
// @Failure 404 {object} respond.ErrorBody
// @Router /rosters/{rosterID} [get]
func getRosterHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := middleware.GetPrincipal(r.Context())
		if !ok {
			respond.Error(w, log, apperr.Unauthorized("unauthorized"))
			return
		}

		ro, err := svc.Get(r.Context(), p, chi.URLParam(r, "rosterID"))
		if err != nil {
			respond.Error(w, log, err)
			return
		}
		respond.JSON(w, http.StatusOK, toRosterResponse(ro))
	}
}

// updateRosterHandler godoc
// @Summary Actualizar roster (PATCH)
// @Tags rosters
// @Accept json
// @Produce json
// @Param rosterID path string true "ID del roster"
// @Param payload body updateRosterRequest true "Campos a modificar"
// @Success 200 {object} rosterResponse
// @Failure 400 {object} respond.ErrorBody
// @Failure 401 {object} respond.ErrorBody
// @Failure 404 {object} respond.ErrorBody
// @Failure 409 {object} respond.ErrorBody
// @Router /rosters/{rosterID} [patch]
func updateRosterHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := middleware.GetPrincipal(r.Context())
		if !ok {
			respond.Error(w, log, apperr.Unauthorized("unauthorized"))
			return
		}

		var req updateRosterRequest
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, log, err)
			return
		}

		ro, err := svc.Update(r.Context(), p, chi.URLParam(r, "rosterID"), UpdateInput(req))
		if err != nil {
			respond.Error(w, log, err)
			return
		}
		respond.JSON(w, http.StatusOK, toRosterResponse(ro))
	}
}

// deleteRosterHandler godoc
// @Summary Eliminar roster
// @Tags rosters
// @Param rosterID path string true "ID del roster"
// @Success 204
// @Failure 401 {object} respond.ErrorBody
// @Failure 404 {object} respond.ErrorBody
// @Router /rosters/{rosterID} [delete]
func deleteRosterHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := middleware.GetPrincipal(r.Context())
		if !ok {
			respond.Error(w, log, apperr.Unauthorized("unauthorized"))
			return
		}

		if err := svc.Delete(r.Context(), p, chi.URLParam(r, "rosterID")); err != nil {
			respond.Error(w, log, err)
			return
		}
		respond.NoContent(w)
	}
}

func toRosterResponse(r Roster) rosterResponse {
	return rosterResponse{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		Date:       r.Date.String(),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func toRosterResponses(items []Roster) []rosterResponse {
	out := make([]rosterResponse, 0, len(items))
	for _, r := range items {
		out = append(out, toRosterResponse(r))
	}
	return out
}
