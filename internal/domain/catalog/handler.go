package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pet-spa-booking/internal/apperr"
	"pet-spa-booking/internal/middleware"
	"pet-spa-booking/internal/platform/logger"
	"pet-spa-booking/internal/platform/patch"
	"pet-spa-booking/internal/platform/respond"
	"pet-spa-booking/internal/platform/validation"
)

func RegisterRoutes(r chi.Router, c *Catalog, v *validation.Validator, log logger.Logger) {
	r.Route("/services", func(sr chi.Router) {
		sr.Get("/", listServicesHandler(c, log))
		sr.Post("/", createServiceHandler(c, v, log))
		sr.Get("/{serviceID}", getServiceHandler(c, log))
		sr.Patch("/{serviceID}", updateServiceHandler(c, log))
		sr.Delete("/{serviceID}", deleteServiceHandler(c, log))
	})
}

type createServiceRequest struct {
	Name          string  `json:"name" validate:"required,max=50"`
	DurationHours float64 `json:"duration_hours" validate:"gt=0,lte=10"`
	PriceCents    int64   `json:"price_cents" validate:"gte=0"`
}

type updateServiceRequest struct {
	Name          patch.Field[string]  `json:"name" swaggertype:"string"`
	DurationHours patch.Field[float64] `json:"duration_hours" swaggertype:"number"`
	PriceCents    patch.Field[int64]   `json:"price_cents" swaggertype:"integer"`
}

type serviceResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	DurationHours float64 `json:"duration_hours"`
	PriceCents    int64   `json:"price_cents"`
}

// createServiceHandler godoc
// @Summary Crear servicio
// @Description Solo admin. El nombre se guarda en title case.
// @Tags services
// @Accept json
// @Produce json
// @Param payload body createServiceRequest true "Servicio"
// @Success 201 {object} serviceResponse
// @Failure 400 {object} respond.ErrorBody
// @Failure 401 {object} respond.ErrorBody
// @Router /services [post]
func createServiceHandler(c *Catalog, v *validation.Validator, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := middleware.GetPrincipal(r.Context())
		if !ok {
			respond.Error(w, log, apperr.Unauthorized("unauthorized"))
			return
		}

		var req createServiceRequest
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, log, err)
			return
		}
		if err := v.Validate(req); err != nil {
			respond.Error(w, log, err)
			return
		}

		s, err := c.Create(r.Context(), p, CreateInput(req))
		if err != nil {
			respond.Error(w, log, err)
			return
		}
		respond.JSON(w, http.StatusCreated, serviceResponse(s))
	}
}

// listServicesHandler godoc
// @Summary Listar servicios
// @Tags services
// @Produce json
// @Success 200 {array} serviceResponse
// @Failure 401 {object} respond.ErrorBody
// @Router /services [get]
func listServicesHandler(c *Catalog, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := middleware.GetPrincipal(r.Context())
		if !ok {
			respond.Error(w, log, apperr.Unauthorized("unauthorized"))
			return
		}

		items, err := c.List(r.Context(), p)
		if err != nil {
			respond.Error(w, log, err)
			return
		}
		out := make([]serviceResponse, 0, len(items))
		for _, s := range items {
			out = append(out, serviceResponse(s))
		}
		respond.JSON(w, http.StatusOK, out)
	}
}

// getServiceHandler godoc
// @Summary Obtener servicio
// @Tags services
// @Produce json
// @Param serviceID path string true "ID del servicio"
// @Success 200 {object} serviceResponse
// @Failure 401 {object} respond.ErrorBody
// @Failure 404 {object} respond.ErrorBody
// @Router /services/{serviceID} [get]
func getServiceHandler(c *Catalog, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := middleware.GetPrincipal(r.Context())
		if !ok {
			respond.Error(w, log, apperr.Unauthorized("unauthorized"))
			return
		}

		s, err := c.Get(r.Context(), p, chi.URLParam(r, "serviceID"))
		if err != nil {
			respond.Error(w, log, err)
			return
		}
		respond.JSON(w, http.StatusOK, serviceResponse(s))
	}
}

// updateServiceHandler godoc
// @Summary Actualizar servicio (PATCH)
// @Description Solo admin.
// @Tags services
// @Accept json
// @Produce json
// @Param serviceID path string true "ID del servicio"
// @Param payload body updateServiceRequest true "Campos a modificar"
// @Success 200 {object} serviceResponse
// @Failure 400 {object} respond.ErrorBody
// @Failure 401 {object} respond.ErrorBody
// @Failure 404 {object} respond.ErrorBody
// @Router /services/{serviceID} [patch]
func updateServiceHandler(c *Catalog, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := middleware.GetPrincipal(r.Context())
		if !ok {
			respond.Error(w, log, apperr.Unauthorized("unauthorized"))
			return
		}

		var req updateServiceRequest
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, log, err)
			return
		}

		s, err := c.Update(r.Context(), p, chi.URLParam(r, "serviceID"), UpdateInput(req))
		if err != nil {
			respond.Error(w, log, err)
			return
		}
		respond.JSON(w, http.StatusOK, serviceResponse(s))
	}
}

// deleteServiceHandler godoc
// @Summary Eliminar servicio
// @Description Solo admin. Con almacenamiento SQL responde 409 si hay reservas que lo usan.
// @Tags services
// @Param serviceID path string true "ID del servicio"
// @Success 204
// @Failure 401 {object} respond.ErrorBody
// @Failure 404 {object} respond.ErrorBody
// @Failure 409 {object} respond.ErrorBody
// @Router /services/{serviceID} [delete]
func deleteServiceHandler(c *Catalog, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := middleware.GetPrincipal(r.Context())
		if !ok {
			respond.Error(w, log, apperr.Unauthorized("unauthorized"))
			return
		}

		if err := c.Delete(r.Context(), p, chi.URLParam(r, "serviceID")); err != nil {
			respond.Error(w, log, err)
			return
		}
		respond.NoContent(w)
	}
}
