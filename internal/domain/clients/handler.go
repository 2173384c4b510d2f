package clients

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
	r.Route("/clients", func(cr chi.Router) {
		cr.Get("/", listClientsHandler(svc, log))
		cr.Post("/", createClientHandler(svc, v, log))
		cr.Get("/search", searchClientHandler(svc, v, log))

		cr.Get("/{clientID}", getClientHandler(svc, log))
		cr.Patch("/{clientID}", updateClientHandler(svc, v, log))
		cr.Delete("/{clientID}", deleteClientHandler(svc, log))
	})
}

type createClientRequest struct {
	FirstName string `json:"first_name" validate:"required,max=15"`
	LastName  string `json:"last_name" validate:"max=15"`
	Phone     string `json:"phone" validate:"required,numeric,len=6"`
}

type updateClientRequest struct {
	FirstName patch.Field[string] `json:"first_name" swaggertype:"string"`
	LastName  patch.Field[string] `json:"last_name" swaggertype:"string"`
	Phone     patch.Field[string] `json:"phone" swaggertype:"string"`
}

type clientResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// createClientHandler godoc
// @Summary Registrar cliente
// @Description Solo staff (employee/admin). El teléfono (6 dígitos) es único.
// @Tags clients
// @Accept json
// @Produce json
// @Param payload body createClientRequest true "Datos del cliente"
// @Success 201 {object} clientResponse
// @Failure 400 {object} respond.ErrorBody
// @Failure 401 {object} respond.ErrorBody
// @Failure 409 {object} respond.ErrorBody "teléfono ya registrado"
// @Router /clients [post]
func createClientHandler(svc *Service, v *validation.Validator, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := middleware.GetPrincipal(r.Context())
		if !ok {
			respond.Error(w, log, apperr.Unauthorized("unauthorized"))
			return
		}

		var req createClientRequest
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, log, err)
			return
		}
		if err := v.Validate(req); err != nil {
			respond.Error(w, log, err)
			return
		}

		c, err := svc.Create(r.Context(), p, CreateInput{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Phone:     req.Phone,
		})
		if err != nil {
			respond.Error(w, log, err)
			return
		}
		respond.JSON(w, http.StatusCreated, toClientResponse(c))
	}
}

// listClientsHandler godoc
// @Summary Listar clientes
// @Tags clients
// @Produce json
// @Success 200 {array} clientResponse
// @Failure 401 {object} respond.ErrorBody
// @Router /clients [get]
func listClientsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
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

		out := make([]clientResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toClientResponse(c))
		}
		respond.JSON(w, http.StatusOK, out)
	}
}

// searchClientHandler godoc
// @Summary Buscar cliente por teléfono
// @Description Staff o el propio cliente.
// @Tags clients
// @Produce json
// @Param phone query string true "Teléfono (6 dígitos)"
// @Success 200 {object} clientResponse
// @Failure 400 {object} respond.ErrorBody
// @Failure 401 {object} respond.ErrorBody
// @Failure 404 {object} respond.ErrorBody
// @Router /clients/search [get]
func searchClientHandler(svc *Service, v *validation.Validator, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := middleware.GetPrincipal(r.Context())
		if !ok {
			respond.Error(w, log, apperr.Unauthorized("unauthorized"))
			return
		}

		phone := r.URL.Query().Get("phone")
		if err := v.Var("phone", phone, "required,numeric,len=6"); err != nil {
			respond.Error(w, log, err)
			return
		}

		c, err := svc.FindByPhone(r.Context(), p, phone)
		if err != nil {
			respond.Error(w, log, err)
			return
		}
		respond.JSON(w, http.StatusOK, toClientResponse(c))
	}
}

// getClientHandler godoc
// @Summary Obtener cliente
// @Tags clients
// @Produce json
// @Param clientID path string true "ID del cliente"
// @Success 200 {object} clientResponse
// @Failure 401 {object} respond.ErrorBody
// @Failure 404 {object} respond.ErrorBody
// @Router /clients/{clientID} [get]
func getClientHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := middleware.GetPrincipal(r.Context())
		if !ok {
			respond.Error(w, log, apperr.Unauthorized("unauthorized"))
			return
		}

		c, err := svc.Get(r.Context(), p, chi.URLParam(r, "clientID"))
		if err != nil {
			respond.Error(w, log, err)
			return
		}
		respond.JSON(w, http.StatusOK, toClientResponse(c))
	}
}

// updateClientHandler godoc
// @Summary Actualizar cliente (PATCH)
// @Description Solo se tocan los campos enviados. Un string vacío se guarda tal cual.
// @Tags clients
// @Accept json
// @Produce json
// @Param clientID path string true "ID del cliente"
// @Param payload body updateClientRequest true "Campos a modificar"
// @Success 200 {object} clientResponse
// @Failure 400 {object} respond.ErrorBody
// @Failure 401 {object} respond.ErrorBody
// @Failure 404 {object} respond.ErrorBody
// @Failure 409 {object} respond.ErrorBody
// @Router /clients/{clientID} [patch]
func updateClientHandler(svc *Service, v *validation.Validator, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := middleware.GetPrincipal(r.Context())
		if !ok {
			respond.Error(w, log, apperr.Unauthorized("unauthorized"))
			return
		}

		var req updateClientRequest
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, log, err)
			return
		}
		if req.Phone.Set && !req.Phone.Null {
			if err := v.Var("phone", req.Phone.Value, "numeric,len=6"); err != nil {
				respond.Error(w, log, err)
				return
			}
		}

		c, err := svc.Update(r.Context(), p, chi.URLParam(r, "clientID"), UpdateInput(req))
		if err != nil {
			respond.Error(w, log, err)
			return
		}
		respond.JSON(w, http.StatusOK, toClientResponse(c))
	}
}

// deleteClientHandler godoc
// @Summary Eliminar cliente
// @Tags clients
// @Param clientID path string true "ID del cliente"
// @Success 204
// @Failure 401 {object} respond.ErrorBody
// @Failure 404 {object} respond.ErrorBody
// @Router /clients/{clientID} [delete]
func deleteClientHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := middleware.GetPrincipal(r.Context())
		if !ok {
			respond.Error(w, log, apperr.Unauthorized("unauthorized"))
			return
		}

		if err := svc.Delete(r.Context(), p, chi.URLParam(r, "clientID")); err != nil {
			respond.Error(w, log, err)
			return
		}
		respond.NoContent(w)
	}
}

func toClientResponse(c Client) clientResponse {
	return clientResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
