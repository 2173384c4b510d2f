package employees

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
	r.Route("/employees", func(er chi.Router) {
		er.Get("/", listEmployeesHandler(svc, log))
		er.Post("/", createEmployeeHandler(svc, v, log))
		er.Get("/phone/{phone}", getEmployeeByPhoneHandler(svc, log))

		er.Get("/{employeeID}", getEmployeeHandler(svc, log))
		er.Patch("/{employeeID}", updateEmployeeHandler(svc, v, log))
		er.Delete("/{employeeID}", deleteEmployeeHandler(svc, log))
	})
}

type createEmployeeRequest struct {
	FirstName string `json:"first_name" validate:"required,max=15"`
	LastName  string `json:"last_name" validate:"max=15"`
	Email     string `json:"email" validate:"required,email,max=50"`
	Phone     string `json:"phone" validate:"required,numeric,len=6"`
	IsAdmin   bool   `json:"is_admin"`
	Password  string `json:"password" validate:"required,min=8,max=128"`
}

type updateEmployeeRequest struct {
	FirstName patch.Field[string] `json:"first_name" swaggertype:"string"`
	LastName  patch.Field[string] `json:"last_name" swaggertype:"string"`
	Email     patch.Field[string] `json:"email" swaggertype:"string"`
	Phone     patch.Field[string] `json:"phone" swaggertype:"string"`
	IsAdmin   patch.Field[bool]   `json:"is_admin" swaggertype:"boolean"`
	Password  patch.Field[string] `json:"password" swaggertype:"string"`
}

type employeeResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// createEmployeeHandler godoc
// @Summary Crear empleado
// @Description Solo admin. Email y teléfono son únicos.
// @Tags employees
// @Accept json
// @Produce json
// @Param payload body createEmployeeRequest true "Datos del empleado"
// @Success 201 {object} employeeResponse
// @Failure 400 {object} respond.ErrorBody
// @Failure 401 {object} respond.ErrorBody
// @Failure 409 {object} respond.ErrorBody
// @Router /employees [post]
func createEmployeeHandler(svc *Service, v *validation.Validator, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := middleware.GetPrincipal(r.Context())
		if !ok {
			respond.Error(w, log, apperr.Unauthorized("unauthorized"))
			return
		}

		var req createEmployeeRequest
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, log, err)
			return
		}
		if err := v.Validate(req); err != nil {
			respond.Error(w, log, err)
			return
		}

		e, err := svc.Create(r.Context(), p, CreateInput(req))
		if err != nil {
			respond.Error(w, log, err)
			return
		}
		respond.JSON(w, http.StatusCreated, toEmployeeResponse(e))
	}
}

// listEmployeesHandler godoc
// @Summary Listar empleados
// @Description Solo staff.
// @Tags employees
// @Produce json
// @Success 200 {array} employeeResponse
// @Failure 401 {object} respond.ErrorBody
// @Router /employees [get]
func listEmployeesHandler(svc *Service, log logger.Logger) http.HandlerFunc {
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
		out := make([]employeeResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEmployeeResponse(e))
		}
		respond.JSON(w, http.StatusOK, out)
	}
}

// getEmployeeByPhoneHandler godoc
// @Summary Buscar empleado por teléfono
// @Tags employees
// @Produce json
// @Param phone path string true "Teléfono"
// @Success 200 {object} employeeResponse
// @Failure 401 {object} respond.ErrorBody
// @Failure 404 {object} respond.ErrorBody
// @Router /employees/phone/{phone} [get]
func getEmployeeByPhoneHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := middleware.GetPrincipal(r.Context())
		if !ok {
			respond.Error(w, log, apperr.Unauthorized("unauthorized"))
			return
		}

		e, err := svc.FindByPhone(r.Context(), p, chi.URLParam(r, "phone"))
		if err != nil {
			respond.Error(w, log, err)
			return
		}
		respond.JSON(w, http.StatusOK, toEmployeeResponse(e))
	}
}

// getEmployeeHandler godoc
// @Summary Obtener empleado
// @Description Admin o el propio empleado.
// @Tags employees
// @Produce json
// @Param employeeID path string true "ID del empleado"
// @Success 200 {object} employeeResponse
// @Failure 401 {object} respond.ErrorBody
// @Failure 404 {object} respond.ErrorBody
// @Router /employees/{employeeID} [get]
func getEmployeeHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := middleware.GetPrincipal(r.Context())
		if !ok {
			respond.Error(w, log, apperr.Unauthorized("unauthorized"))
			return
		}

		e, err := svc.Get(r.Context(), p, chi.URLParam(r, "employeeID"))
		if err != nil {
			respond.Error(w, log, err)
			return
		}
		respond.JSON(w, http.StatusOK, toEmployeeResponse(e))
	}
}

// updateEmployeeHandler godoc
// @Summary Actualizar empleado (PATCH)
// @Description Admin o el propio empleado. Enviar is_admin (aunque no cambie) requiere admin.
// @Tags employees
// @Accept json
// @Produce json
// @Param employeeID path string true "ID del empleado"
// @Param payload body updateEmployeeRequest true "Campos a modificar"
// @Success 200 {object} employeeResponse
// @Failure 400 {object} respond.ErrorBody
// @Failure 401 {object} respond.ErrorBody
// @Failure 404 {object} respond.ErrorBody
// @Failure 409 {object} respond.ErrorBody
// @Router /employees/{employeeID} [patch]
func updateEmployeeHandler(svc *Service, v *validation.Validator, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := middleware.GetPrincipal(r.Context())
		if !ok {
			respond.Error(w, log, apperr.Unauthorized("unauthorized"))
			return
		}

		var req updateEmployeeRequest
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, log, err)
			return
		}
		if req.Email.Set && !req.Email.Null {
			if err := v.Var("email", req.Email.Value, "email,max=50"); err != nil {
				respond.Error(w, log, err)
				return
			}
		}
		if req.Phone.Set && !req.Phone.Null {
			if err := v.Var("phone", req.Phone.Value, "numeric,len=6"); err != nil {
				respond.Error(w, log, err)
				return
			}
		}
		if req.Password.Set && !req.Password.Null {
			if err := v.Var("password", req.Password.Value, "min=8,max=128"); err != nil {
				respond.Error(w, log, err)
				return
			}
		}

		e, err := svc.Update(r.Context(), p, chi.URLParam(r, "employeeID"), UpdateInput(req))
		if err != nil {
			respond.Error(w, log, err)
			return
		}
		respond.JSON(w, http.StatusOK, toEmployeeResponse(e))
	}
}

// deleteEmployeeHandler godoc
// @Summary Eliminar empleado
// @Description Solo admin.
// @Tags employees
// @Param employeeID path string true "ID del empleado"
// @Success 204
// @Failure 401 {object} respond.ErrorBody
// @Failure 404 {object} respond.ErrorBody
// @Router /employees/{employeeID} [delete]
func deleteEmployeeHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := middleware.GetPrincipal(r.Context())
		if !ok {
			respond.Error(w, log, apperr.Unauthorized("unauthorized"))
			return
		}

		if err := svc.Delete(r.Context(), p, chi.URLParam(r, "employeeID")); err != nil {
			respond.Error(w, log, err)
			return
		}
		respond.NoContent(w)
	}
}

func toEmployeeResponse(e Employee) employeeResponse {
	return employeeResponse{
		ID:        e.ID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Email:     e.Email,
		Phone:     e.Phone,
		IsAdmin:   e.IsAdmin,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
