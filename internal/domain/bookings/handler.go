package bookings

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
	r.Route("/bookings", func(br chi.Router) {
		br.Get("/", listBookingsHandler(svc, log))
		br.Post("/", createBookingHandler(svc, v, log))

		br.Get("/{bookingID}", getBookingHandler(svc, log))
		br.Patch("/{bookingID}", updateBookingHandler(svc, log))
		br.Delete("/{bookingID}", deleteBookingHandler(svc, log))
	})
}

type createBookingRequest struct {
	PetID      string              `json:"pet_id" validate:"required"`
	EmployeeID *string             `json:"employee_id"`
	ServiceID  string              `json:"service_id" validate:"required"`
	Date       *schedule.Date      `json:"date" validate:"required" swaggertype:"string" example:"2026-10-17"`
	Time       *schedule.TimeOfDay `json:"time" validate:"required" swaggertype:"string" example:"11:00"`
	Status     string              `json:"status" enums:"Pending,In-progress,Completed"`
}

// updateBookingRequest: campo ausente = no tocar; "employee_id": null desasigna.
type updateBookingRequest struct {
	PetID      patch.Field[string]             `json:"pet_id" swaggertype:"string"`
	EmployeeID patch.Field[string]             `json:"employee_id" swaggertype:"string"`
	ServiceID  patch.Field[string]             `json:"service_id" swaggertype:"string"`
	Date       patch.Field[schedule.Date]      `json:"date" swaggertype:"string" example:"2026-10-17"`
	Time       patch.Field[schedule.TimeOfDay] `json:"time" swaggertype:"string" example:"11:00"`
	Status     patch.Field[string]             `json:"status" swaggertype:"string" enums:"Pending,In-progress,Completed"`
}

type bookingResponse struct {
	ID         string    `json:"id"`
	PetID      string    `json:"pet_id"`
	EmployeeID *string   `json:"employee_id"`
	ServiceID  string    `json:"service_id"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// createBookingHandler godoc
// @Summary Crear reserva
// @Description Staff para cualquier mascota; un cliente solo para sus mascotas. Horario 10:00-20:00, sin fechas u horas pasadas. status por defecto Pending.
// @Tags bookings
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token"
// @Param payload body createBookingRequest true "Reserva"
// @Success 201 {object} bookingResponse
// @Failure 400 {object} respond.ErrorBody "validación o slot inválido (reason: past_date, past_time, outside_business_hours)"
// @Failure 401 {object} respond.ErrorBody
// @Failure 404 {object} respond.ErrorBody "pet, service o employee inexistente"
// @Failure 409 {object} respond.ErrorBody "la mascota ya tiene reserva en ese horario"
// @Router /bookings [post]
func createBookingHandler(svc *Service, v *validation.Validator, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := middleware.GetPrincipal(r.Context())
		if !ok {
			respond.Error(w, log, apperr.Unauthorized("unauthorized"))
			return
		}

		var req createBookingRequest
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, log, err)
			return
		}
		if err := v.Validate(req); err != nil {
			respond.Error(w, log, err)
			return
		}

		in := CreateInput{
			PetID:      req.PetID,
			EmployeeID: req.EmployeeID,
			ServiceID:  req.ServiceID,
			Date:       *req.Date,
			Time:       *req.Time,
		}
		if req.Status != "" {
			st, err := ParseStatus(req.Status)
			if err != nil {
				respond.Error(w, log, err)
				return
			}
			in.Status = st
		}

		b, err := svc.Create(r.Context(), p, in)
		if err != nil {
			respond.Error(w, log, err)
			return
		}

		log.Info("booking created", map[string]any{
			"booking_id": b.ID,
			"pet_id":     b.PetID,
			"date":       b.Date.String(),
			"time":       b.Time.String(),
			"by":         p.ID,
		})
		respond.JSON(w, http.StatusCreated, toBookingResponse(b))
	}
}

// listBookingsHandler godoc
// @Summary Listar reservas
// @Description Solo staff. Filtro opcional por status.
// @Tags bookings
// @Produce json
// @Param status query string false "Pending | In-progress | Completed"
// @Success 200 {array} bookingResponse
// @Failure 400 {object} respond.ErrorBody
// @Failure 401 {object} respond.ErrorBody
// @Router /bookings [get]
func listBookingsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := middleware.GetPrincipal(r.Context())
		if !ok {
			respond.Error(w, log, apperr.Unauthorized("unauthorized"))
			return
		}

		var f Filter
		if raw := r.URL.Query().Get("status"); raw != "" {
			st, err := ParseStatus(raw)
			if err != nil {
				respond.Error(w, log, err)
				return
			}
			f.Status = st
		}

		items, err := svc.List(r.Context(), p, f)
		if err != nil {
			respond.Error(w, log, err)
			return
		}
		out := make([]bookingResponse, 0, len(items))
		for _, b := range items {
			out = append(out, toBookingResponse(b))
		}
		respond.JSON(w, http.StatusOK, out)
	}
}

// getBookingHandler godoc
// @Summary Obtener reserva
// @Description Staff o el cliente dueño de la mascota.
// @Tags bookings
// @Produce json
// @Param bookingID path string true "ID de la reserva"
// @Success 200 {object} bookingResponse
// @Failure 401 {object} respond.ErrorBody
// @Failure 404 {object} respond.ErrorBody
// @Router /bookings/{bookingID} [get]
func getBookingHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := middleware.GetPrincipal(r.Context())
		if !ok {
			respond.Error(w, log, apperr.Unauthorized("unauthorized"))
			return
		}

		b, err := svc.Get(r.Context(), p, chi.URLParam(r, "bookingID"))
		if err != nil {
			respond.Error(w, log, err)
			return
		}
		respond.JSON(w, http.StatusOK, toBookingResponse(b))
	}
}

// updateBookingHandler godoc
// @Summary Actualizar reserva (PATCH)
// @Description Staff o el cliente dueño. Solo staff puede cambiar pet_id. Si cambian fecha u hora se revalida el slot.
// @Tags bookings
// @Accept json
// @Produce json
// @Param bookingID path string true "ID de la reserva"
// @Param payload body updateBookingRequest true "Campos a modificar"
// @Success 200 {object} bookingResponse
// @Failure 400 {object} respond.ErrorBody
// @Failure 401 {object} respond.ErrorBody
// @Failure 404 {object} respond.ErrorBody
// @Failure 409 {object} respond.ErrorBody
// @Router /bookings/{bookingID} [patch]
func updateBookingHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := middleware.GetPrincipal(r.Context())
		if !ok {
			respond.Error(w, log, apperr.Unauthorized("unauthorized"))
			return
		}

		var req updateBookingRequest
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, log, err)
			return
		}

		in := UpdateInput{
			PetID:      req.PetID,
			EmployeeID: req.EmployeeID,
			ServiceID:  req.ServiceID,
			Date:       req.Date,
			Time:       req.Time,
		}
		switch {
		case req.Status.Nulled():
			in.Status = patch.Null[Status]()
		case req.Status.Set:
			st, err := ParseStatus(req.Status.Value)
			if err != nil {
				respond.Error(w, log, err)
				return
			}
			in.Status = patch.Some(st)
		}

		b, err := svc.Update(r.Context(), p, chi.URLParam(r, "bookingID"), in)
		if err != nil {
			respond.Error(w, log, err)
			return
		}
		respond.JSON(w, http.StatusOK, toBookingResponse(b))
	}
}

// deleteBookingHandler godoc
// @Summary Eliminar reserva
// @Description Staff o el cliente dueño de la mascota.
// @Tags bookings
// @Param bookingID path string true "ID de la reserva"
// @Success 204
// @Failure 401 {object} respond.ErrorBody
// @Failure 404 {object} respond.ErrorBody
// @Router /bookings/{bookingID} [delete]
func deleteBookingHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := middleware.GetPrincipal(r.Context())
		if !ok {
			respond.Error(w, log, apperr.Unauthorized("unauthorized"))
			return
		}

		if err := svc.Delete(r.Context(), p, chi.URLParam(r, "bookingID")); err != nil {
			respond.Error(w, log, err)
			return
		}
		respond.NoContent(w)
	}
}

func toBookingResponse(b Booking) bookingResponse {
	return bookingResponse{
		ID:         b.ID,
		PetID:      b.PetID,
		EmployeeID: b.EmployeeID,
		ServiceID:  b.ServiceID,
		Date:       b.Date.String(),
		Time:       b.Time.String(),
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}
