package employees

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"pet-spa-booking/internal/domain/access"
	"pet-spa-booking/internal/platform/logger"
	"pet-spa-booking/internal/platform/respond"
	"pet-spa-booking/internal/platform/validation"
	"pet-spa-booking/internal/ports/auth"
)

// TokenIssuer firma tokens de acceso para un empleado autenticado.
type TokenIssuer interface {
	Issue(c auth.Claims) (token string, expiresAt time.Time, err error)
}

// RegisterLoginRoute monta POST /auth/login. limit puede ser nil.
func RegisterLoginRoute(r chi.Router, svc *Service, issuer TokenIssuer, limit func(http.Handler) http.Handler, v *validation.Validator, log logger.Logger) {
	if limit != nil {
		r = r.With(limit)
	}
	r.Post("/auth/login", loginHandler(svc, issuer, v, log))
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	EmployeeID  string    `json:"employee_id"`
	Role        string    `json:"role"`
}

// loginHandler godoc
// @Summary Login de empleado
// @Description Devuelve un token de acceso (PASETO v4.local) con rol y id de empleado. Limitado por IP.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Credenciales"
// @Success 200 {object} loginResponse
// @Failure 400 {object} respond.ErrorBody
// @Failure 401 {object} respond.ErrorBody "invalid credentials"
// @Failure 429 {object} respond.ErrorBody
// @Router /auth/login [post]
func loginHandler(svc *Service, issuer TokenIssuer, v *validation.Validator, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, log, err)
			return
		}
		if err := v.Validate(req); err != nil {
			respond.Error(w, log, err)
			return
		}

		e, err := svc.Authenticate(r.Context(), req.Email, req.Password)
		if err != nil {
			respond.Error(w, log, err)
			return
		}

		claims := ClaimsFor(e)
		token, exp, err := issuer.Issue(claims)
		if err != nil {
			respond.Error(w, log, err)
			return
		}

		log.Info("employee logged in", map[string]any{"employee_id": e.ID, "role": claims.Role})
		respond.JSON(w, http.StatusOK, loginResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresAt:   exp,
			EmployeeID:  e.ID,
			Role:        claims.Role,
		})
	}
}

// ClaimsFor arma los claims del token de un empleado.
func ClaimsFor(e Employee) auth.Claims {
	role := access.RoleEmployee
	if e.IsAdmin {
		role = access.RoleAdmin
	}
	return auth.Claims{
		Subject:         e.ID,
		Email:           e.Email,
		Role:            string(role),
		OwnedResourceID: e.ID,
	}
}
