package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/careconnect/backend/internal/model"
	"github.com/careconnect/backend/internal/service"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login godoc
// @Summary Login
// @Description Password is 'banana' + the year from 42 years ago.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Password"
// @Success 200 {object} model.LoginResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 429 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeDetail(c, http.StatusBadRequest, err.Error())
		return
	}

	issued, err := h.svc.Login(c.Request.Context(), req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	h.setAccessCookie(c, issued.Value)
	c.JSON(http.StatusOK, model.LoginResponse{
		AccessToken: issued.Value,
		TokenType:   "bearer",
		ExpiresAt:   issued.ExpiresAt.Unix(),
	})
}

// PasswordHint godoc
// @Summary Password hint
// @Description Reveals the password formula and the current year, not the password itself.
// @Tags auth
// @Produce json
// @Success 200 {object} model.PasswordHintResponse
// @Router /api/auth/password-hint [get]
func (h *AuthHandler) PasswordHint(c *gin.Context) {
	c.JSON(http.StatusOK, model.PasswordHintResponse{Hint: h.svc.PasswordHint()})
}

// VerifyToken godoc
// @Summary Verify bearer token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.VerifyTokenResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/auth/verify-token [get]
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		writeUnauthorized(c, detailInvalidCredentials)
		return
	}
	c.JSON(http.StatusOK, model.VerifyTokenResponse{
		Valid:     true,
		Subject:   user.Subject,
		Username:  user.Subject,
		Timestamp: service.FormatTimestamp(time.Now()),
	})
}

// 쿠키는 응답 본문 토큰의 사본 (본문 토큰이 기준)
func (h *AuthHandler) setAccessCookie(c *gin.Context, token string) {
	cfg := h.svc.CookieConfig()
	// gin의 SetCookie는 값을 URL 인코딩하므로 net/http로 그대로 기록 (공백이 있으면 따옴표로 감쌈)
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     cfg.Name,
		Value:    "Bearer " + token,
		MaxAge:   cfg.MaxAge,
		Path:     cfg.Path,
		Domain:   cfg.Domain,
		Secure:   cfg.Secure,
		HttpOnly: true,
		SameSite: cfg.SameSite,
	})
}
