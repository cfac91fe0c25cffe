package handlers

import (
	"net/http"
	"time"

	"github.com/MrTochi/focus-backend/internal/auth"
	"github.com/MrTochi/focus-backend/internal/dto"
	"github.com/MrTochi/focus-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles the account lifecycle endpoints.
type AuthHandler struct {
	userSvc    *service.UserService
	tokens     *auth.Tokens
	sessionTTL time.Duration
}

// NewAuthHandler returns a new AuthHandler.
func NewAuthHandler(userSvc *service.UserService, tokens *auth.Tokens, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{userSvc: userSvc, tokens: tokens, sessionTTL: sessionTTL}
}

// setSessionCookie writes the session token cookie: httpOnly, secure and
// cross-site so a separately hosted frontend can carry it.
func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(auth.SessionCookieName, token, maxAge, "/", "", true, true)
}

// Register godoc
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "Account details"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  map[string]any
// @Failure      500   {object}  map[string]any
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "All fields are required.")
		return
	}
	if _, err := h.userSvc.Register(c.Request.Context(), req.Name, req.Email, req.Password); err != nil {
		failFromService(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Registered! Please verify your email.",
		"success": true,
	})
}

// Login godoc
// @Summary      Login with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credentials"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "All fields are required.")
		return
	}
	user, err := h.userSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		failFromService(c, err)
		return
	}
	token, err := h.tokens.Issue(user.ID, user.Role)
	if err != nil {
		serverError(c)
		return
	}
	h.setSessionCookie(c, token, int(h.sessionTTL.Seconds()))
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"success": true,
		"token":   token,
		"user":    dto.UserToResponse(user),
	})
}

// Logout godoc
// @Summary      Logout
// @Tags         auth
// @Success      200  {object}  map[string]any
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "User Logged out successfully!", "success": true})
}

// VerifyEmail godoc
// @Summary      Verify an email address
// @Tags         auth
// @Produce      json
// @Param        token  path  string  true  "Verification token"
// @Success      200    {object}  map[string]any
// @Failure      400    {object}  map[string]any
// @Router       /auth/verify-email/{token} [post]
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	user, err := h.userSvc.VerifyEmail(c.Request.Context(), c.Param("token"))
	if err != nil {
		failFromService(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Email verified successfully!",
		"success": true,
		"user":    dto.UserToResponse(user),
	})
}

// ForgotPassword godoc
// @Summary      Request a password reset link
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ForgotPasswordRequest  true  "Account email"
// @Success      200   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "All fields are required.")
		return
	}
	token, err := h.userSvc.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		failFromService(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Reset link sent to email",
		"success": true,
		"token":   token,
	})
}

// ResetPassword godoc
// @Summary      Reset password with a token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        token  path  string  true  "Reset token"
// @Param        body   body  dto.ResetPasswordRequest  true  "New password"
// @Success      200    {object}  map[string]any
// @Failure      400    {object}  map[string]any
// @Router       /auth/reset-password/{token} [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "All fields are required.")
		return
	}
	if err := h.userSvc.ResetPassword(c.Request.Context(), c.Param("token"), req.Password); err != nil {
		failFromService(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset successful", "success": true})
}

// GetUser godoc
// @Summary      Get the caller's profile
// @Tags         auth
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /auth/get-user [get]
func (h *AuthHandler) GetUser(c *gin.Context) {
	user, err := h.userSvc.GetUser(c.Request.Context(), auth.UserIDFromContext(c))
	if err != nil {
		failFromService(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "User fetched successfully!",
		"success": true,
		"user":    dto.UserToResponse(user),
	})
}

// GetUsers godoc
// @Summary      List all users
// @Tags         auth
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  map[string]any
// @Router       /auth/get-users [get]
func (h *AuthHandler) GetUsers(c *gin.Context) {
	users, err := h.userSvc.ListUsers(c.Request.Context())
	if err != nil {
		serverError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Users fetched successfully!",
		"success": true,
		"users":   dto.UsersToResponses(users),
	})
}

// UpdateUser godoc
// @Summary      Update the caller's name or password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body  dto.UpdateUserRequest  true  "Fields to change"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  map[string]any
// @Router       /auth/update-user [post]
func (h *AuthHandler) UpdateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	user, err := h.userSvc.UpdateUser(c.Request.Context(), auth.UserIDFromContext(c), req.Name, req.Password)
	if err != nil {
		failFromService(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully",
		"success": true,
		"user":    dto.UserToResponse(user),
	})
}

// DeleteUser godoc
// @Summary      Delete a user (admin or self)
// @Tags         auth
// @Produce      json
// @Security     CookieAuth
// @Param        id   path  int  true  "User ID"
// @Success      200  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /auth/delete-user/{id} [delete]
func (h *AuthHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	user, err := h.userSvc.DeleteUser(c.Request.Context(), auth.UserIDFromContext(c), auth.RoleFromContext(c), id)
	if err != nil {
		failFromService(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "User deleted successfully!",
		"success": true,
		"user":    dto.UserToResponse(user),
	})
}
