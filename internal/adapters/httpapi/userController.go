package httpapi

import (
	"errors"
	"net/http"

	"besafe/internal/core/apperr"

	"github.com/gin-gonic/gin"
)

type UserController struct{ uc UserUseCase }

func NewUserController(uc UserUseCase) *UserController { return &UserController{uc: uc} }

func (ctl *UserController) CriarUsuario(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	env, err := ctl.uc.CriarUsuario(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.JSON(statusFor(err), env)
		return
	}
	c.JSON(http.StatusCreated, env)
}

func (ctl *UserController) LoginUsuario(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	env, err := ctl.uc.LoginUsuario(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		// bad credentials are 401 here, not the 403 statusFor gives
		if errors.Is(err, apperr.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, env)
			return
		}
		c.JSON(statusFor(err), env)
		return
	}
	c.JSON(http.StatusOK, env)
}

func (ctl *UserController) ColetarUsuarios(c *gin.Context) {
	env, err := ctl.uc.ColetarUsuarios(c.Request.Context())
	c.JSON(statusFor(err), env)
}

func (ctl *UserController) ColetarUsuarioPeloNome(c *gin.Context) {
	env, err := ctl.uc.ColetarUsuarioPeloNome(c.Request.Context(), c.Param("username"))
	c.JSON(statusFor(err), env)
}

func (ctl *UserController) ExcluirUsuario(c *gin.Context) {
	usuario, ok := currentUsername(c)
	if !ok {
		return
	}
	target := c.Param("username")
	// an account can only remove itself
	if usuario != target {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot remove another user"})
		return
	}
	env, err := ctl.uc.ExcluirUsuario(c.Request.Context(), target)
	c.JSON(statusFor(err), env)
}

func (ctl *UserController) UploadPerfilImage(c *gin.Context) {
	var req struct {
		Base64String string `json:"base64String" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	usuario, ok := currentUsername(c)
	if !ok {
		return
	}
	env, err := ctl.uc.UploadPerfilImage(c.Request.Context(), usuario, req.Base64String)
	c.JSON(statusFor(err), env)
}
