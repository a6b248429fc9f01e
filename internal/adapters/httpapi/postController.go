package httpapi

import (
	"net/http"

	postPort "besafe/internal/ports/post"

	"github.com/gin-gonic/gin"
)

type PostController struct{ pc PostUseCase }

func NewPostController(pc PostUseCase) *PostController { return &PostController{pc: pc} }

func (ctl *PostController) CriarPost(c *gin.Context) {
	var req postPort.CriarPostInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	env, err := ctl.pc.CriarPost(c.Request.Context(), req)
	if err != nil {
		c.JSON(statusFor(err), env)
		return
	}
	c.JSON(http.StatusCreated, env)
}

func (ctl *PostController) ListarPosts(c *gin.Context) {
	env, err := ctl.pc.ListarPosts(c.Request.Context(), c.Query("site"))
	c.JSON(statusFor(err), env)
}

func (ctl *PostController) AtualizarPost(c *gin.Context) {
	var req postPort.AtualizarPostInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	usuario, ok := currentUsername(c)
	if !ok {
		return
	}
	env, err := ctl.pc.AtualizarPost(c.Request.Context(), c.Param("id"), req, usuario)
	c.JSON(statusFor(err), env)
}

func (ctl *PostController) ExcluirPost(c *gin.Context) {
	usuario, ok := currentUsername(c)
	if !ok {
		return
	}
	env, err := ctl.pc.ExcluirPost(c.Request.Context(), c.Param("id"), usuario)
	c.JSON(statusFor(err), env)
}

func (ctl *PostController) VotarPost(c *gin.Context) {
	var req struct {
		Tipo string `json:"tipo" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	usuario, ok := currentUsername(c)
	if !ok {
		return
	}
	env, err := ctl.pc.VotarPost(c.Request.Context(), c.Param("id"), usuario, req.Tipo)
	c.JSON(statusFor(err), env)
}

// currentUsername reads the identity the JWT middleware stored. A missing
// value means the route was wired without the middleware.
func currentUsername(c *gin.Context) (string, bool) {
	username, exists := c.Get("username")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found in context"})
		return "", false
	}
	return username.(string), true
}
