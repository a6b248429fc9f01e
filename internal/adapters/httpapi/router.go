package httpapi

import (
	"context"

	"besafe/internal/adapters/httpapi/middleware"
	"besafe/internal/ports/envelope"
	postPort "besafe/internal/ports/post"

	"github.com/gin-gonic/gin"
)

// UserUseCase is the inbound port the user controller needs.
type UserUseCase interface {
	CriarUsuario(ctx context.Context, username, password string) (*envelope.Envelope, error)
	LoginUsuario(ctx context.Context, username, password string) (*envelope.Envelope, error)
	ColetarUsuarioPeloNome(ctx context.Context, username string) (*envelope.Envelope, error)
	ColetarUsuarios(ctx context.Context) (*envelope.Envelope, error)
	ExcluirUsuario(ctx context.Context, username string) (*envelope.Envelope, error)
	UploadPerfilImage(ctx context.Context, username, base64String string) (*envelope.Envelope, error)
}

// PostUseCase is the inbound port the post controller needs.
type PostUseCase interface {
	CriarPost(ctx context.Context, dados postPort.CriarPostInput) (*envelope.Envelope, error)
	ListarPosts(ctx context.Context, filtroSite string) (*envelope.Envelope, error)
	AtualizarPost(ctx context.Context, id string, dados postPort.AtualizarPostInput, usuarioAtual string) (*envelope.Envelope, error)
	ExcluirPost(ctx context.Context, id, usuarioAtual string) (*envelope.Envelope, error)
	VotarPost(ctx context.Context, id, usuarioAtual, tipo string) (*envelope.Envelope, error)
}

// SetupRoutes wires controllers to routes; use cases are injected from main.
func SetupRoutes(userUC UserUseCase, postUC PostUseCase, jwtKey []byte) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.CORS())

	uc := NewUserController(userUC)
	pc := NewPostController(postUC)
	auth := middleware.JWTAuth(jwtKey)

	r.POST("/usuarios", uc.CriarUsuario)
	r.POST("/login", uc.LoginUsuario)
	r.GET("/usuarios", uc.ColetarUsuarios)
	r.GET("/usuarios/:username", uc.ColetarUsuarioPeloNome)
	r.DELETE("/usuarios/:username", auth, uc.ExcluirUsuario)
	r.PUT("/usuarios/imagem", auth, uc.UploadPerfilImage)

	r.GET("/posts", pc.ListarPosts)
	r.POST("/posts", auth, pc.CriarPost)
	r.PUT("/posts/:id", auth, pc.AtualizarPost)
	r.DELETE("/posts/:id", auth, pc.ExcluirPost)
	r.POST("/posts/:id/votar", auth, pc.VotarPost)

	return r
}
