package postapp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"besafe/internal/core/apperr"
	postEntity "besafe/internal/core/post"
	"besafe/internal/ports/envelope"
	postPort "besafe/internal/ports/post"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// maxVoteRetries bounds the compare-and-swap loop in VotarPost. Two
// concurrent votes on the same post make one of them retry on a fresh read
// instead of silently overwriting the other.
const maxVoteRetries = 3

type PostService struct {
	PostRepository postPort.PostRepository
	PostCache      postPort.PostCache
	Logger         *zap.Logger
}

func NewPostService(repo postPort.PostRepository, cache postPort.PostCache, logger *zap.Logger) *PostService {
	return &PostService{
		PostRepository: repo,
		PostCache:      cache,
		Logger:         logger,
	}
}

// CriarPost persists a new post with zeroed vote state.
func (s *PostService) CriarPost(ctx context.Context, dados postPort.CriarPostInput) (*envelope.Envelope, error) {
	author, err := plainString(dados.AuthorUsername)
	if err != nil {
		return envelope.Falha(err, "Erro ao criar post."), err
	}

	p := &postEntity.Post{
		ID:             uuid.Must(uuid.NewV4()),
		SiteName:       dados.SiteName,
		Description:    dados.Description,
		Category:       dados.Category,
		AuthorUsername: author,
		Likes:          0,
		Dislikes:       0,
		LikedUsers:     []string{},
		DislikedUsers:  []string{},
	}

	created, err := s.PostRepository.Create(ctx, p)
	if err != nil {
		s.Logger.Error("failed to create post", zap.String("siteName", dados.SiteName), zap.Error(err))
		err = fmt.Errorf("%w: %v", apperr.ErrDatastore, err)
		return envelope.Falha(err, "Erro ao criar post."), err
	}

	s.invalidateList(ctx)
	return envelope.Sucesso(toDTO(created), "Post criado com sucesso!"), nil
}

// ListarPosts returns all posts newest first, optionally filtered by a
// case-insensitive substring of the site name. Only the unfiltered listing is
// served from the cache.
func (s *PostService) ListarPosts(ctx context.Context, filtroSite string) (*envelope.Envelope, error) {
	if filtroSite == "" {
		if cached, err := s.PostCache.GetList(ctx); err != nil {
			s.Logger.Warn("post list cache read failed", zap.Error(err))
		} else if cached != nil {
			return envelope.Sucesso(cached, "Posts listados com sucesso!"), nil
		}
	}

	posts, err := s.PostRepository.FindAll(ctx, filtroSite)
	if err != nil {
		s.Logger.Error("failed to list posts", zap.String("filtroSite", filtroSite), zap.Error(err))
		err = fmt.Errorf("%w: %v", apperr.ErrDatastore, err)
		return envelope.Falha(err, "Erro ao listar posts."), err
	}

	dtos := make([]*postPort.PostDTO, 0, len(posts))
	for _, p := range posts {
		dtos = append(dtos, toDTO(p))
	}

	if filtroSite == "" {
		if err := s.PostCache.SetList(ctx, dtos); err != nil {
			s.Logger.Warn("post list cache write failed", zap.Error(err))
		}
	}
	return envelope.Sucesso(dtos, "Posts listados com sucesso!"), nil
}

// AtualizarPost overwrites siteName, description and category, and nothing
// else. Only the author may update a post.
func (s *PostService) AtualizarPost(ctx context.Context, id string, dados postPort.AtualizarPostInput, usuarioAtual string) (*envelope.Envelope, error) {
	if err := validUsername(usuarioAtual); err != nil {
		return envelope.Falha(err, "Erro ao atualizar post."), err
	}

	if _, err := s.fetchOwned(ctx, id, usuarioAtual); err != nil {
		return envelope.Falha(err, "Erro ao atualizar post."), err
	}

	updated, err := s.PostRepository.UpdateContent(ctx, id, dados.SiteName, dados.Description, dados.Category)
	if err != nil {
		s.Logger.Error("failed to update post", zap.String("id", id), zap.Error(err))
		err = fmt.Errorf("%w: %v", apperr.ErrDatastore, err)
		return envelope.Falha(err, "Erro ao atualizar post."), err
	}
	// the post can vanish between the authorization read and the write
	if updated == nil {
		err = fmt.Errorf("%w: Post não encontrado", apperr.ErrNotFound)
		return envelope.Falha(err, "Erro ao atualizar post."), err
	}

	s.invalidateList(ctx)
	return envelope.Sucesso(toDTO(updated), "Post atualizado com sucesso!"), nil
}

// ExcluirPost removes a post permanently. Only the author may delete it.
func (s *PostService) ExcluirPost(ctx context.Context, id, usuarioAtual string) (*envelope.Envelope, error) {
	if err := validUsername(usuarioAtual); err != nil {
		return envelope.Falha(err, "Erro ao excluir post."), err
	}

	if _, err := s.fetchOwned(ctx, id, usuarioAtual); err != nil {
		return envelope.Falha(err, "Erro ao excluir post."), err
	}

	if err := s.PostRepository.Delete(ctx, id); err != nil {
		s.Logger.Error("failed to delete post", zap.String("id", id), zap.Error(err))
		err = fmt.Errorf("%w: %v", apperr.ErrDatastore, err)
		return envelope.Falha(err, "Erro ao excluir post."), err
	}

	s.invalidateList(ctx)
	return envelope.Sucesso(nil, "Post excluído com sucesso!"), nil
}

// VotarPost toggles usuarioAtual's vote on a post. The read-modify-write is
// protected by a version compare-and-swap in the repository; on contention
// the whole cycle is retried on fresh state.
func (s *PostService) VotarPost(ctx context.Context, id, usuarioAtual, tipo string) (*envelope.Envelope, error) {
	if err := validUsername(usuarioAtual); err != nil {
		return envelope.Falha(err, "Erro ao votar post."), err
	}

	for range maxVoteRetries {
		p, err := s.PostRepository.FindByID(ctx, id)
		if err != nil {
			err = fmt.Errorf("%w: %v", apperr.ErrDatastore, err)
			return envelope.Falha(err, "Erro ao votar post."), err
		}
		if p == nil {
			err = fmt.Errorf("%w: Post não encontrado", apperr.ErrNotFound)
			return envelope.Falha(err, "Erro ao votar post."), err
		}

		if err := p.ApplyVote(usuarioAtual, tipo); err != nil {
			return envelope.Falha(err, "Erro ao votar post."), err
		}

		ok, err := s.PostRepository.SaveVotes(ctx, p)
		if err != nil {
			s.Logger.Error("failed to save vote", zap.String("id", id), zap.Error(err))
			err = fmt.Errorf("%w: %v", apperr.ErrDatastore, err)
			return envelope.Falha(err, "Erro ao votar post."), err
		}
		if ok {
			p.Version++
			s.invalidateList(ctx)
			return envelope.Sucesso(toDTO(p), "Voto registrado com sucesso!"), nil
		}

		s.Logger.Info("vote lost the version race, retrying", zap.String("id", id), zap.String("usuario", usuarioAtual))
	}

	err := fmt.Errorf("%w: voto não registrado após %d tentativas", apperr.ErrConflict, maxVoteRetries)
	return envelope.Falha(err, "Erro ao votar post."), err
}

// fetchOwned loads a post and checks that usuarioAtual is its author.
func (s *PostService) fetchOwned(ctx context.Context, id, usuarioAtual string) (*postEntity.Post, error) {
	p, err := s.PostRepository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrDatastore, err)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: Post não encontrado", apperr.ErrNotFound)
	}
	if p.AuthorUsername != usuarioAtual {
		return nil, fmt.Errorf("%w: Não autorizado", apperr.ErrUnauthorized)
	}
	return p, nil
}

// invalidateList drops the cached listing; cache trouble is logged, never
// surfaced.
func (s *PostService) invalidateList(ctx context.Context) {
	if err := s.PostCache.Invalidate(ctx); err != nil {
		s.Logger.Warn("post list cache invalidation failed", zap.Error(err))
	}
}

// plainString rejects JSON payloads where authorUsername is anything but a
// non-empty string (objects and arrays decode as maps/slices).
func plainString(v any) (string, error) {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("%w: authorUsername precisa ser uma string simples", apperr.ErrValidation)
	}
	return s, nil
}

func validUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("%w: authorUsername precisa ser uma string simples", apperr.ErrValidation)
	}
	return nil
}

func toDTO(p *postEntity.Post) *postPort.PostDTO {
	return &postPort.PostDTO{
		ID:             p.ID.String(),
		SiteName:       p.SiteName,
		Description:    p.Description,
		Category:       p.Category,
		AuthorUsername: p.AuthorUsername,
		Likes:          p.Likes,
		Dislikes:       p.Dislikes,
		LikedUsers:     p.LikedUsers,
		DislikedUsers:  p.DislikedUsers,
		CreatedAt:      p.CreatedAt.Format(time.RFC3339),
	}
}
