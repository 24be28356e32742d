package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/recepciones-api/internal/application/access"
	"github.com/jhoicas/recepciones-api/internal/application/dto"
	"github.com/jhoicas/recepciones-api/internal/domain"
	"github.com/jhoicas/recepciones-api/internal/domain/entity"
	"github.com/jhoicas/recepciones-api/internal/domain/rbac"
	"github.com/jhoicas/recepciones-api/internal/domain/repository"
)

// LocalUseCase casos de uso CRUD para locales (tiendas y bodegas).
// Las mutaciones exigen un actor de alcance global; la eliminación pasa antes por el
// guardián de referencias.
type LocalUseCase struct {
	repo     repository.LocalRepository
	users    repository.UserRepository
	profiles repository.ProfileRepository
	guard    *access.LocalDeletionGuard
	policy   rbac.Policy
	log      zerolog.Logger
}

// NewLocalUseCase construye el caso de uso.
func NewLocalUseCase(
	repo repository.LocalRepository,
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	guard *access.LocalDeletionGuard,
	policy rbac.Policy,
	log zerolog.Logger,
) *LocalUseCase {
	return &LocalUseCase{
		repo:     repo,
		users:    users,
		profiles: profiles,
		guard:    guard,
		policy:   policy,
		log:      log.With().Str("component", "locals").Logger(),
	}
}

func (uc *LocalUseCase) requireGlobalScope(ctx context.Context, actorID, op string) error {
	if err := requireActiveIdentity(ctx, uc.users, actorID, uc.log); err != nil {
		return err
	}
	profile, err := uc.profiles.GetByID(ctx, actorID)
	if err != nil {
		return domain.NewLookupError("perfil", err)
	}
	if profile == nil {
		return domain.ErrUserNotFound
	}
	if !uc.policy.HasGlobalScope(profile.Role) {
		uc.log.Warn().Str("operation", op).Str("actor_id", actorID).
			Str("actor_role", profile.Role.String()).Msg("operación denegada")
		return domain.ErrForbidden
	}
	return nil
}

// Create crea un nuevo local.
func (uc *LocalUseCase) Create(ctx context.Context, actorID string, in dto.CreateLocalRequest) (*dto.LocalResponse, error) {
	if err := uc.requireGlobalScope(ctx, actorID, "create-local"); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" || !entity.IsValidLocalType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	local := &entity.Local{
		Name:      name,
		Type:      in.Type,
		Address:   strings.TrimSpace(in.Address),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, local); err != nil {
		return nil, err
	}
	return toLocalResponse(local), nil
}

// Get obtiene un local por nombre; (nil, nil) si no existe.
func (uc *LocalUseCase) Get(ctx context.Context, name string) (*dto.LocalResponse, error) {
	local, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if local == nil {
		return nil, nil
	}
	return toLocalResponse(local), nil
}

// Update actualiza tipo y dirección de un local.
func (uc *LocalUseCase) Update(ctx context.Context, actorID, name string, in dto.UpdateLocalRequest) (*dto.LocalResponse, error) {
	if err := uc.requireGlobalScope(ctx, actorID, "update-local"); err != nil {
		return nil, err
	}
	local, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if local == nil {
		return nil, domain.ErrLocalNotFound
	}
	if in.Type != nil {
		if !entity.IsValidLocalType(*in.Type) {
			return nil, domain.ErrInvalidInput
		}
		local.Type = *in.Type
	}
	if in.Address != nil {
		local.Address = strings.TrimSpace(*in.Address)
	}
	local.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, local); err != nil {
		return nil, err
	}
	return toLocalResponse(local), nil
}

// List lista locales con paginación.
func (uc *LocalUseCase) List(ctx context.Context, limit, offset int) (*dto.LocalListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocalResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLocalResponse(l))
	}
	return &dto.LocalListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// CanDelete informa si el local puede eliminarse y, si no, la razón.
func (uc *LocalUseCase) CanDelete(ctx context.Context, name string) (access.LocalDeletionCheck, error) {
	return uc.guard.CanDeleteLocal(ctx, name)
}

// Delete elimina un local que no esté referenciado por asignaciones ni recepciones.
func (uc *LocalUseCase) Delete(ctx context.Context, actorID, name string) error {
	if err := uc.requireGlobalScope(ctx, actorID, "delete-local"); err != nil {
		return err
	}
	local, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if local == nil {
		return domain.ErrLocalNotFound
	}
	check, err := uc.guard.CanDeleteLocal(ctx, local.Name)
	if err != nil {
		return err
	}
	if !check.Allowed {
		uc.log.Info().Str("local", local.Name).Str("reason", check.Reason).Msg("eliminación de local bloqueada")
		return &domain.LocalInUseError{Local: local.Name, Reason: check.Reason}
	}
	if err := uc.repo.Delete(ctx, local.Name); err != nil {
		return err
	}
	uc.log.Info().Str("actor_id", actorID).Str("local", local.Name).Msg("local eliminado")
	return nil
}

func toLocalResponse(l *entity.Local) *dto.LocalResponse {
	if l == nil {
		return nil
	}
	return &dto.LocalResponse{
		Name:      l.Name,
		Type:      l.Type,
		Address:   l.Address,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}
