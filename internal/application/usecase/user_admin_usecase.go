package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/recepciones-api/internal/application/access"
	"github.com/jhoicas/recepciones-api/internal/application/dto"
	"github.com/jhoicas/recepciones-api/internal/domain"
	"github.com/jhoicas/recepciones-api/internal/domain/entity"
	"github.com/jhoicas/recepciones-api/internal/domain/rbac"
	"github.com/jhoicas/recepciones-api/internal/domain/repository"
)

// Operaciones administrativas (para logs y errores parciales).
const (
	OpCreateUser   = "create-user"
	OpUpdateUser   = "update-user"
	OpDeleteUser   = "delete-user"
	OpAssignLocals = "assign-user-locals"
)

// UserAdminUseCase pasarela de administración de usuarios: reúne rol y local principal
// de actor y objetivo, consulta la política y solo entonces muta el almacén.
//
// Compuertas por operación:
//   - rol (CanManageRole / AssignableRoles): todas las mutaciones.
//   - local (CanAssignLocal): solo las que tocan asignaciones de locales
//     (crear con locales, asignar locales, eliminar usuario).
type UserAdminUseCase struct {
	users      repository.UserRepository
	profiles   repository.ProfileRepository
	userLocals repository.UserLocalRepository
	locals     repository.LocalRepository
	txRunner   UserLocalsTxRunner
	resolver   *access.LocalityResolver
	policy     rbac.Policy
	log        zerolog.Logger
}

// NewUserAdminUseCase construye la pasarela con sus puertos.
func NewUserAdminUseCase(
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	userLocals repository.UserLocalRepository,
	locals repository.LocalRepository,
	txRunner UserLocalsTxRunner,
	policy rbac.Policy,
	log zerolog.Logger,
) *UserAdminUseCase {
	return &UserAdminUseCase{
		users:      users,
		profiles:   profiles,
		userLocals: userLocals,
		locals:     locals,
		txRunner:   txRunner,
		resolver:   access.NewLocalityResolver(userLocals),
		policy:     policy,
		log:        log.With().Str("component", "user_admin").Logger(),
	}
}

// subject actor u objetivo ya resuelto.
type subject struct {
	id           string
	profile      *entity.Profile
	locals       []entity.UserLocal
	primaryLocal *string
}

func (s *subject) role() rbac.Role { return s.profile.Role }

// resolve obtiene perfil y locales de un usuario. Un perfil inexistente es ErrUserNotFound;
// un fallo del almacén es *domain.LookupError y nunca se degrada a "sin rol" o "sin locales".
func (uc *UserAdminUseCase) resolve(ctx context.Context, userID string) (*subject, error) {
	if userID == "" {
		return nil, domain.ErrInvalidInput
	}
	profile, err := uc.profiles.GetByID(ctx, userID)
	if err != nil {
		uc.log.Error().Err(err).Str("user_id", userID).Msg("consulta de perfil fallida")
		return nil, domain.NewLookupError("perfil", err)
	}
	if profile == nil {
		return nil, domain.ErrUserNotFound
	}
	locals, err := uc.resolver.Locals(ctx, userID)
	if err != nil {
		uc.log.Error().Err(err).Str("user_id", userID).Msg("consulta de locales fallida")
		return nil, err
	}
	return &subject{
		id:           userID,
		profile:      profile,
		locals:       locals,
		primaryLocal: entity.PrimaryLocal(locals),
	}, nil
}

// resolveActor resuelve al actor exigiendo además una identidad activa: un token vigente
// de una cuenta desactivada o eliminada no conserva poderes.
func (uc *UserAdminUseCase) resolveActor(ctx context.Context, actorID string) (*subject, error) {
	if actorID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := requireActiveIdentity(ctx, uc.users, actorID, uc.log); err != nil {
		return nil, err
	}
	return uc.resolve(ctx, actorID)
}

// requireActiveIdentity ErrForbidden si la identidad no existe o no está activa.
func requireActiveIdentity(ctx context.Context, users repository.UserRepository, userID string, log zerolog.Logger) error {
	user, err := users.GetByID(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("consulta de identidad fallida")
		return domain.NewLookupError("usuario", err)
	}
	if user == nil || user.Status != entity.UserStatusActive {
		log.Warn().Str("actor_id", userID).Msg("actor sin identidad activa")
		return domain.ErrForbidden
	}
	return nil
}

func (uc *UserAdminUseCase) deny(op, gate string, actor *subject, targetID string, targetRole rbac.Role) error {
	uc.log.Warn().
		Str("operation", op).
		Str("gate", gate).
		Str("actor_id", actor.id).
		Str("actor_role", actor.role().String()).
		Str("target_id", targetID).
		Str("target_role", targetRole.String()).
		Msg("operación denegada")
	return domain.ErrForbidden
}

// checkRole compuerta de jerarquía sobre el rol actual del objetivo.
func (uc *UserAdminUseCase) checkRole(op string, actor, target *subject) error {
	if !uc.policy.CanManageRole(actor.role(), target.role(), actor.primaryLocal, target.primaryLocal) {
		return uc.deny(op, "role", actor, target.id, target.role())
	}
	return nil
}

// checkLocals compuerta de localidad: local principal del objetivo y cada local solicitado.
func (uc *UserAdminUseCase) checkLocals(op string, actor *subject, targetID string, targetRole rbac.Role, targetPrimary *string, requested []string) error {
	if !uc.policy.CanAssignLocal(actor.role(), actor.primaryLocal, targetPrimary) {
		return uc.deny(op, "locality", actor, targetID, targetRole)
	}
	for i := range requested {
		if !uc.policy.CanAssignLocal(actor.role(), actor.primaryLocal, &requested[i]) {
			return uc.deny(op, "locality", actor, targetID, targetRole)
		}
	}
	return nil
}

// ensureLocalsExist verifica que cada nombre corresponda a un local registrado.
func (uc *UserAdminUseCase) ensureLocalsExist(ctx context.Context, names []string) error {
	for _, name := range names {
		l, err := uc.locals.GetByName(ctx, name)
		if err != nil {
			return domain.NewLookupError("local", err)
		}
		if l == nil {
			return domain.ErrLocalNotFound
		}
	}
	return nil
}

// Create crea identidad, perfil y asignaciones de un usuario nuevo.
func (uc *UserAdminUseCase) Create(ctx context.Context, actorID string, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	actor, err := uc.resolveActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	newRole := rbac.ParseRole(in.Role)
	if !uc.policy.CanAssignRole(actor.role(), newRole) {
		return nil, uc.deny(OpCreateUser, "role", actor, "", newRole)
	}

	now := time.Now()
	userID := uuid.New().String()
	names := normalizeLocalNames(in.Locals)
	assignments := toAssignments(userID, names, now)
	// Un actor de alcance por local no podría volver a gestionar a un usuario sin local principal.
	if len(assignments) == 0 && actor.role() == rbac.RoleStoreSupervisor {
		uc.log.Warn().Str("operation", OpCreateUser).Str("actor_id", actor.id).Msg("locales requeridos para Store Supervisor")
		return nil, fmt.Errorf("%w: Store Supervisor debe asignar al menos un local", domain.ErrInvalidInput)
	}
	if len(assignments) > 0 {
		if err := uc.checkLocals(OpCreateUser, actor, "", newRole, entity.PrimaryLocal(assignments), names); err != nil {
			return nil, err
		}
		if err := uc.ensureLocalsExist(ctx, names); err != nil {
			return nil, err
		}
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, domain.NewLookupError("usuario por email", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		ID:           userID,
		Email:        email,
		PasswordHash: string(hash),
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	profile := &entity.Profile{
		ID:        userID,
		FullName:  strings.TrimSpace(in.FullName),
		Role:      newRole,
		CreatedAt: now,
		UpdatedAt: now,
	}
	saga := access.NewSaga(OpCreateUser, uc.log).
		Step("create-identity", func(ctx context.Context) error { return uc.users.Create(ctx, user) }).
		Step("create-profile", func(ctx context.Context) error { return uc.profiles.Create(ctx, profile) })
	if len(assignments) > 0 {
		saga.Step("insert-locals", func(ctx context.Context) error { return uc.userLocals.InsertMany(ctx, assignments) })
	}
	if _, err := saga.Run(ctx); err != nil {
		return nil, err
	}

	uc.log.Info().Str("actor_id", actor.id).Str("user_id", userID).Str("role", newRole.String()).Msg("usuario creado")
	return toUserResponse(user, profile, assignments), nil
}

// Update modifica nombre, rol y estado de un usuario.
// No toca locales, por lo que solo aplica la compuerta de rol; un rol nuevo debe estar
// entre los que el actor puede otorgar.
func (uc *UserAdminUseCase) Update(ctx context.Context, actorID, targetID string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	actor, err := uc.resolveActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	target, err := uc.resolve(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if err := uc.checkRole(OpUpdateUser, actor, target); err != nil {
		return nil, err
	}
	if in.Role != nil {
		newRole := rbac.ParseRole(*in.Role)
		if !uc.policy.CanAssignRole(actor.role(), newRole) {
			return nil, uc.deny(OpUpdateUser, "new-role", actor, target.id, newRole)
		}
	}

	user, err := uc.users.GetByID(ctx, target.id)
	if err != nil {
		return nil, domain.NewLookupError("usuario", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	now := time.Now()
	profile := *target.profile
	if in.FullName != nil {
		profile.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.Role != nil {
		profile.Role = rbac.ParseRole(*in.Role)
	}
	profile.UpdatedAt = now

	saga := access.NewSaga(OpUpdateUser, uc.log).
		Step("update-profile", func(ctx context.Context) error { return uc.profiles.Update(ctx, &profile) })
	if in.Status != nil && *in.Status != user.Status {
		user.Status = *in.Status
		user.UpdatedAt = now
		saga.Step("update-identity", func(ctx context.Context) error { return uc.users.Update(ctx, user) })
	}
	if _, err := saga.Run(ctx); err != nil {
		return nil, err
	}
	return toUserResponse(user, &profile, target.locals), nil
}

// Delete elimina asignaciones, identidad y perfil, en ese orden. El perfil va al final
// porque es lo que permite volver a autorizar un reintento tras un fallo parcial.
func (uc *UserAdminUseCase) Delete(ctx context.Context, actorID, targetID string) error {
	if actorID == targetID {
		return domain.ErrForbidden
	}
	actor, err := uc.resolveActor(ctx, actorID)
	if err != nil {
		return err
	}
	target, err := uc.resolve(ctx, targetID)
	if err != nil {
		return err
	}
	if err := uc.checkRole(OpDeleteUser, actor, target); err != nil {
		return err
	}
	if err := uc.checkLocals(OpDeleteUser, actor, target.id, target.role(), target.primaryLocal, nil); err != nil {
		return err
	}

	_, err = access.NewSaga(OpDeleteUser, uc.log).
		Step("delete-locals", func(ctx context.Context) error { return uc.userLocals.DeleteByUser(ctx, target.id) }).
		Step("delete-identity", func(ctx context.Context) error { return uc.users.Delete(ctx, target.id) }).
		Step("delete-profile", func(ctx context.Context) error { return uc.profiles.Delete(ctx, target.id) }).
		Run(ctx)
	if err != nil {
		return err
	}
	uc.log.Info().Str("actor_id", actor.id).Str("user_id", target.id).Msg("usuario eliminado")
	return nil
}

// AssignLocals reemplaza por completo los locales del usuario (borrar todo e insertar).
func (uc *UserAdminUseCase) AssignLocals(ctx context.Context, actorID, targetID string, in dto.AssignLocalsRequest) (*dto.UserLocalsResponse, error) {
	actor, err := uc.resolveActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	target, err := uc.resolve(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if err := uc.checkRole(OpAssignLocals, actor, target); err != nil {
		return nil, err
	}
	names := normalizeLocalNames(in.Locals)
	if err := uc.checkLocals(OpAssignLocals, actor, target.id, target.role(), target.primaryLocal, names); err != nil {
		return nil, err
	}
	if err := uc.ensureLocalsExist(ctx, names); err != nil {
		return nil, err
	}

	assignments := toAssignments(target.id, names, time.Now())
	err = uc.txRunner.RunUserLocals(ctx, func(repo repository.UserLocalRepository) error {
		if err := repo.DeleteByUser(ctx, target.id); err != nil {
			return err
		}
		if len(assignments) == 0 {
			return nil
		}
		return repo.InsertMany(ctx, assignments)
	})
	if err != nil {
		uc.log.Error().Err(err).Str("user_id", target.id).Msg("reemplazo de locales fallido")
		return nil, err
	}
	uc.log.Info().Str("actor_id", actor.id).Str("user_id", target.id).Strs("locals", names).Msg("locales asignados")
	return toUserLocalsResponse(target.id, assignments), nil
}

// GetLocals devuelve los locales de un usuario. El actor debe tener un rol registrado.
func (uc *UserAdminUseCase) GetLocals(ctx context.Context, actorID, targetID string) (*dto.UserLocalsResponse, error) {
	if _, err := uc.requireKnownActor(ctx, actorID); err != nil {
		return nil, err
	}
	target, err := uc.resolve(ctx, targetID)
	if err != nil {
		return nil, err
	}
	return toUserLocalsResponse(target.id, target.locals), nil
}

// Get devuelve un usuario con sus locales.
func (uc *UserAdminUseCase) Get(ctx context.Context, actorID, targetID string) (*dto.UserResponse, error) {
	if _, err := uc.requireKnownActor(ctx, actorID); err != nil {
		return nil, err
	}
	target, err := uc.resolve(ctx, targetID)
	if err != nil {
		return nil, err
	}
	user, err := uc.users.GetByID(ctx, target.id)
	if err != nil {
		return nil, domain.NewLookupError("usuario", err)
	}
	return toUserResponse(user, target.profile, target.locals), nil
}

// Me devuelve el propio usuario con sus locales y local principal. No exige rol.
func (uc *UserAdminUseCase) Me(ctx context.Context, actorID string) (*dto.UserResponse, error) {
	actor, err := uc.resolveActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	user, err := uc.users.GetByID(ctx, actor.id)
	if err != nil {
		return nil, domain.NewLookupError("usuario", err)
	}
	return toUserResponse(user, actor.profile, actor.locals), nil
}

// List lista perfiles con paginación, cada uno con sus locales.
func (uc *UserAdminUseCase) List(ctx context.Context, actorID string, limit, offset int) (*dto.UserListResponse, error) {
	if _, err := uc.requireKnownActor(ctx, actorID); err != nil {
		return nil, err
	}
	list, err := uc.profiles.List(ctx, limit, offset)
	if err != nil {
		return nil, domain.NewLookupError("perfiles", err)
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, p := range list {
		locals, err := uc.resolver.Locals(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, *toUserResponse(nil, p, locals))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// AssignableRoles devuelve los roles que el actor puede otorgar.
func (uc *UserAdminUseCase) AssignableRoles(ctx context.Context, actorID string) (*dto.AssignableRolesResponse, error) {
	actor, err := uc.resolveActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	roles := uc.policy.AssignableRoles(actor.role())
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, r.String())
	}
	return &dto.AssignableRolesResponse{Role: actor.role().String(), Roles: out}, nil
}

func (uc *UserAdminUseCase) requireKnownActor(ctx context.Context, actorID string) (*subject, error) {
	actor, err := uc.resolveActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !uc.policy.Registry().Known(actor.role()) {
		return nil, uc.deny("read-users", "role", actor, "", rbac.RoleNone)
	}
	return actor, nil
}

// normalizeLocalNames recorta espacios, descarta vacíos y duplicados, conserva el orden.
func normalizeLocalNames(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, n := range in {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

func toAssignments(userID string, names []string, at time.Time) []entity.UserLocal {
	out := make([]entity.UserLocal, 0, len(names))
	for _, n := range names {
		out = append(out, entity.UserLocal{UserID: userID, LocalName: n, AssignedAt: at})
	}
	return out
}

func localNames(list []entity.UserLocal) []string {
	sorted := make([]entity.UserLocal, len(list))
	copy(sorted, list)
	entity.SortAssignments(sorted)
	out := make([]string, 0, len(sorted))
	for _, ul := range sorted {
		out = append(out, ul.LocalName)
	}
	return out
}

func toUserLocalsResponse(userID string, list []entity.UserLocal) *dto.UserLocalsResponse {
	return &dto.UserLocalsResponse{
		UserID:       userID,
		PrimaryLocal: entity.PrimaryLocal(list),
		Locals:       localNames(list),
	}
}

func toUserResponse(u *entity.User, p *entity.Profile, locals []entity.UserLocal) *dto.UserResponse {
	out := &dto.UserResponse{
		ID:           p.ID,
		FullName:     p.FullName,
		PrimaryLocal: entity.PrimaryLocal(locals),
		Locals:       localNames(locals),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.Role != rbac.RoleNone {
		role := p.Role.String()
		out.Role = &role
	}
	if u != nil {
		out.Email = u.Email
		out.Status = u.Status
	}
	return out
}
