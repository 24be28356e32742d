package auth

import (
	"context"
	"strings"

	"github.com/jhoicas/recepciones-api/internal/application/dto"
	"github.com/jhoicas/recepciones-api/internal/domain"
	"github.com/jhoicas/recepciones-api/internal/domain/entity"
	"github.com/jhoicas/recepciones-api/internal/domain/repository"
	"github.com/jhoicas/recepciones-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase caso de uso de autenticación: login y perfil propio.
// El alta de usuarios pasa por la administración (usecase.UserAdminUseCase).
type AuthUseCase struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, profileRepo repository.ProfileRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, profileRepo: profileRepo, jwtCfg: jwtCfg}
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrForbidden
	}
	profile, err := uc.profileRepo.GetByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		// identidad sin perfil: dato inconsistente, no se emite token
		return nil, domain.ErrUserNotFound
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, profile.Role.String(), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user, profile),
	}, nil
}

func toUserResponse(u *entity.User, p *entity.Profile) *dto.UserResponse {
	out := &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  p.FullName,
		Status:    u.Status,
		Locals:    []string{},
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if p.Role != "" {
		role := p.Role.String()
		out.Role = &role
	}
	return out
}
