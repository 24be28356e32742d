// seed_admin crea el primer administrador (identidad + perfil) a partir de SEED_ADMIN_*.
// Si el email ya existe no modifica nada.
//
// Uso: SEED_ADMIN_EMAIL=... SEED_ADMIN_PASSWORD=... go run ./cmd/seed_admin
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/recepciones-api/internal/domain/entity"
	"github.com/jhoicas/recepciones-api/internal/domain/rbac"
	"github.com/jhoicas/recepciones-api/internal/domain/repository"
	"github.com/jhoicas/recepciones-api/internal/infrastructure/postgres"
	"github.com/jhoicas/recepciones-api/pkg/config"
	"github.com/jhoicas/recepciones-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	created, err := seedAdmin(ctx, postgres.NewUserRepository(pool), postgres.NewProfileRepository(pool), cfg.Seed)
	if err != nil {
		log.Fatal().Err(err).Msg("crear administrador")
	}
	if !created {
		log.Info().Str("email", cfg.Seed.AdminEmail).Msg("el administrador ya existe, sin cambios")
		return
	}
	log.Info().Str("email", cfg.Seed.AdminEmail).Msg("administrador creado")
}

// seedAdmin crea identidad y perfil con rol administrador. Devuelve false si el email ya existe.
func seedAdmin(ctx context.Context, users repository.UserRepository, profiles repository.ProfileRepository, seed config.SeedConfig) (bool, error) {
	email := strings.ToLower(strings.TrimSpace(seed.AdminEmail))
	if email == "" || len(seed.AdminPassword) < 8 {
		return false, fmt.Errorf("SEED_ADMIN_EMAIL y SEED_ADMIN_PASSWORD (mín. 8 caracteres) son requeridos")
	}
	existing, err := users.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if existing != nil {
		// completar un perfil faltante de una ejecución anterior interrumpida
		profile, err := profiles.GetByID(ctx, existing.ID)
		if err != nil || profile != nil {
			return false, err
		}
		return false, profiles.Create(ctx, adminProfile(existing.ID, seed.AdminName, time.Now()))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seed.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Create(ctx, user); err != nil {
		return false, err
	}
	if err := profiles.Create(ctx, adminProfile(user.ID, seed.AdminName, now)); err != nil {
		return false, err
	}
	return true, nil
}

func adminProfile(id, name string, now time.Time) *entity.Profile {
	if strings.TrimSpace(name) == "" {
		name = "Administrador"
	}
	return &entity.Profile{ID: id, FullName: strings.TrimSpace(name), Role: rbac.RoleAdmin, CreatedAt: now, UpdatedAt: now}
}
