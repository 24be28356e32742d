package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/recepciones-api/internal/application/auth"
	"github.com/jhoicas/recepciones-api/internal/application/usecase"
	"github.com/jhoicas/recepciones-api/internal/domain/rbac"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserAdminUC *usecase.UserAdminUseCase
	LocalUC     *usecase.LocalUseCase
	Registry    rbac.Registry
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	userHandler := NewUserHandler(deps.UserAdminUC)
	protected.Get("/me", userHandler.Me)

	// Usuarios: cualquier rol registrado; la pasarela decide jerarquía y local.
	withRole := RequireRole(roleNames(deps.Registry.Roles())...)
	users := protected.Group("/users", withRole)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.Get)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
	users.Get("/:id/locals", userHandler.GetLocals)
	users.Put("/:id/locals", userHandler.AssignLocals)
	protected.Get("/roles/assignable", withRole, userHandler.AssignableRoles)

	// Locales: lectura para cualquier usuario autenticado; mutaciones con alcance global.
	global := RequireRole(rbac.RoleAdmin.String(), rbac.RoleWarehouseSupervisor.String())
	localHandler := NewLocalHandler(deps.LocalUC)
	locals := protected.Group("/locals")
	locals.Get("/", localHandler.List)
	locals.Get("/:name", localHandler.GetByName)
	locals.Get("/:name/deletable", localHandler.Deletable)
	locals.Post("/", global, localHandler.Create)
	locals.Put("/:name", global, localHandler.Update)
	locals.Delete("/:name", global, localHandler.Delete)
}

func roleNames(roles []rbac.Role) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, r.String())
	}
	return out
}
