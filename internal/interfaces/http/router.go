package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/eymenelneccar/ewf/internal/application/auth"
	"github.com/eymenelneccar/ewf/internal/application/customers"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CustomerUC *customers.UseCase
	AuthUC     *auth.UseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Punto de entrada de login al que redirige el back-office al expirar la sesión
	api.Get("/login", authHandler.LoginEntry)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Customers (protegido); el borrado es solo admin
	customersGroup := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customersGroup.Get("/", customerHandler.List)
	customersGroup.Post("/", customerHandler.Create)
	customersGroup.Get("/:id", customerHandler.GetByID)
	customersGroup.Put("/:id", customerHandler.Update)
	customersGroup.Delete("/:id", RequireAdmin(), customerHandler.Delete)
	customersGroup.Get("/:id/transactions", customerHandler.History)
	customersGroup.Post("/:id/transactions", customerHandler.AddTransaction)
	customersGroup.Get("/:id/statement.pdf", customerHandler.Statement)
}
