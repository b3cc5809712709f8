package docs

import "github.com/swaggo/swag"

// @title           Boardsync Realtime Gateway API
// @version         1.0
// @description     Push channel for board collaboration clients: room event streams, mutation broadcasts and invitation notifications

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token

// @tag.name Events
// @tag.description Room streams and mutation broadcasts

// @tag.name Invitations
// @tag.description Board invitation delivery

// @tag.name Notifications
// @tag.description Persisted notification management

// Register swagger info
func SwaggerInfo() *swag.Spec {
	return swag.Instance
}
