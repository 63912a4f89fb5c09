/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>

*/
// @title           Approval BFF API
// @version         1.0
// @description     Product approval workflow BFF, orchestrating case management, similarity retrieval and justification generation
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token from the auth service
package main

import "github.com/nikita2423/approval-bff/cmd"

func main() {
	cmd.Execute()
}
