package main

import (
	"github.com/motoshop/motoshop/cmd/commands"

	_ "github.com/motoshop/motoshop/docs"
)

// @title Motoshop API
// @version 1.0
// @description Motorcycle shop catalog, orders and blog

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	commands.Execute()
}
