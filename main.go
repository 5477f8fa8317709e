package main

import (
	"context"
	"log"

	_ "github.com/joho/godotenv/autoload"
	_ "github.com/mlmarch/mlmarch-gateway/docs"
)

// @title ML March API
// @version 1.0
// @description ML March gateway in front of the sessions backend
// @swagger 2.0

// @license.name Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /

// @externalDocs.description  OpenAPI
// @externalDocs.url          https://swagger.io/resources/open-api/
func main() {
	app, err := SetupApp()
	if err != nil {
		log.Fatalf("failed to initialize app: %v", err)
	}

	router := BuildRouter(app)

	defer app.Shutdown(context.Background())

	if err := app.Run(router); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
