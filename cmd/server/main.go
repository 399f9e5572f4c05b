package main

import (
	"os"

	"draftgen/backend/internal/app"
)

// @title           DraftGen Backend API
// @version         1.0
// @description     Backend service for knowledge-base draft generation with resilient upstream streaming.
// @BasePath        /api
func main() {
	os.Exit(app.Run())
}
