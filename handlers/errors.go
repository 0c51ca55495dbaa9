package handlers

import (
	"errors"
	"log"
	"net/http"

	"link-tracker-service/models"
)

// writeError maps the core error taxonomy onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	var validation *models.ValidationError
	var notFound *models.NotFoundError

	switch {
	case errors.As(err, &validation):
		http.Error(w, validation.Message, http.StatusBadRequest)
	case errors.As(err, &notFound):
		http.Error(w, notFound.Message, http.StatusNotFound)
	default:
		log.Printf("Internal error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
