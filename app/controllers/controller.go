// Package controllers translates HTTP requests into service calls. Handlers
// bind and validate input, delegate to a service, then render the envelope;
// no business rules live here.
package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/siddhant14g/Real-shop/pkg/apperr"
	"github.com/siddhant14g/Real-shop/pkg/middleware"
)

// maxUploadBytes bounds multipart parsing memory for image uploads.
const maxUploadBytes = 10 << 20

// callerID extracts the authenticated user's ObjectID from the request.
func callerID(r *http.Request) (primitive.ObjectID, error) {
	id, ok := middleware.UserIDFromCtx(r.Context())
	if !ok {
		return primitive.NilObjectID, apperr.Unauthenticated("Not authenticated")
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperr.Unauthenticated("Invalid token subject")
	}
	return oid, nil
}

// pathID parses the {id} route parameter as an ObjectID.
func pathID(r *http.Request) (primitive.ObjectID, error) {
	raw := chi.URLParam(r, "id")
	oid, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, apperr.Validation("Invalid id")
	}
	return oid, nil
}
