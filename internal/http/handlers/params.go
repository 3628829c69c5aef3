package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// uuidParam returns the named path parameter when it is a well-formed uuid.
// All id columns are typed uuid, so a malformed id can never match a row and
// must behave exactly like one that does not exist, instead of surfacing a
// cast error from the database.
func uuidParam(ctx *gin.Context, name string) (string, bool) {
	raw := ctx.Param(name)

	if _, err := uuid.Parse(raw); err != nil {
		return "", false
	}

	return raw, true
}
