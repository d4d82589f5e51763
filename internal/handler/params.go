package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lessonplan-api/internal/middleware"
	"github.com/noah-isme/lessonplan-api/internal/service"
	appErrors "github.com/noah-isme/lessonplan-api/pkg/errors"
)

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid "+name)
	}
	return id, nil
}

func principalFromContext(c *gin.Context) (service.Principal, error) {
	claims := middleware.Claims(c)
	if claims == nil {
		return service.Principal{}, appErrors.ErrUnauthorized
	}
	return service.Principal{UserID: claims.UserID, Role: claims.Role}, nil
}
