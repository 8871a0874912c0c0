package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// The ledgers share one shape of CRUD route; these builders bind a store
// operation to it.

func listRecords[T any](list func() []T) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, list())
	}
}

func createRecord[T any](logger *zap.Logger, create func(context.Context, T) (T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rec T
		if err := c.ShouldBindJSON(&rec); err != nil {
			badRequest(c, logger, err)
			return
		}
		created, err := create(c.Request.Context(), rec)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func updateRecord[T any](logger *zap.Logger, update func(context.Context, string, T) (T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rec T
		if err := c.ShouldBindJSON(&rec); err != nil {
			badRequest(c, logger, err)
			return
		}
		updated, err := update(c.Request.Context(), c.Param("id"), rec)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func deleteRecord(logger *zap.Logger, remove func(context.Context, string) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := remove(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, logger, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
