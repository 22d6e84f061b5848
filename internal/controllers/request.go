package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	apperrors "asset-system/pkg/errors"

	"github.com/labstack/echo/v4"
)

// bindPatch decodes a partial update body into dst and returns the raw bytes
// so the service can tell absent keys from explicit nulls.
func bindPatch(ctx echo.Context, dst interface{}) ([]byte, error) {
	rawBody, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return nil, apperrors.NewHttpError(http.StatusBadRequest, "could not read request body", err, nil)
	}
	if err := json.Unmarshal(rawBody, dst); err != nil {
		return nil, apperrors.NewHttpError(http.StatusBadRequest, "invalid JSON body", err, nil)
	}
	ctx.Request().Body = io.NopCloser(bytes.NewBuffer(rawBody))

	if err := ctx.Validate(dst); err != nil {
		return nil, err
	}
	return rawBody, nil
}
