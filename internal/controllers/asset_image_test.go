package controllers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	"asset-system/pkg/utils"
)

type fakeImageService struct {
	gotID   uint64
	gotName string
	gotData []byte
}

func (f *fakeImageService) SetImage(_ context.Context, id uint64, file io.Reader, fileName string) (*dto.AssetResponseDTO, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	f.gotID, f.gotName, f.gotData = id, fileName, data
	ref := "/uploads/images/" + fileName
	return &dto.AssetResponseDTO{Asset: entities.Asset{ID: id, ImageRef: &ref}}, nil
}

func (f *fakeImageService) RemoveImage(_ context.Context, id uint64) (*dto.AssetResponseDTO, error) {
	f.gotID = id
	return &dto.AssetResponseDTO{Asset: entities.Asset{ID: id}}, nil
}

func multipartRequest(t *testing.T, e *echo.Echo, field, fileName string, content []byte) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if field != "" {
		part, err := w.CreateFormFile(field, fileName)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/assets/3/image", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	req = req.WithContext(utils.WithActor(req.Context(), 1, true))
	rec := httptest.NewRecorder()
	return withID(e.NewContext(req, rec), "3"), rec
}

func TestAssetImageController_UploadImage(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

	t.Run("stores a png", func(t *testing.T) {
		e := newTestEcho(t)
		svc := &fakeImageService{}
		c, rec := multipartRequest(t, e, imageFormField, "front.png", png)

		require.NoError(t, NewAssetImageController(svc, zap.NewNop()).UploadImage(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, uint64(3), svc.gotID)
		assert.Equal(t, "front.png", svc.gotName)
		assert.Equal(t, png, svc.gotData)
		assert.Contains(t, rec.Body.String(), "/uploads/images/front.png")
	})

	t.Run("rejects a non image", func(t *testing.T) {
		e := newTestEcho(t)
		svc := &fakeImageService{}
		c, rec := multipartRequest(t, e, imageFormField, "notes.png", []byte("just some text"))

		require.NoError(t, NewAssetImageController(svc, zap.NewNop()).UploadImage(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Zero(t, svc.gotID)
	})

	t.Run("missing file field", func(t *testing.T) {
		e := newTestEcho(t)
		c, rec := multipartRequest(t, e, "", "", nil)

		require.NoError(t, NewAssetImageController(&fakeImageService{}, zap.NewNop()).UploadImage(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAssetImageController_RemoveImage(t *testing.T) {
	e := newTestEcho(t)
	svc := &fakeImageService{}
	c, rec := newRequest(e, http.MethodDelete, "/api/assets/8/image", "", 1, true)

	require.NoError(t, NewAssetImageController(svc, zap.NewNop()).RemoveImage(withID(c, "8")))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(8), svc.gotID)
}
