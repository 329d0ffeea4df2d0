package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zanith/zanith-api/internal/core/ports"
)

type UploadHandler struct {
	service ports.UploadService
}

func NewUploadHandler(service ports.UploadService) *UploadHandler {
	return &UploadHandler{service: service}
}

// Signature handles GET /signature.
//
// @Summary      Issue an upload signature
// @Tags         uploads
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  signatureResponse
// @Failure      403  {object}  errorResponse
// @Router       /signature [get]
func (h *UploadHandler) Signature(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	sig, err := h.service.Signature(c.Request().Context(), id.Username)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, signatureResponse{
		Timestamp: sig.Timestamp,
		Signature: sig.Signature,
		Username:  sig.Username,
		CloudName: sig.CloudName,
		APIKey:    sig.APIKey,
	})
}

// Upload handles POST /upload. The uploader is always the session owner.
//
// @Summary      Register an uploaded song
// @Tags         uploads
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      uploadRequest  true  "Asset descriptors and metadata"
// @Success      201   {object}  domain.Song
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /upload [post]
func (h *UploadHandler) Upload(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req uploadRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	song, err := h.service.Upload(c.Request().Context(), toUploadInput(id.Username, req))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, song)
}

func toUploadInput(username string, req uploadRequest) ports.UploadInput {
	in := ports.UploadInput{
		Username:    username,
		Title:       req.Title,
		Description: req.Description,
		Genre:       req.Genre,
		Audio: ports.AssetDescriptor{
			PublicID:  req.SongPublicID,
			Version:   req.SongVersion.String(),
			Signature: req.SongSignature,
		},
		Image: ports.AssetDescriptor{
			PublicID:  req.ImagePublicID,
			Version:   req.ImageVersion.String(),
			Signature: req.ImageSig,
		},
	}
	if req.Date != nil {
		in.Date = *req.Date
	}
	return in
}
