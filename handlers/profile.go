package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"profilewizard/models"
	"profilewizard/services/profile"
	"profilewizard/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
)

const photoField = "profilePhoto"

// ProfileHandler accepts wizard submissions and standalone photo uploads.
type ProfileHandler struct {
	Service profile.ProfileService
}

func NewProfileHandler(svc profile.ProfileService) *ProfileHandler {
	return &ProfileHandler{Service: svc}
}

// CreateProfileHandler handles POST /api/user. Multipart form posts may carry
// a profilePhoto file; JSON bodies carry fields only.
func (h *ProfileHandler) CreateProfileHandler(c *gin.Context) {
	logger := getLogger(c)

	var sub models.ProfileSubmission
	if c.ContentType() == binding.MIMEJSON {
		if err := c.ShouldBindJSON(&sub); err != nil {
			logger.Warn("Invalid profile body", zap.Error(err))
			utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
			return
		}
	} else {
		if err := c.ShouldBind(&sub); err != nil {
			logger.Warn("Invalid profile form", zap.Error(err))
			utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
			return
		}
		sub.Newsletter = c.PostForm("newsletter")

		photo, closer, err := formPhoto(c)
		if err != nil {
			logger.Warn("Unreadable photo part", zap.Error(err))
			utils.JSONError(c, http.StatusBadRequest, err.Error())
			return
		}
		if closer != nil {
			defer closer.Close()
		}
		sub.Photo = photo
	}

	p, err := h.Service.Submit(c.Request.Context(), sub)
	if err != nil {
		logger.Warn("Profile submission rejected", zap.String("username", sub.Username), zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusCreated, models.ProfileCreatedResponse{Message: "User profile created", User: *p})
}

// UploadPhotoHandler handles POST /api/upload.
func (h *ProfileHandler) UploadPhotoHandler(c *gin.Context) {
	logger := getLogger(c)

	photo, closer, err := formPhoto(c)
	if err != nil {
		logger.Warn("Unreadable photo part", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if photo == nil {
		utils.JSONError(c, http.StatusBadRequest, profile.ErrNoFile.Error())
		return
	}
	defer closer.Close()

	path, err := h.Service.UploadPhoto(c.Request.Context(), photo)
	if err != nil {
		logger.Warn("Photo upload rejected", zap.String("filename", photo.Filename), zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"filePath": path})
}

// formPhoto opens the profilePhoto part. A missing part yields a nil blob.
func formPhoto(c *gin.Context) (*models.PhotoBlob, io.Closer, error) {
	fh, err := c.FormFile(photoField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	return openPhoto(fh)
}

func openPhoto(fh *multipart.FileHeader) (*models.PhotoBlob, io.Closer, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &models.PhotoBlob{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Content:     f,
	}, f, nil
}
