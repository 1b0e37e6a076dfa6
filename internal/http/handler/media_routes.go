package handler

import (
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"microblog/internal/contract"
	"microblog/internal/utils/apierror"
)

type MediaService interface {
	Upload(fileHeader *multipart.FileHeader) (*contract.AddMediaResponse, apierror.ErrorResponse)
}

type DefaultMediaRoute struct {
	MediaService MediaService
}

func NewMediaDefault(mediaService MediaService) *DefaultMediaRoute {
	return &DefaultMediaRoute{MediaService: mediaService}
}

func (m *DefaultMediaRoute) AddMedia(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(apierror.MissingFileError.Code(), apierror.MissingFileError)
	}

	resp, apierr := m.MediaService.Upload(fileHeader)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, resp)
}
