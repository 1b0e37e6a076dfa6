package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"microblog/internal/contract"
	"microblog/internal/utils"
	"microblog/internal/utils/apierror"
)

type UserService interface {
	Follow(apiKey string, targetID int64) apierror.ErrorResponse
	Unfollow(apiKey string, targetID int64) apierror.ErrorResponse
	GetProfileByID(userID int64) (*contract.ProfileResponse, apierror.ErrorResponse)
	GetOwnProfile(apiKey string) (*contract.ProfileResponse, apierror.ErrorResponse)
}

type DefaultUserRoute struct {
	UserService UserService
}

func NewUserDefault(userService UserService) *DefaultUserRoute {
	return &DefaultUserRoute{UserService: userService}
}

func (u *DefaultUserRoute) Follow(c echo.Context) error {
	apiKey, cerr := utils.GetAPIKeyFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		apierr := apierror.NewInvalidParamTypeError("id", "int")
		return c.JSON(apierr.Code(), apierr)
	}

	if apierr := u.UserService.Follow(apiKey, id); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, contract.OK())
}

func (u *DefaultUserRoute) Unfollow(c echo.Context) error {
	apiKey, cerr := utils.GetAPIKeyFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		apierr := apierror.NewInvalidParamTypeError("id", "int")
		return c.JSON(apierr.Code(), apierr)
	}

	if apierr := u.UserService.Unfollow(apiKey, id); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, contract.OK())
}

func (u *DefaultUserRoute) GetMe(c echo.Context) error {
	apiKey, cerr := utils.GetAPIKeyFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	profile, apierr := u.UserService.GetOwnProfile(apiKey)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, profile)
}

func (u *DefaultUserRoute) GetUser(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		apierr := apierror.NewInvalidParamTypeError("id", "int")
		return c.JSON(apierr.Code(), apierr)
	}

	profile, apierr := u.UserService.GetProfileByID(id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, profile)
}
