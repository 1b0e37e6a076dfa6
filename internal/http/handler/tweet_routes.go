package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"microblog/internal/contract"
	"microblog/internal/utils"
	"microblog/internal/utils/apierror"
)

type TweetService interface {
	CreateTweet(apiKey string, req *contract.CreateTweetRequest) (*contract.CreateTweetResponse, apierror.ErrorResponse)
	DeleteTweet(apiKey string, tweetID int64) apierror.ErrorResponse
	Like(apiKey string, tweetID int64) apierror.ErrorResponse
	Unlike(apiKey string, tweetID int64) apierror.ErrorResponse
	GetFeed(apiKey string) (*contract.FeedResponse, apierror.ErrorResponse)
}

type DefaultTweetRoute struct {
	TweetService TweetService
}

func NewTweetDefault(tweetService TweetService) *DefaultTweetRoute {
	return &DefaultTweetRoute{TweetService: tweetService}
}

func (t *DefaultTweetRoute) CreateTweet(c echo.Context) error {
	apiKey, cerr := utils.GetAPIKeyFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.CreateTweetRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	resp, apierr := t.TweetService.CreateTweet(apiKey, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, resp)
}

func (t *DefaultTweetRoute) DeleteTweet(c echo.Context) error {
	apiKey, cerr := utils.GetAPIKeyFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		apierr := apierror.NewInvalidParamTypeError("id", "int")
		return c.JSON(apierr.Code(), apierr)
	}

	if apierr := t.TweetService.DeleteTweet(apiKey, id); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, contract.OK())
}

func (t *DefaultTweetRoute) LikeTweet(c echo.Context) error {
	apiKey, cerr := utils.GetAPIKeyFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		apierr := apierror.NewInvalidParamTypeError("id", "int")
		return c.JSON(apierr.Code(), apierr)
	}

	if apierr := t.TweetService.Like(apiKey, id); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, contract.OK())
}

func (t *DefaultTweetRoute) UnlikeTweet(c echo.Context) error {
	apiKey, cerr := utils.GetAPIKeyFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		apierr := apierror.NewInvalidParamTypeError("id", "int")
		return c.JSON(apierr.Code(), apierr)
	}

	if apierr := t.TweetService.Unlike(apiKey, id); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, contract.OK())
}

func (t *DefaultTweetRoute) GetFeed(c echo.Context) error {
	apiKey, cerr := utils.GetAPIKeyFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	feed, apierr := t.TweetService.GetFeed(apiKey)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, feed)
}
