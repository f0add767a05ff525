package handler

import (
	"errors"
	"net/http"

	"github.com/UniPortal/feed-service/internal/feed"
	"github.com/UniPortal/feed-service/internal/service"
)

var (
	errNotAuthorized       = errors.New("user is not authorized")
	errInvalidPostID       = errors.New("invalid post ID")
	errInvalidUserID       = errors.New("invalid user ID")
	errInvalidID           = errors.New("invalid ID")
	errLevelMustBeInt      = errors.New("level and semester must be int")
	errLimitMustBeInt      = errors.New("limit and offset must be int")
	errImageMustBeAFile    = errors.New("image must be a file")
	errTooManyViewerStates = errors.New("too many ids in viewer state request")
)

// statusFromError maps service errors onto HTTP status codes.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, service.ErrParentCommentNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrPostIsEmpty),
		errors.Is(err, service.ErrInvalidFeedFilter),
		errors.Is(err, service.ErrFileMustBeImage),
		errors.Is(err, service.ErrFileMustHaveAValidExtension),
		errors.Is(err, service.ErrCannotFollowYourself):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, errNotAuthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrFailedToUploadPostImageToCDN):
		return http.StatusBadGateway
	case errors.Is(err, feed.ErrLikeFailed),
		errors.Is(err, feed.ErrFollowFailed):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
