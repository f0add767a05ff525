package service

import "errors"

var (
	ErrInternal                     = errors.New("internal server error")
	ErrFileMustBeImage              = errors.New("file must be an image")
	ErrFileMustHaveAValidExtension  = errors.New("file must have a valid extension")
	ErrFailedToUploadPostImageToCDN = errors.New("failed to upload post image to CDN")
	ErrPostIsEmpty                  = errors.New("post must have text or an image")
	ErrPostNotFound                 = errors.New("post not found")
	ErrParentCommentNotFound        = errors.New("parent comment not found")
	ErrCannotFollowYourself         = errors.New("you cannot follow yourself")
	ErrInvalidFeedFilter            = errors.New("invalid feed filter")
	ErrInvalidCredentials           = errors.New("invalid credentials")
)
