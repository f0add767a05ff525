package feed

import "errors"

var (
	ErrLikeFailed   = errors.New("failed to toggle like")
	ErrFollowFailed = errors.New("failed to toggle follow")
)
