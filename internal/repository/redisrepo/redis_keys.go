package redisrepo

import "fmt"

const (
	FEED_KEY              = "feed:%s:%s:%d" // <order>:<department>:<limit>
	FEED_PATTERN          = "feed:*"
	POST_COMMENTS_KEY     = "post:%d-comments" // <postID>
	POST_COMMENTS_PATTERN = "post:*-comments"
	USER_CACHE_KEY        = "user-cache:%s" // <userID>
	CATALOG_KEY           = "catalog:%s"    // <path>
)

// FeedKey encodes a named department as "=<name>" and no department as "-",
// so no department name can produce the unfiltered key.
func FeedKey(order string, department string, limit int) string {
	dept := "-"
	if department != "" {
		dept = "=" + department
	}
	return fmt.Sprintf(FEED_KEY, order, dept, limit)
}

func PostCommentsKey(postID int64) string {
	return fmt.Sprintf(POST_COMMENTS_KEY, postID)
}

func UserCacheKey(userID string) string {
	return fmt.Sprintf(USER_CACHE_KEY, userID)
}

func CatalogKey(path string) string {
	return fmt.Sprintf(CATALOG_KEY, path)
}
