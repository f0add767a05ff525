// Package client is an HTTP implementation of app.Backend against the feed
// service API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/UniPortal/feed-service/internal/app"
	"github.com/UniPortal/feed-service/internal/dto"
	"github.com/UniPortal/feed-service/internal/feed"
	"github.com/UniPortal/feed-service/internal/model"
	"github.com/google/uuid"
)

var ErrUnexpectedStatus = errors.New("unexpected response status")

type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// New returns a client for the API rooted at baseURL, e.g.
// http://localhost:8080/api/v1.
func New(baseURL string, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		token:      token,
	}
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) setToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

var _ app.Backend = (*Client)(nil)

// =============================================================================
// Session
// =============================================================================

func (c *Client) Authenticate(ctx context.Context, identifier string, secret string) (app.AuthResult, error) {
	var resp dto.LoginResponse
	status, err := c.doJSON(ctx, http.MethodPost, "/auth/login", dto.LoginRequest{Identifier: identifier, Secret: secret}, &resp)
	if err != nil && status == 0 {
		return app.AuthResult{}, err
	}
	if status != http.StatusOK || !resp.Success {
		return app.AuthResult{Success: false, Error: resp.Error}, nil
	}

	c.setToken(resp.AccessToken)
	return app.AuthResult{Success: true}, nil
}

// CurrentSession returns nil without error when there is no valid session.
func (c *Client) CurrentSession(ctx context.Context) (*app.Session, error) {
	if c.Token() == "" {
		return nil, nil
	}

	var resp dto.SessionResponse
	if _, err := c.doJSON(ctx, http.MethodGet, "/auth/session", nil, &resp); err != nil {
		if errors.Is(err, app.ErrUnauthenticated) {
			c.setToken("")
			return nil, nil
		}
		return nil, err
	}

	return &app.Session{
		UserID:      resp.User.ID,
		Username:    resp.User.Username,
		DisplayName: resp.User.DisplayName,
	}, nil
}

func (c *Client) EndSession(ctx context.Context) error {
	defer c.setToken("")
	if c.Token() == "" {
		return nil
	}

	_, err := c.doJSON(ctx, http.MethodPost, "/auth/logout", nil, nil)
	return err
}

// =============================================================================
// Reads
// =============================================================================

func (c *Client) ListPosts(ctx context.Context, filter model.FeedOrder, department string, limit int) ([]model.FullPost, error) {
	query := url.Values{}
	query.Set("filter", string(filter))
	if department != "" {
		query.Set("department", department)
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var posts []model.FullPost
	if _, err := c.doJSON(ctx, http.MethodGet, "/posts?"+query.Encode(), nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) ListComments(ctx context.Context, postID int64) ([]model.FullComment, error) {
	var comments []model.FullComment
	if _, err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/posts/%d/comments", postID), nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (c *Client) LikedPostIDs(ctx context.Context, postIDs []int64) ([]int64, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	var resp dto.ViewerStateResponse
	if _, err := c.doJSON(ctx, http.MethodPost, "/feed/viewer-state", dto.ViewerStateRequest{PostIDs: postIDs}, &resp); err != nil {
		return nil, err
	}
	return resp.LikedPostIDs, nil
}

func (c *Client) FollowedAuthorIDs(ctx context.Context, authorIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}
	var resp dto.ViewerStateResponse
	if _, err := c.doJSON(ctx, http.MethodPost, "/feed/viewer-state", dto.ViewerStateRequest{AuthorIDs: authorIDs}, &resp); err != nil {
		return nil, err
	}
	return resp.FollowedAuthorIDs, nil
}

// =============================================================================
// Writes
// =============================================================================

// Rejected writes come back as unsuccessful results. Only transport failures
// and rejected sessions are returned as errors.

func (c *Client) ToggleLike(ctx context.Context, postID int64) (feed.LikeResult, error) {
	var resp dto.ToggleLikeResponse
	status, err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/posts/%d/like", postID), nil, &resp)
	if err := writeError(status, err); err != nil {
		return feed.LikeResult{}, err
	}
	return feed.LikeResult{Success: err == nil && resp.Success, Liked: resp.Liked}, nil
}

func (c *Client) ToggleFollow(ctx context.Context, userID uuid.UUID) (feed.FollowResult, error) {
	var resp dto.ToggleFollowResponse
	status, err := c.doJSON(ctx, http.MethodPost, "/users/"+userID.String()+"/follow", nil, &resp)
	if err := writeError(status, err); err != nil {
		return feed.FollowResult{}, err
	}
	return feed.FollowResult{Success: err == nil && resp.Success, Following: resp.Following}, nil
}

func (c *Client) AddComment(ctx context.Context, postID int64, text string, parentID *int64) (app.CommentResult, error) {
	var resp dto.CreateCommentResponse
	input := dto.CreateCommentRequest{ParentID: parentID, Content: text}
	status, err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/posts/%d/comments", postID), input, &resp)
	if err := writeError(status, err); err != nil {
		return app.CommentResult{}, err
	}
	if err != nil || !resp.Success {
		return app.CommentResult{Success: false, Error: resp.Error}, nil
	}
	return app.CommentResult{Success: true, Comment: resp.Comment}, nil
}

func (c *Client) CreatePost(ctx context.Context, post app.NewPost) (app.PostResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("content", post.Text); err != nil {
		return app.PostResult{}, err
	}
	if err := writer.WriteField("department", post.Department); err != nil {
		return app.PostResult{}, err
	}
	if len(post.Image) > 0 {
		part, err := writer.CreateFormFile("image", post.ImageName)
		if err != nil {
			return app.PostResult{}, err
		}
		if _, err := part.Write(post.Image); err != nil {
			return app.PostResult{}, err
		}
	}
	if err := writer.Close(); err != nil {
		return app.PostResult{}, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/posts", &body)
	if err != nil {
		return app.PostResult{}, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	status, err := c.do(req, nil)
	if err := writeError(status, err); err != nil {
		return app.PostResult{}, err
	}
	if err != nil {
		return app.PostResult{Success: false, Error: err.Error()}, nil
	}
	return app.PostResult{Success: true}, nil
}

// writeError keeps the errors a write must surface: transport failures and
// rejected sessions.
func writeError(status int, err error) error {
	if err == nil {
		return nil
	}
	if status == 0 || errors.Is(err, app.ErrUnauthenticated) {
		return err
	}
	return nil
}

// =============================================================================
// Transport
// =============================================================================

func (c *Client) newRequest(ctx context.Context, method string, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// doJSON sends in as a JSON body and decodes the response into out. The
// returned status is 0 when no response was received.
func (c *Client) doJSON(ctx context.Context, method string, path string, in interface{}, out interface{}) (int, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return 0, err
		}
		body = bytes.NewReader(b)
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return 0, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) (int, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, err
	}

	if resp.StatusCode == http.StatusUnauthorized && req.URL.Path != c.pathOf("/auth/login") {
		return resp.StatusCode, app.ErrUnauthenticated
	}

	// Error bodies are decoded too, since writes carry their result in them.
	if out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil && resp.StatusCode < 300 {
			return resp.StatusCode, fmt.Errorf("decode %s response: %w", req.URL.Path, err)
		}
	}

	if resp.StatusCode >= 300 {
		var basic dto.BasicResponse
		_ = json.Unmarshal(body, &basic)
		return resp.StatusCode, fmt.Errorf("%w %d: %s", ErrUnexpectedStatus, resp.StatusCode, basic.Details)
	}

	return resp.StatusCode, nil
}

func (c *Client) pathOf(path string) string {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return path
	}
	return u.Path
}
