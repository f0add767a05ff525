package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/UniPortal/feed-service/internal/app"
	"github.com/UniPortal/feed-service/internal/model"
	"github.com/UniPortal/feed-service/internal/render"
	"github.com/UniPortal/feed-service/pkg/client"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	filter     string
	department string
	verbose    bool
	replyTo    int64
	postText   string
	postDept   string
	postImage  string

	rootCmd = &cobra.Command{
		Use:          "feedcli",
		Short:        "Browse and interact with the campus feed from a terminal",
		SilenceUsage: true,
	}

	loginCmd = &cobra.Command{
		Use:   "login [identifier] [secret]",
		Short: "Sign in and remember the session",
		Args:  cobra.ExactArgs(2),
		RunE:  runLogin,
	}
	logoutCmd = &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the session",
		RunE:  runLogout,
	}
	feedCmd = &cobra.Command{
		Use:   "feed",
		Short: "Show the feed",
		RunE:  runFeed,
	}
	likeCmd = &cobra.Command{
		Use:   "like [postID]",
		Short: "Like or unlike a post in the current feed",
		Args:  cobra.ExactArgs(1),
		RunE:  runLike,
	}
	followCmd = &cobra.Command{
		Use:   "follow [userID]",
		Short: "Follow or unfollow an author",
		Args:  cobra.ExactArgs(1),
		RunE:  runFollow,
	}
	commentCmd = &cobra.Command{
		Use:   "comment [postID] [text]",
		Short: "Comment on a post in the current feed",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runComment,
	}
	postCmd = &cobra.Command{
		Use:   "post",
		Short: "Publish a post",
		RunE:  runPost,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&filter, "filter", string(model.FeedRecent), "feed filter: recent or popular")
	rootCmd.PersistentFlags().StringVar(&department, "department", "", "only show posts from this department")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log requests and failures")
	rootCmd.PersistentFlags().String("api", "", "feed service API base URL")
	_ = viper.BindPFlag("api.url", rootCmd.PersistentFlags().Lookup("api"))

	commentCmd.Flags().Int64Var(&replyTo, "reply-to", 0, "id of the comment to reply to")

	postCmd.Flags().StringVar(&postText, "text", "", "post text")
	postCmd.Flags().StringVar(&postDept, "tag", "", "department the post belongs to")
	postCmd.Flags().StringVar(&postImage, "image", "", "path to an image to attach")
	_ = postCmd.MarkFlagRequired("tag")

	rootCmd.AddCommand(loginCmd, logoutCmd, feedCmd, likeCmd, followCmd, commentCmd, postCmd)
}

// session bundles what every command needs.
type session struct {
	app      *app.App
	state    *app.State
	client   *client.Client
	renderer *render.Renderer
}

func newSession(ctx context.Context, requireAuth bool) (*session, error) {
	logger := zap.NewNop()
	if verbose {
		l, err := zap.NewDevelopment()
		if err == nil {
			logger = l
		}
	}

	c := client.New(viper.GetString("api.url"), loadToken())
	s := &session{
		app:      app.New(logger, c, viper.GetInt("feed.limit")),
		state:    app.NewState(),
		client:   c,
		renderer: render.New(os.Stdout, viper.GetInt("render.width")),
	}

	if err := s.app.RestoreSession(ctx, s.state); err != nil {
		if !errors.Is(err, app.ErrUnauthenticated) {
			return nil, err
		}
		_ = saveToken("")
		if requireAuth {
			return nil, errors.New("not signed in, run `feedcli login` first")
		}
	}

	return s, nil
}

func (s *session) reload(ctx context.Context) error {
	return s.app.Reload(ctx, s.state, model.FeedOrder(strings.ToLower(filter)), department)
}

func (s *session) print() {
	fmt.Print(s.renderer.Notices(s.state.Notices()))
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := newSession(ctx, false)
	if err != nil {
		return err
	}

	if err := s.app.SignIn(ctx, s.state, args[0], args[1]); err != nil {
		return err
	}
	if err := saveToken(s.client.Token()); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	fmt.Printf("Signed in as @%s\n", s.state.Session.Username)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := newSession(ctx, false)
	if err != nil {
		return err
	}

	if err := s.app.SignOut(ctx, s.state); err != nil {
		return err
	}
	return saveToken("")
}

func runFeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := newSession(ctx, false)
	if err != nil {
		return err
	}

	err = s.reload(ctx)
	// Comments of the rest of the batch load as each post is printed.
	for _, p := range s.state.Posts {
		s.app.PostVisible(ctx, s.state, p.Post.ID)
	}
	fmt.Print(s.renderer.Feed(s.state))
	s.print()
	return err
}

func runLike(cmd *cobra.Command, args []string) error {
	postID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid post id %q", args[0])
	}

	ctx := cmd.Context()
	s, err := newSession(ctx, true)
	if err != nil {
		return err
	}
	if err := s.reload(ctx); err != nil {
		return err
	}

	err = s.app.ToggleLike(ctx, s.state, postID)
	if post, ok := s.state.Post(postID); ok {
		fmt.Print(s.renderer.Post(post))
		fmt.Println()
	}
	s.print()
	return err
}

func runFollow(cmd *cobra.Command, args []string) error {
	authorID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid user id %q", args[0])
	}

	ctx := cmd.Context()
	s, err := newSession(ctx, true)
	if err != nil {
		return err
	}
	if err := s.reload(ctx); err != nil {
		return err
	}

	err = s.app.ToggleFollow(ctx, s.state, authorID)
	s.print()
	if err == nil {
		fmt.Printf("Updated follow of %s\n", authorID)
	}
	return err
}

func runComment(cmd *cobra.Command, args []string) error {
	postID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid post id %q", args[0])
	}

	ctx := cmd.Context()
	s, err := newSession(ctx, true)
	if err != nil {
		return err
	}
	if err := s.reload(ctx); err != nil {
		return err
	}

	var parentID *int64
	if replyTo > 0 {
		parentID = &replyTo
	}
	err = s.app.AddComment(ctx, s.state, postID, strings.Join(args[1:], " "), parentID)
	if post, ok := s.state.Post(postID); ok {
		fmt.Print(s.renderer.Post(post))
		fmt.Println()
	}
	s.print()
	return err
}

func runPost(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := newSession(ctx, true)
	if err != nil {
		return err
	}

	draft := app.NewPost{Text: postText, Department: postDept}
	if postImage != "" {
		image, err := os.ReadFile(postImage)
		if err != nil {
			return fmt.Errorf("read image: %w", err)
		}
		draft.Image = image
		draft.ImageName = filepath.Base(postImage)
	}

	// Publishing reloads the feed the user is looking at.
	s.state.Filter = model.FeedOrder(strings.ToLower(filter))
	s.state.Department = department
	err = s.app.CreatePost(ctx, s.state, draft)
	if err == nil {
		fmt.Print(s.renderer.Feed(s.state))
	}
	s.print()
	return err
}
