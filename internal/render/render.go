// Package render draws app.State in a terminal. It is the only part of the
// client that knows about a presentation surface.
package render

import (
	"fmt"
	"html"
	"io"
	"strings"
	"time"

	"github.com/UniPortal/feed-service/internal/app"
	"github.com/UniPortal/feed-service/internal/feed"
	"github.com/charmbracelet/lipgloss"
)

type Renderer struct {
	lg     *lipgloss.Renderer
	styles styles
	width  int
	now    func() time.Time
}

func New(w io.Writer, width int) *Renderer {
	lg := lipgloss.NewRenderer(w)
	if width <= 0 {
		width = 80
	}
	return &Renderer{
		lg:     lg,
		styles: newStyles(lg),
		width:  width,
		now:    time.Now,
	}
}

// Feed renders the whole feed screen.
func (r *Renderer) Feed(s *app.State) string {
	var b strings.Builder

	header := fmt.Sprintf("Campus feed · %s", s.Filter)
	if s.Department != "" {
		header += " · " + s.Department
	}
	if s.Session != nil {
		header += " · @" + s.Session.Username
	}
	b.WriteString(r.styles.Header.Render(header))
	b.WriteString("\n")

	switch {
	case s.Loading:
		b.WriteString(r.styles.Muted.Render("Loading..."))
		b.WriteString("\n")
	case s.LoadErr != nil:
		b.WriteString(r.styles.ErrorBox.Render("Couldn't load posts. Refresh to try again."))
		b.WriteString("\n")
	case len(s.Posts) == 0:
		b.WriteString(r.styles.Muted.Render("No posts yet."))
		b.WriteString("\n")
	}

	for _, p := range s.Posts {
		b.WriteString(r.Post(p))
		b.WriteString("\n")
	}

	return b.String()
}

func (r *Renderer) Post(p feed.PostView) string {
	var lines []string

	head := avatarStyle(r.lg, p.Author.Name).Render(p.Author.Initials) + " " +
		r.styles.Name.Render(p.Author.Name) + " " +
		r.styles.Muted.Render(fmt.Sprintf("%s · %s", p.Author.Department, r.ago(p.Post.CreatedAt)))
	if p.FollowActionable && p.IsFollowing != nil {
		style := r.styles.Follow
		if *p.IsFollowing {
			style = r.styles.Following
		}
		head += "  " + style.Render(p.FollowButton.Icon+" "+p.FollowButton.Label)
	}
	lines = append(lines, head)

	if text := html.UnescapeString(p.Description.Display); text != "" {
		lines = append(lines, r.lg.NewStyle().Width(r.width-4).Render(text))
		if p.Description.Truncated && !p.Description.Expanded {
			lines = append(lines, r.styles.Muted.Render("(more)"))
		}
	}
	if p.Post.ImageURL != nil {
		lines = append(lines, r.styles.Muted.Render("[image] "+*p.Post.ImageURL))
	}

	heart := "♡"
	if p.IsLiked != nil && *p.IsLiked {
		heart = r.styles.Liked.Render("♥")
	}
	stats := fmt.Sprintf("%s %d   💬 %d   ↗ %d", heart, p.Post.LikesCount, p.Post.CommentsCount, p.Post.SharesCount)
	if p.Rating.Stars > 0 {
		stats += "   " + r.styles.Star.Render(Stars(p.Rating)+" "+p.Rating.Label)
	}
	lines = append(lines, stats)

	if p.CommentsLoaded {
		for _, c := range p.Comments {
			lines = append(lines, r.comment(c.CommentView, false))
			for _, reply := range c.Replies {
				lines = append(lines, r.comment(reply, true))
			}
		}
	}

	footer := r.styles.Muted.Render(fmt.Sprintf("#%d", p.Post.ID))
	lines = append(lines, footer)

	return r.styles.Post.Width(r.width).Render(strings.Join(lines, "\n"))
}

func (r *Renderer) comment(c feed.CommentView, reply bool) string {
	line := avatarStyle(r.lg, c.Author.Name).Render(c.Author.Initials) + " " +
		r.styles.Name.Render(c.Author.Name) + " " + c.Comment.Content + " " +
		r.styles.Muted.Render(fmt.Sprintf("#%d", c.Comment.ID))
	if reply {
		return r.styles.Reply.Render("↳ " + line)
	}
	return line
}

func (r *Renderer) Notices(notices []app.Notice) string {
	var b strings.Builder
	for _, n := range notices {
		style, ok := r.styles.Notice[string(n.Kind)]
		if !ok {
			style = r.styles.Muted
		}
		b.WriteString(style.Render(n.Message))
		b.WriteString("\n")
	}
	return b.String()
}

// Stars draws a rating as filled and empty stars.
func Stars(rating feed.StarRating) string {
	return strings.Repeat("★", rating.Stars) + strings.Repeat("☆", feed.MaxStars-rating.Stars)
}

func (r *Renderer) ago(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := r.now().Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return t.Format("Jan 2")
	}
}
