package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ksarmiento/blog-backend/internal/database/model"
	"github.com/ksarmiento/blog-backend/internal/database/store"
	"github.com/ksarmiento/blog-backend/internal/http/middleware"
	"github.com/ksarmiento/blog-backend/internal/token"
	"github.com/ksarmiento/blog-backend/internal/upload"
)

// listLimit caps the index-page feed.
const listLimit = 40

type PostHandler struct {
	posts   *store.Posts
	uploads *upload.Store
}

func NewPostHandler(posts *store.Posts, uploads *upload.Store) *PostHandler {
	return &PostHandler{
		posts:   posts,
		uploads: uploads,
	}
}

// isAuthor reports whether the session belongs to the post's author.
func isAuthor(claims *token.UserClaims, post *model.Post) bool {
	return claims.ID == post.AuthorID
}

func (h *PostHandler) Create(c *gin.Context) {
	claims, ok := middleware.SessionClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cover image file is required"})
		return
	}

	path, err := h.uploads.Save(fh)
	if err != nil {
		slog.Error("Failed to store cover image", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	post := &model.Post{
		Title:      c.PostForm("title"),
		Summary:    c.PostForm("summary"),
		Content:    c.PostForm("content"),
		CoverImage: path,
		AuthorID:   claims.ID,
	}
	if err := h.posts.Create(post); err != nil {
		slog.Error("Failed to create post", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	created, err := h.posts.ByID(post.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, newPostResponse(created))
}

func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.posts.Latest(listLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	out := make([]PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, newPostResponse(&posts[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *PostHandler) Get(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	post, err := h.posts.ByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, newPostResponse(post))
}

func (h *PostHandler) Update(c *gin.Context) {
	claims, ok := middleware.SessionClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
		return
	}

	id, ok := postID(c)
	if !ok {
		return
	}

	post, err := h.posts.ByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	if !isAuthor(claims, post) {
		c.JSON(http.StatusForbidden, gin.H{
			"message": "You are not the author of this post",
		})
		return
	}

	// Only supplied fields are replaced; omitted ones keep their
	// stored values.
	fields := map[string]any{}
	if title, ok := c.GetPostForm("title"); ok {
		fields["title"] = title
	}
	if summary, ok := c.GetPostForm("summary"); ok {
		fields["summary"] = summary
	}
	if content, ok := c.GetPostForm("content"); ok {
		fields["content"] = content
	}

	// The cover image only changes when a replacement file was sent.
	if fh, err := c.FormFile("file"); err == nil {
		path, err := h.uploads.Save(fh)
		if err != nil {
			slog.Error("Failed to store cover image", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
		fields["cover_image"] = path
	}

	if len(fields) == 0 {
		c.JSON(http.StatusOK, newPostResponse(post))
		return
	}

	updated, err := h.posts.UpdateFields(id, fields)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, newPostResponse(updated))
}

// Delete removes a post by id. Unlike Update it requires no session.
// TODO: require the author's session here once the editor frontend
// sends credentials with its delete requests.
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	if err := h.posts.Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

func postID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return 0, false
	}
	return uint(id), true
}
