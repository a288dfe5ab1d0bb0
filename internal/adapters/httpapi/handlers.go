package httpapi

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"novella/internal/application"
	"novella/internal/application/commands"
	"novella/internal/domain"
)

const (
	directionNext        = commands.DirectionNext
	directionPrevious    = commands.DirectionPrevious
	directionTap         = commands.DirectionTap
	directionSubNext     = commands.DirectionSubNext
	directionSubPrevious = commands.DirectionSubPrevious
)

// stepResponse is the body returned by every navigation endpoint
type stepResponse struct {
	Moved             bool                      `json:"moved"`
	From              domain.Position           `json:"from"`
	To                domain.Position           `json:"to"`
	Reason            string                    `json:"reason,omitempty"`
	GuestLimitReached bool                      `json:"guestLimitReached"`
	Message           string                    `json:"message"`
	View              domain.View               `json:"view"`
	Pending           *domain.PendingTransition `json:"pending,omitempty"`
}

// ChooseRequest picks an option
type ChooseRequest struct {
	OptionID string `json:"optionId" binding:"required"`
}

// BookmarkRequest bookmarks the current paragraph
type BookmarkRequest struct {
	Comment string `json:"comment"`
}

// NoteRequest sets the reader's note on a met character
type NoteRequest struct {
	Comment string `json:"comment"`
}

// statusFor maps application errors onto HTTP status codes
func statusFor(err error) int {
	var valErr *application.ValidationError
	var contentErr *application.ContentError
	switch {
	case errors.As(err, &valErr), errors.As(err, &contentErr):
		return http.StatusBadRequest
	case errors.Is(err, application.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, application.ErrGuestLimit):
		return http.StatusForbidden
	case errors.Is(err, application.ErrTransitionNotDue):
		return http.StatusTooEarly
	case errors.Is(err, application.ErrInvalidOperation),
		errors.Is(err, application.ErrOptionUnavailable),
		errors.Is(err, application.ErrStaleTransition),
		errors.Is(err, application.ErrNoPendingTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func abortWith(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

// session resolves the :name path parameter
func (s *Server) session(c *gin.Context) (*application.Session, bool) {
	session, err := s.lib.Session(c.Request.Context(), c.Param("name"))
	if err != nil {
		abortWith(c, err)
		return nil, false
	}
	return session, true
}

// respondStep writes a step, scheduling its pending transition. A deferred
// step answers 202 Accepted.
func (s *Server) respondStep(c *gin.Context, session *application.Session, step application.StepResult, message string) {
	s.schedule(session, step.Pending)

	status := http.StatusOK
	if step.Deferred() && !step.Outcome.Moved {
		status = http.StatusAccepted
	}
	c.JSON(status, stepResponse{
		Moved:             step.Outcome.Moved,
		From:              step.Outcome.From,
		To:                step.Outcome.To,
		Reason:            step.Outcome.Reason,
		GuestLimitReached: step.Outcome.GuestLimitReached,
		Message:           message,
		View:              step.View,
		Pending:           step.Pending,
	})
}

// ============================================
// Handlers
// ============================================

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"clients": s.hub.Clients(),
	})
}

func (s *Server) getNovel(c *gin.Context) {
	c.JSON(http.StatusOK, s.lib.Novel())
}

func (s *Server) putNovel(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	n, err := domain.DecodeNovelJSON(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := application.ValidateNovel(n); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if s.repo != nil {
		if err := s.repo.Save(c.Request.Context(), n); err != nil {
			abortWith(c, err)
			return
		}
	}

	s.ReloadNovel(c.Request.Context(), n)
	c.JSON(http.StatusOK, gin.H{"title": n.Title, "episodes": len(n.Episodes)})
}

func (s *Server) listProfiles(c *gin.Context) {
	names, err := s.lib.Profiles(c.Request.Context())
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profiles": names})
}

func (s *Server) getProfile(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, session.Profile())
}

func (s *Server) deleteProfile(c *gin.Context) {
	if err := s.lib.Forget(c.Request.Context(), c.Param("name")); err != nil {
		abortWith(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) resetProfile(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}
	result, err := commands.NewResetProfileCommand(session).Execute(c.Request.Context())
	if err != nil {
		abortWith(c, err)
		return
	}
	pending := session.Pending()
	s.schedule(session, pending)
	c.JSON(http.StatusOK, gin.H{"message": result.Message, "view": session.View(), "pending": pending})
}

func (s *Server) getView(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"view":    session.View(),
		"pending": session.Pending(),
		"guest":   session.IsGuest(),
	})
}

func (s *Server) getEpisodes(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}
	episodes, err := commands.NewListEpisodesCommand(session, s.cfg.Admin).Execute(c.Request.Context())
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"episodes": episodes})
}

func (s *Server) getInventory(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}
	inv, err := commands.NewInventoryCommand(session).Execute(c.Request.Context())
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

func (s *Server) search(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}
	results, err := commands.NewSearchCommand(session, c.Query("q")).Execute(c.Request.Context())
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (s *Server) navigate(direction commands.Direction) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := s.session(c)
		if !ok {
			return
		}
		result, err := commands.NewNavigateCommand(session, direction).Execute(c.Request.Context())
		if err != nil {
			abortWith(c, err)
			return
		}
		s.respondStep(c, session, result.Step, result.Message)
	}
}

func (s *Server) choose(c *gin.Context) {
	var req ChooseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	session, ok := s.session(c)
	if !ok {
		return
	}
	result, err := commands.NewChooseCommand(session, req.OptionID).Execute(c.Request.Context())
	if err != nil {
		abortWith(c, err)
		return
	}
	s.respondStep(c, session, result.Step, result.Message)
}

func (s *Server) jump(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}
	result, err := commands.NewJumpToEpisodeCommand(session, c.Param("episode")).Execute(c.Request.Context())
	if err != nil {
		abortWith(c, err)
		return
	}
	s.respondStep(c, session, result.Step, result.Message)
}

func (s *Server) commit(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}
	result, err := commands.NewCommitTransitionCommand(session, c.Param("id")).Execute(c.Request.Context())
	if err != nil {
		abortWith(c, err)
		return
	}
	s.respondStep(c, session, result.Step, result.Message)
}

func (s *Server) listBookmarks(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}
	entries, err := commands.NewListBookmarksCommand(session).Execute(c.Request.Context())
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookmarks": entries})
}

func (s *Server) addBookmark(c *gin.Context) {
	var req BookmarkRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	session, ok := s.session(c)
	if !ok {
		return
	}
	result, err := commands.NewAddBookmarkCommand(session, req.Comment).Execute(c.Request.Context())
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusCreated, result.Bookmark)
}

func (s *Server) removeBookmark(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}
	if _, err := commands.NewRemoveBookmarkCommand(session, c.Param("id")).Execute(c.Request.Context()); err != nil {
		abortWith(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) openBookmark(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}
	result, err := commands.NewGoToBookmarkCommand(session, c.Param("id")).Execute(c.Request.Context())
	if err != nil {
		abortWith(c, err)
		return
	}
	s.respondStep(c, session, result.Step, result.Message)
}

func (s *Server) noteCharacter(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}
	var req NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := commands.NewAnnotateCharacterCommand(session, c.Param("id"), req.Comment).Execute(c.Request.Context())
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": result.Message, "characterId": result.CharacterID})
}
