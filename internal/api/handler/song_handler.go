package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zanith/zanith-api/internal/core/ports"
)

// SongHandler handles browsing and the listen/like/comment mutations.
type SongHandler struct {
	service ports.SongService
}

func NewSongHandler(service ports.SongService) *SongHandler {
	return &SongHandler{service: service}
}

// Home handles GET /home.
//
// @Summary      Featured songs
// @Tags         songs
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  feedResponse
// @Failure      403  {object}  errorResponse
// @Router       /home [get]
func (h *SongHandler) Home(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	feed, err := h.service.Home(c.Request().Context(), id.Username)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, feedResponse{Songs: feed.Songs, Like: feed.Liked})
}

// Profile handles GET /profile/:artistName.
//
// @Summary      Artist profile
// @Tags         songs
// @Produce      json
// @Security     SessionCookie
// @Param        artistName  path      string  true  "Artist username"
// @Success      200         {object}  profileResponse
// @Failure      403         {object}  errorResponse
// @Router       /profile/{artistName} [get]
func (h *SongHandler) Profile(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	profile, err := h.service.Profile(c.Request().Context(), c.Param("artistName"), id.Username)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, profileResponse{
		Songs:       profile.Songs,
		Like:        profile.Liked,
		RecordLabel: profile.RecordLabel,
	})
}

// Search handles GET /search/:result.
//
// @Summary      Search songs and artists
// @Tags         songs
// @Produce      json
// @Security     SessionCookie
// @Param        result  path      string  true  "Substring of a title or username"
// @Success      200     {object}  searchResponse
// @Failure      400     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Router       /search/{result} [get]
func (h *SongHandler) Search(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	res, err := h.service.Search(c.Request().Context(), c.Param("result"), id.Username)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, searchResponse{Songs: res.Songs, Artist: res.Artist, Like: res.Liked})
}

// Get handles GET /song/:songName.
//
// @Summary      Get a song
// @Tags         songs
// @Produce      json
// @Security     SessionCookie
// @Param        songName  path      string  true  "Audio public id"
// @Success      200       {object}  domain.Song
// @Failure      403       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /song/{songName} [get]
func (h *SongHandler) Get(c echo.Context) error {
	song, err := h.service.Get(c.Request().Context(), c.Param("songName"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, song)
}

// Listen handles POST /listen.
//
// @Summary      Count a listen
// @Tags         songs
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      songRefRequest  true  "Song reference"
// @Success      200   {object}  listenResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /listen [post]
func (h *SongHandler) Listen(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req songRefRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	listens, err := h.service.Listen(c.Request().Context(), id.Username, req.Song)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, listenResponse{Listen: listens})
}

// Like handles POST /like and toggles the caller's like on the song.
//
// @Summary      Toggle like
// @Tags         songs
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      songRefRequest  true  "Song reference"
// @Success      200   {object}  likeResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /like [post]
func (h *SongHandler) Like(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req songRefRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.service.ToggleLike(c.Request().Context(), id.Username, req.Song)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, likeResponse{Like: res.Likes, NewLike: res.NewLike})
}

// Comment handles POST /comment.
//
// @Summary      Add a comment
// @Tags         songs
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      commentRequest  true  "Comment"
// @Success      201   {object}  commentResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /comment [post]
func (h *SongHandler) Comment(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req commentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.service.AddComment(c.Request().Context(), ports.AddCommentInput{
		Username: id.Username,
		AudioID:  req.Song,
		ID:       req.ID,
		Text:     req.Comment,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, commentResponse{Comment: comment})
}

// DeleteComment handles POST /deleteComment.
//
// @Summary      Delete a comment
// @Tags         songs
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      deleteCommentRequest  true  "Comment reference"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /deleteComment [post]
func (h *SongHandler) DeleteComment(c echo.Context) error {
	if _, err := ctxIdentity(c); err != nil {
		return err
	}
	var req deleteCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.service.DeleteComment(c.Request().Context(), req.Song, req.ID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "comment deleted"})
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
