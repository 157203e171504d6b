package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lgbarn/chessai-go/internal/chess"
	"github.com/lgbarn/chessai-go/internal/errors"
	"github.com/lgbarn/chessai-go/internal/rating"
	"github.com/lgbarn/chessai-go/internal/resource"
	"github.com/lgbarn/chessai-go/internal/service"
)

// createRequest is the body of POST /api/games.
type createRequest struct {
	service.CreateOptions
	Engine string `json:"engine"` // "white", "black" or empty
}

type moveRequest struct {
	Move string `json:"move"`
}

type eloRequest struct {
	RatingA int     `json:"ratingA"`
	RatingB int     `json:"ratingB"`
	ResultA float64 `json:"resultA"`
	ResultB float64 `json:"resultB"`
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errors.ErrGameNotFound), errors.Is(err, errors.ErrUnknownPlayer):
		return fiber.StatusNotFound
	case errors.Is(err, errors.ErrIllegalMove),
		errors.Is(err, errors.ErrInvalidFEN),
		errors.Is(err, errors.ErrInvalidPosition),
		errors.Is(err, errors.ErrOutOfBounds),
		errors.Is(err, errors.ErrInvalidConfig):
		return fiber.StatusBadRequest
	case errors.Is(err, errors.ErrNotYourTurn),
		errors.Is(err, errors.ErrGameOver),
		errors.Is(err, errors.ErrNothingToUndo),
		errors.Is(err, errors.ErrNoLegalMoves):
		return fiber.StatusConflict
	case errors.Is(err, errors.ErrTooManyGames):
		return fiber.StatusTooManyRequests
	}
	return fiber.StatusInternalServerError
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": msg,
	})
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"games":  s.games.Len(),
	})
}

func (s *Server) rules(c *fiber.Ctx) error {
	return c.SendString(s.assets.TutorText())
}

func (s *Server) listAssets(c *fiber.Ctx) error {
	pieces, err := resource.PieceAssets(s.assets)
	if err != nil {
		return fail(c, err)
	}
	gui := make(map[string]string)
	for _, g := range []resource.GUI{resource.AppIcon, resource.HintButton, resource.UndoButton, resource.GameStats} {
		name, err := s.assets.GUIAsset(g)
		if err != nil {
			return fail(c, err)
		}
		gui[g.String()] = name
	}
	return c.JSON(fiber.Map{
		"pieces": pieces,
		"gui":    gui,
	})
}

func (s *Server) scoreboard(c *fiber.Ctx) error {
	ratings := s.games.Ratings()
	if ratings == nil {
		return c.JSON([]rating.Standing{})
	}
	return c.JSON(ratings.Store().Scoreboard())
}

func (s *Server) elo(c *fiber.Ctx) error {
	var req eloRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	a, b := rating.UpdateRatingsK(req.RatingA, req.RatingB, req.ResultA, req.ResultB, s.cfg.Rating.KFactor)
	return c.JSON(fiber.Map{
		"ratingA": a,
		"ratingB": b,
	})
}

func (s *Server) createGame(c *fiber.Ctx) error {
	var req createRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
	}
	opts := req.CreateOptions
	if req.Engine != "" {
		a, ok := chess.ParseAlliance(req.Engine)
		if !ok {
			return badRequest(c, "engine must be white or black")
		}
		opts.Engine = &a
	}

	st, err := s.games.Create(c.UserContext(), opts)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(st)
}

func (s *Server) getGame(c *fiber.Ctx) error {
	st, err := s.games.State(c.Params("gameId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(st)
}

func (s *Server) deleteGame(c *fiber.Ctx) error {
	if err := s.games.Delete(c.Params("gameId")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) makeMove(c *fiber.Ctx) error {
	var req moveRequest
	if err := c.BodyParser(&req); err != nil || req.Move == "" {
		return badRequest(c, "move is required")
	}
	st, err := s.games.Move(c.UserContext(), c.Params("gameId"), req.Move)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(st)
}

func (s *Server) engineMove(c *fiber.Ctx) error {
	st, err := s.games.EngineMove(c.UserContext(), c.Params("gameId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(st)
}

func (s *Server) hint(c *fiber.Ctx) error {
	mv, err := s.games.Hint(c.UserContext(), c.Params("gameId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"move": mv.String(),
	})
}

func (s *Server) undo(c *fiber.Ctx) error {
	st, err := s.games.Undo(c.Params("gameId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(st)
}
