package server

import (
	"github.com/gofiber/fiber/v2"
)

type handlers struct {
	manager *Manager
}

func (h *handlers) create(c *fiber.Ctx) error {
	var req CreateRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}

	state, err := h.manager.Create(c.UserContext(), req.FEN)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(state)
}

func (h *handlers) state(c *fiber.Ctx) error {
	state, err := h.manager.State(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(state)
}

func (h *handlers) remove(c *fiber.Ctx) error {
	if err := h.manager.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *handlers) moves(c *fiber.Ctx) error {
	moves, err := h.manager.Moves(c.UserContext(), c.Params("id"), c.Query("from"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"moves": moves,
	})
}

func (h *handlers) move(c *fiber.Ctx) error {
	var req MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	state, err := h.manager.Move(c.UserContext(), c.Params("id"), req.From, req.To)
	if err != nil {
		return err
	}
	return c.JSON(state)
}

func (h *handlers) promote(c *fiber.Ctx) error {
	var req PromoteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	state, err := h.manager.Promote(c.UserContext(), c.Params("id"), req.Piece)
	if err != nil {
		return err
	}
	return c.JSON(state)
}

func (h *handlers) snapshot(c *fiber.Ctx) error {
	data, err := h.manager.Snapshot(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	return c.Send(data)
}

func (h *handlers) restore(c *fiber.Ctx) error {
	// The request body is reused by fasthttp after the handler returns.
	data := append([]byte(nil), c.Body()...)

	state, err := h.manager.Restore(c.UserContext(), c.Params("id"), data)
	if err != nil {
		return err
	}
	return c.JSON(state)
}
