package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func (c *SearchController) SearchRoomsController(ctx *fiber.Ctx) error {
	query := ctx.Query("q")
	capacity := ctx.Query("capacity")

	activeStr := ctx.Query("active")
	var active *bool
	if activeStr != "" {
		val, err := strconv.ParseBool(activeStr)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid 'active' value",
			})
		}
		active = &val
	}

	results, err := c.repo.SearchRooms(query, capacity, active)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Search failed",
		})
	}

	var matches []interface{}
	for _, hit := range results.Hits {
		doc, err := c.repo.GetRoomDocument(hit.ID)
		if err != nil {
			continue
		}
		matches = append(matches, doc)
	}

	return ctx.JSON(fiber.Map{
		"results": matches,
		"total":   results.Total,
	})
}
