package controllers

import (
	"github.com/gofiber/fiber/v2"
)

func (c *SearchController) SearchReservationsController(ctx *fiber.Ctx) error {
	query := ctx.Query("q")
	status := ctx.Query("status")

	results, err := c.repo.SearchReservations(query, status)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Search failed",
		})
	}

	var matches []interface{}
	for _, hit := range results.Hits {
		doc, err := c.repo.GetReservationDocument(hit.ID)
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
