package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetUserProfile handles GET /users/:id
// @Summary Get a user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id} [get]
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUserByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// GetUserAdvertisements handles GET /users/:id/advertisements/
// @Summary List a user's listings
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} models.Advertisement
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/advertisements/ [get]
func (s *Server) GetUserAdvertisements(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	ads, err := s.adService.ListByOwner(c.UserContext(), id, listInput(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ads)
}

// GetMyProfile handles GET /users/me
// @Summary Get the signed-in user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} models.ErrorResponse
// @Router /users/me [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	return c.JSON(currentUser(c))
}

// DeleteMyAccount handles DELETE /users/me. The user's listings go with it.
// @Summary Delete the signed-in account
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{detail=string}
// @Failure 401 {object} models.ErrorResponse
// @Router /users/me [delete]
func (s *Server) DeleteMyAccount(c *fiber.Ctx) error {
	if err := s.userService.DeleteUser(c.UserContext(), currentUser(c).ID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"detail": "Account deleted successfully"})
}
