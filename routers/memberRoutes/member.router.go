package memberRoutes

import (
	memberControllers "gymadmin/controllers/memberControllers"
	uploadControllers "gymadmin/controllers/uploadControllers"
	"gymadmin/middleware"
	memberValidators "gymadmin/validators/member"

	"github.com/gofiber/fiber/v2"
)

func SetupMemberRoutes(app *fiber.App) {
	memberGroup := app.Group("/members", middleware.JWTMiddleware)

	memberGroup.Get("/", memberControllers.ListMembers)
	memberGroup.Get("/analytics", memberControllers.GetAnalytics)
	memberGroup.Post("/register", memberValidators.RegisterMember(), memberControllers.RegisterMember)
	memberGroup.Get("/member/:id", memberControllers.GetMemberByID)
	memberGroup.Patch("/:id/edit", memberValidators.EditMember(), memberControllers.EditMemberDetails)
	memberGroup.Patch("/:id/status", memberValidators.UpdateStatus(), memberControllers.UpdateMemberStatus)
	memberGroup.Patch("/:id/renew", memberValidators.RenewMember(), memberControllers.RenewMembership)
	memberGroup.Delete("/:id", memberControllers.DeleteMember)

	uploadGroup := app.Group("/uploads", middleware.JWTMiddleware)
	uploadGroup.Post("/profile", uploadControllers.UploadProfilePic)
}
