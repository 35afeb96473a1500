package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/internlink/backend/internal/app/controllers"
	"github.com/internlink/backend/internal/app/models"
	"github.com/internlink/backend/internal/app/models/dto"
	"github.com/internlink/backend/internal/middleware"
	"github.com/internlink/backend/internal/pkg/realtime"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	registrationController *controllers.RegistrationController,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	enterpriseController *controllers.EnterpriseController,
	teacherController *controllers.TeacherController,
	adminController *controllers.AdminController,
	notificationController *controllers.NotificationController,
	filesController *controllers.FilesController,
	profileController *controllers.ProfileController,
	hub *realtime.Hub,
	authMiddleware *middleware.AuthMiddleware,
) {
	api := router.Group("/api")

	// --- Public routes ---
	registration := api.Group("/registration")
	{
		registration.POST("/student", registrationController.RegisterStudent)
		registration.POST("/teacher", registrationController.RegisterTeacher)
		registration.POST("/enterprise", registrationController.RegisterEnterprise)
		registration.POST("/verifyEmail", registrationController.VerifyEmail)
		registration.POST("/resendCode", registrationController.ResendCode)
	}

	api.POST("/login", authController.Login)

	resetPassword := api.Group("/resetPassword")
	{
		resetPassword.POST("/sendCode", authController.SendResetCode)
		resetPassword.POST("/verifyEmail", registrationController.VerifyEmail)
		resetPassword.PATCH("", authController.ResetPassword)
	}

	// --- Authenticated routes shared by every role ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	verified := authenticated.Group("")
	verified.Use(authMiddleware.EmailVerificationRequired())

	verified.GET("/ws", realtime.ServeWS(hub))

	notifications := verified.Group("/getNotifications")
	{
		notifications.GET("", notificationController.GetNotifications)
		notifications.PATCH("/:id/seen", notificationController.MarkSeen)
	}

	downloads := verified.Group("/downloadFiles")
	{
		downloads.GET("/application/:id/cv", filesController.DownloadCV)
		downloads.GET("/application/:id/coverLetter", filesController.DownloadCoverLetter)
		downloads.GET("/offer/:id/convention", filesController.DownloadConvention)
		downloads.GET("/enterprise/:id/logo", filesController.DownloadLogo)
	}

	// Profile stays reachable before email verification so users can
	// update the address a code was sent to.
	profile := authenticated.Group("/updateProfile")
	{
		profile.GET("/getCurrentUser", profileController.GetCurrentUser)
		profile.GET("/getUserEmail", profileController.GetUserEmail)
		profile.PATCH("/updatePassword", profileController.UpdatePassword)
		profile.POST("/verifyPassword", profileController.VerifyPassword)
		profile.PATCH("/updateEmail", profileController.UpdateEmail)
		profile.DELETE("/deleteAccount", profileController.DeleteAccount)
	}

	profilePhoto := verified.Group("/profilePhoto")
	{
		profilePhoto.PUT("", profileController.UploadProfilePhoto)
		profilePhoto.GET("", profileController.GetProfilePhoto)
		profilePhoto.DELETE("", profileController.DeleteProfilePhoto)
	}

	// --- Role-gated routes ---
	student := verified.Group("/student")
	student.Use(authMiddleware.RoleRequired(string(models.RoleStudent)))
	{
		student.GET("/offersByApprovedStatus", studentController.ListOpenOffers)
		student.GET("/pendingApplicationsOfStudent", studentController.ListPendingApplications)
		student.GET("/applicationsApprovedOfStudent", studentController.ListApprovedApplications)
		student.GET("/status", studentController.GetInternshipStatus)
		student.GET("/profile", studentController.GetProfile)
		student.POST("/:id/createApplication", studentController.SubmitApplication)
		student.PUT("/:id/updateStudentStatus", studentController.AcceptInternship)
		student.DELETE("/:id", studentController.DeleteApplication)
		student.PATCH("/updateLanguages", studentController.UpdateLanguages)
		student.PATCH("/updateGithubLink", studentController.UpdateGithubLink)
		student.PATCH("/updateLinkedinLink", studentController.UpdateLinkedinLink)
	}

	enterprise := verified.Group("/enterprise")
	enterprise.Use(authMiddleware.RoleRequired(string(models.RoleEnterprise)))
	{
		enterprise.POST("/createOffer", enterpriseController.CreateOffer)
		enterprise.POST("/:id/convention", enterpriseController.AttachConvention)
		enterprise.GET("/listOfOffers", enterpriseController.ListOffers)
		enterprise.GET("/Applications", enterpriseController.ListApplications)
		enterprise.PUT("/application/:id/validate", enterpriseController.DecideApplication)
		enterprise.GET("/info", enterpriseController.GetInfo)
		enterprise.PATCH("/updateContact", enterpriseController.UpdateContact)
		enterprise.PATCH("/updateLocation", enterpriseController.UpdateLocation)
		enterprise.PUT("/updateLogo", enterpriseController.UpdateLogo)
	}

	teacher := verified.Group("/teacher")
	teacher.Use(authMiddleware.RoleRequired(string(models.RoleTeacher)))
	{
		teacher.GET("/offerToReview", teacherController.ListOffersToReview)
		teacher.GET("/offersApprovedByTeacher", teacherController.ListApprovedOffers)
		teacher.PUT("/offers/:id/validate", teacherController.ValidateOffer)
		teacher.GET("/studentsOfDepartment", teacherController.ListDepartmentStudents)
		teacher.GET("/partneredEnterprises", teacherController.ListPartneredEnterprises)
		teacher.GET("/internshipsByDepartment", teacherController.GetDepartmentStats)
	}

	admin := verified.Group("/admin")
	admin.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
	{
		admin.GET("/enterprises/pending", adminController.ListPendingEnterprises)
		admin.GET("/enterprises/partnered", adminController.ListPartneredEnterprises)
		admin.PUT("/enterprises/:id/decide", adminController.DecidePartnership)
		admin.GET("/students", adminController.ListStudents)
		admin.GET("/teachers", adminController.ListTeachers)
		admin.GET("/internships/export", adminController.ExportInternships)
	}

	// Health check endpoint (public)
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
