package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lessonplan-api/internal/middleware"
	"github.com/noah-isme/lessonplan-api/internal/models"
)

// Handlers groups the resource handlers mounted under the API prefix.
type Handlers struct {
	Grades      *GradeHandler
	Curriculums *CurriculumHandler
	Modules     *ModuleHandler
	LessonPlans *LessonPlanHandler
}

// RegisterRoutes mounts every resource route on group behind bearer authentication.
func RegisterRoutes(group *gin.RouterGroup, auth middleware.TokenValidator, h Handlers) {
	api := group.Group("")
	api.Use(middleware.JWT(auth))

	managers := middleware.RequireRoles(models.RoleManager, models.RoleAdmin)

	api.GET("/grades", h.Grades.List)
	api.GET("/grades/:gradeId/curriculums", h.Curriculums.ListByGrade)
	api.GET("/grades/:gradeId/modules", h.Modules.ListByGrade)

	api.GET("/curriculums/:id", h.Curriculums.Get)
	api.POST("/curriculums", managers, h.Curriculums.Create)
	api.PUT("/curriculums/:id", managers, h.Curriculums.Update)

	api.GET("/modules/:moduleId", h.Modules.Get)
	api.GET("/modules/:moduleId/lessons", h.Modules.ListLessons)
	api.POST("/modules", managers, h.Modules.Create)
	api.PUT("/modules/:moduleId", managers, h.Modules.Update)
	api.DELETE("/modules/:moduleId", managers, h.Modules.Delete)
	api.POST("/modules/:moduleId/lessons", managers, h.Modules.CreateLesson)
	api.PUT("/lessons/:lessonId", managers, h.Modules.UpdateLesson)
	api.DELETE("/lessons/:lessonId", managers, h.Modules.ToggleLesson)

	api.GET("/lesson-plans", h.LessonPlans.List)
	api.GET("/lesson-plans/:id", h.LessonPlans.Get)
	api.POST("/lesson-plans", h.LessonPlans.Create)
	api.PUT("/lesson-plans/:id", h.LessonPlans.Update)
	api.POST("/lesson-plans/:id/pending", h.LessonPlans.Submit)
	api.PUT("/lesson-plans/:id/approve", h.LessonPlans.Approve)
	api.PUT("/lesson-plans/:id/reject", h.LessonPlans.Reject)
	api.PUT("/lesson-plans/:id/draft", h.LessonPlans.ReturnToDraft)
	api.DELETE("/lesson-plans/:id", h.LessonPlans.Delete)
}
