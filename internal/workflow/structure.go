package workflow

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/lessonplan-api/internal/apiclient"
	"github.com/noah-isme/lessonplan-api/internal/dto"
	"github.com/noah-isme/lessonplan-api/internal/listview"
	"github.com/noah-isme/lessonplan-api/internal/models"
)

// ErrStaleAfterWrite reports a write the server confirmed whose fresh copy
// could not be read back. The cache no longer holds the old copy.
var ErrStaleAfterWrite = errors.New("write applied but the updated record could not be loaded")

// CreateModule checks the curriculum linkage against the cached tree and,
// once the server confirms, stores the new module.
func (c *Controller) CreateModule(ctx context.Context, req dto.ModuleRequest) (*models.Module, error) {
	if err := c.checkLinkage(req); err != nil {
		return nil, err
	}
	module, err := c.api.CreateModule(ctx, req)
	if err != nil {
		return nil, c.fail(err)
	}
	c.store.Tree().UpsertModule(*module)
	c.succeed("Module created")
	return module, nil
}

// UpdateModule rewrites a module. When the response carries no module the
// detail is read back; if that read fails the cached record is dropped so a
// later load fetches it fresh, and the error wraps ErrStaleAfterWrite.
func (c *Controller) UpdateModule(ctx context.Context, moduleID int64, req dto.ModuleRequest) (*models.Module, error) {
	if err := c.checkLinkage(req); err != nil {
		return nil, err
	}
	resp, err := c.api.UpdateModule(ctx, moduleID, req)
	if err != nil {
		return nil, c.fail(err)
	}

	tree := c.store.Tree()
	if resp.HasData() {
		var module models.Module
		if err := resp.Decode(&module); err == nil && module.ID != 0 {
			tree.UpsertModule(module)
			c.succeed(successMessage)
			return &module, nil
		}
	}

	module, err := c.api.Module(ctx, moduleID)
	if err != nil {
		c.logger.Warn("module re-read after update failed", zap.Int64("module_id", moduleID), zap.Error(err))
		tree.RemoveModule(moduleID)
		c.store.setNotice(&listview.Notice{
			Message:  "Module updated, but the latest copy could not be loaded",
			Severity: listview.SeverityWarning,
		})
		return nil, fmt.Errorf("%w: module %d: %v", ErrStaleAfterWrite, moduleID, err)
	}
	tree.UpsertModule(*module)
	c.succeed(successMessage)
	return module, nil
}

// DeleteModule soft-deletes a module and drops it from the tree.
func (c *Controller) DeleteModule(ctx context.Context, moduleID int64) error {
	if _, err := c.api.DeleteModule(ctx, moduleID); err != nil {
		return c.fail(err)
	}
	c.store.Tree().RemoveModule(moduleID)
	c.succeed("Module deleted")
	return nil
}

// CreateLesson adds a lesson and stores the confirmed copy.
func (c *Controller) CreateLesson(ctx context.Context, moduleID int64, req dto.LessonRequest) (*models.Lesson, error) {
	lesson, err := c.api.CreateLesson(ctx, moduleID, req)
	if err != nil {
		return nil, c.fail(err)
	}
	c.store.Tree().UpsertLesson(moduleID, *lesson)
	c.succeed("Lesson created")
	return lesson, nil
}

// UpdateLesson rewrites a lesson. Without a returned lesson the module's
// lessons are reloaded; a reloaded list missing the lesson yields ErrStaleAfterWrite.
func (c *Controller) UpdateLesson(ctx context.Context, moduleID, lessonID int64, req dto.LessonRequest) (*models.Lesson, error) {
	resp, err := c.api.UpdateLesson(ctx, lessonID, req)
	if err != nil {
		return nil, c.fail(err)
	}

	tree := c.store.Tree()
	if lesson, ok := decodeLesson(resp); ok {
		tree.UpsertLesson(moduleID, lesson)
		c.succeed(successMessage)
		return &lesson, nil
	}

	lessons, err := tree.LoadLessons(ctx, moduleID)
	if err != nil {
		return nil, c.fail(err)
	}
	for i := range lessons {
		if lessons[i].ID == lessonID {
			c.succeed(successMessage)
			return &lessons[i], nil
		}
	}
	c.store.setNotice(&listview.Notice{
		Message:  "Lesson updated, but the latest copy could not be loaded",
		Severity: listview.SeverityWarning,
	})
	return nil, fmt.Errorf("%w: lesson %d", ErrStaleAfterWrite, lessonID)
}

// ToggleLessonActive flips a lesson's active flag through the delete endpoint.
// The lesson is nil when the server did not return it; the cached copy is
// toggled locally instead.
func (c *Controller) ToggleLessonActive(ctx context.Context, moduleID, lessonID int64) (*models.Lesson, error) {
	resp, err := c.api.ToggleLesson(ctx, lessonID)
	if err != nil {
		return nil, c.fail(err)
	}

	tree := c.store.Tree()
	if lesson, ok := decodeLesson(resp); ok {
		tree.UpsertLesson(moduleID, lesson)
		c.succeed("Lesson updated")
		return &lesson, nil
	}
	if !tree.ToggleLessonActive(moduleID, lessonID) {
		c.logger.Debug("toggled lesson not cached", zap.Int64("module_id", moduleID), zap.Int64("lesson_id", lessonID))
	}
	c.succeed("Lesson updated")
	return nil, nil
}

func (c *Controller) checkLinkage(req dto.ModuleRequest) error {
	if err := c.store.Tree().CheckLinkage(req.CurriculumID, req.GradeID); err != nil {
		return c.fail(&apiclient.Error{
			Kind:    apiclient.KindPrecondition,
			Message: fmt.Sprintf("curriculum %d cannot hold a grade %d module", req.CurriculumID, req.GradeID),
			Err:     err,
		})
	}
	return nil
}

func decodeLesson(resp *apiclient.Response) (models.Lesson, bool) {
	var lesson models.Lesson
	if resp == nil || !resp.HasData() {
		return lesson, false
	}
	if err := resp.Decode(&lesson); err != nil || lesson.ID == 0 {
		return lesson, false
	}
	return lesson, true
}
