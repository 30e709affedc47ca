package app

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Spok95/peerrank/internal/apperr"
	"github.com/Spok95/peerrank/internal/export"
	"github.com/Spok95/peerrank/internal/metrics"
	"github.com/Spok95/peerrank/internal/rating"
)

type submitRequest struct {
	QuestionID int64 `json:"question_id" binding:"required"`
	StudentID  int64 `json:"student_id" binding:"required"`
	Rank       int   `json:"rank" binding:"required"`
}

// submitRating — rater_id берётся только из сессии (identity middleware),
// поля в теле запроса для него нет.
func (a *API) submitRating(c *gin.Context) {
	roomID, ok := a.paramID(c, "id")
	if !ok {
		return
	}
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		a.writeErr(c, apperr.Wrap(apperr.Validation, "некорректное тело запроса", err))
		return
	}

	r, err := a.svc.Submit(c.Request.Context(), userID(c), rating.SubmitInput{
		RoomID:     roomID,
		QuestionID: req.QuestionID,
		StudentID:  req.StudentID,
		Rank:       req.Rank,
	})
	if err != nil {
		metrics.Submissions.WithLabelValues("error").Inc()
		a.writeErr(c, err)
		return
	}
	metrics.Submissions.WithLabelValues("ok").Inc()
	c.JSON(http.StatusCreated, r)
}

func (a *API) leaderboard(c *gin.Context) {
	roomID, ok := a.paramID(c, "id")
	if !ok {
		return
	}
	questionID, ok := a.optionalQuestionID(c)
	if !ok {
		return
	}

	metrics.LeaderboardReads.Inc()
	rows, err := a.svc.Leaderboard(c.Request.Context(), roomID, questionID)
	if err != nil {
		a.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (a *API) leaderboardExport(c *gin.Context) {
	roomID, ok := a.paramID(c, "id")
	if !ok {
		return
	}
	questionID, ok := a.optionalQuestionID(c)
	if !ok {
		return
	}

	rows, err := a.svc.Leaderboard(c.Request.Context(), roomID, questionID)
	if err != nil {
		a.writeErr(c, err)
		return
	}

	wb, err := export.NewLeaderboardWorkbook(rows)
	if err != nil {
		a.writeErr(c, err)
		return
	}
	filename := fmt.Sprintf("leaderboard_%d_%d.xlsx", roomID, time.Now().Unix())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := wb.File.Write(c.Writer); err != nil {
		a.log.Error("не удалось отдать xlsx", zap.Error(err))
	}
}

func (a *API) receivedRatings(c *gin.Context) {
	roomID, ok := a.paramID(c, "id")
	if !ok {
		return
	}
	studentID, err := strconv.ParseInt(c.Query("student_id"), 10, 64)
	if err != nil || studentID <= 0 {
		a.writeErr(c, apperr.E(apperr.Validation, "нужен корректный student_id"))
		return
	}

	rows, err := a.svc.ReceivedRatings(c.Request.Context(), roomID, studentID)
	if err != nil {
		a.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// paramID — положительный int64 из path-параметра; сам отвечает 400.
func (a *API) paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		a.writeErr(c, apperr.Errorf(apperr.Validation, "некорректный параметр %s", name))
		return 0, false
	}
	return id, true
}

func (a *API) optionalQuestionID(c *gin.Context) (*int64, bool) {
	raw := c.Query("question_id")
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		a.writeErr(c, apperr.E(apperr.Validation, "некорректный question_id"))
		return nil, false
	}
	return &id, true
}
