package app

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Spok95/peerrank/internal/apperr"
)

type createRoomRequest struct {
	Name    string `json:"name" binding:"required"`
	Branch  string `json:"branch"`
	Section string `json:"section"`
}

func (a *API) createRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		a.writeErr(c, apperr.Wrap(apperr.Validation, "некорректное тело запроса", err))
		return
	}
	room, err := a.store.CreateRoom(c.Request.Context(), req.Name, req.Branch, req.Section)
	if err != nil {
		a.writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

func (a *API) listRooms(c *gin.Context) {
	rooms, err := a.store.ListRooms(c.Request.Context())
	if err != nil {
		a.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (a *API) deleteRoom(c *gin.Context) {
	id, ok := a.paramID(c, "id")
	if !ok {
		return
	}
	deleted, err := a.store.DeleteRoom(c.Request.Context(), id)
	if err != nil {
		a.writeErr(c, err)
		return
	}
	if !deleted {
		a.writeErr(c, apperr.Errorf(apperr.NotFound, "комната %d не найдена", id))
		return
	}
	c.Status(http.StatusNoContent)
}

type createQuestionRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

func (a *API) createQuestion(c *gin.Context) {
	roomID, ok := a.paramID(c, "id")
	if !ok {
		return
	}
	var req createQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		a.writeErr(c, apperr.Wrap(apperr.Validation, "некорректное тело запроса", err))
		return
	}
	room, err := a.store.GetRoom(c.Request.Context(), roomID)
	if err != nil {
		a.writeErr(c, err)
		return
	}
	if room == nil {
		a.writeErr(c, apperr.Errorf(apperr.NotFound, "комната %d не найдена", roomID))
		return
	}
	q, err := a.store.CreateQuestion(c.Request.Context(), roomID, req.Prompt)
	if err != nil {
		a.writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, q)
}

func (a *API) listQuestions(c *gin.Context) {
	roomID, ok := a.paramID(c, "id")
	if !ok {
		return
	}
	qs, err := a.store.ListQuestionsByRoom(c.Request.Context(), roomID)
	if err != nil {
		a.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, qs)
}

func (a *API) deleteQuestion(c *gin.Context) {
	id, ok := a.paramID(c, "id")
	if !ok {
		return
	}
	deleted, err := a.store.DeleteQuestion(c.Request.Context(), id)
	if err != nil {
		a.writeErr(c, err)
		return
	}
	if !deleted {
		a.writeErr(c, apperr.Errorf(apperr.NotFound, "вопрос %d не найден", id))
		return
	}
	c.Status(http.StatusNoContent)
}

type createStudentRequest struct {
	StudentNumber string `json:"student_number" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Name          string `json:"name" binding:"required"`
	Registered    bool   `json:"registered"`
}

func (a *API) createStudent(c *gin.Context) {
	var req createStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		a.writeErr(c, apperr.Wrap(apperr.Validation, "некорректное тело запроса", err))
		return
	}
	st, err := a.store.CreateStudent(c.Request.Context(), req.StudentNumber, req.Email, req.Name, req.Registered)
	if err != nil {
		// уникальность номера/почты отдаём как конфликт
		if strings.Contains(err.Error(), "duplicate key") {
			a.writeErr(c, apperr.E(apperr.Conflict, "ученик с таким номером или email уже есть"))
			return
		}
		a.writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, st)
}

func (a *API) listStudents(c *gin.Context) {
	sts, err := a.store.ListStudents(c.Request.Context())
	if err != nil {
		a.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, sts)
}

func (a *API) deleteStudent(c *gin.Context) {
	id, ok := a.paramID(c, "id")
	if !ok {
		return
	}
	deleted, err := a.store.DeleteStudent(c.Request.Context(), id)
	if err != nil {
		a.writeErr(c, err)
		return
	}
	if !deleted {
		a.writeErr(c, apperr.Errorf(apperr.NotFound, "ученик %d не найден", id))
		return
	}
	c.Status(http.StatusNoContent)
}

// roomStudents — состав комнаты; доступен любому аутентифицированному,
// UI строит по нему форму ранжирования.
func (a *API) roomStudents(c *gin.Context) {
	roomID, ok := a.paramID(c, "id")
	if !ok {
		return
	}
	room, err := a.store.GetRoom(c.Request.Context(), roomID)
	if err != nil {
		a.writeErr(c, err)
		return
	}
	if room == nil {
		a.writeErr(c, apperr.Errorf(apperr.NotFound, "комната %d не найдена", roomID))
		return
	}
	sts, err := a.store.ListRoomStudents(c.Request.Context(), roomID)
	if err != nil {
		a.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, sts)
}

type assignRequest struct {
	RoomID int64 `json:"room_id" binding:"required"`
}

func (a *API) assignStudent(c *gin.Context) {
	studentID, ok := a.paramID(c, "id")
	if !ok {
		return
	}
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		a.writeErr(c, apperr.Wrap(apperr.Validation, "некорректное тело запроса", err))
		return
	}
	room, err := a.store.GetRoom(c.Request.Context(), req.RoomID)
	if err != nil {
		a.writeErr(c, err)
		return
	}
	if room == nil {
		a.writeErr(c, apperr.Errorf(apperr.NotFound, "комната %d не найдена", req.RoomID))
		return
	}
	st, err := a.store.GetStudent(c.Request.Context(), studentID)
	if err != nil {
		a.writeErr(c, err)
		return
	}
	if st == nil {
		a.writeErr(c, apperr.Errorf(apperr.NotFound, "ученик %d не найден", studentID))
		return
	}
	asg, err := a.store.AssignStudent(c.Request.Context(), req.RoomID, studentID)
	if err != nil {
		a.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, asg)
}

func (a *API) unassignStudent(c *gin.Context) {
	studentID, ok := a.paramID(c, "id")
	if !ok {
		return
	}
	deleted, err := a.store.UnassignStudent(c.Request.Context(), studentID)
	if err != nil {
		a.writeErr(c, err)
		return
	}
	if !deleted {
		a.writeErr(c, apperr.Errorf(apperr.NotFound, "у ученика %d нет привязки", studentID))
		return
	}
	c.Status(http.StatusNoContent)
}
