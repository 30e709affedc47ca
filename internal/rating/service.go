package rating

import (
	"context"

	"github.com/Spok95/peerrank/internal/apperr"
	"github.com/Spok95/peerrank/internal/models"
)

// Store — что сервису нужно от хранилища. Реализуется internal/db,
// в тестах — фейком в памяти.
type Store interface {
	GetRoom(ctx context.Context, id int64) (*models.Room, error)
	GetQuestion(ctx context.Context, id int64) (*models.Question, error)
	GetStudent(ctx context.Context, id int64) (*models.Student, error)
	IsAssigned(ctx context.Context, roomID, studentID int64) (bool, error)
	RankTakenByOther(ctx context.Context, questionID, raterID int64, rank int, studentID int64) (bool, error)
	UpsertRating(ctx context.Context, roomID, questionID, studentID, raterID int64, rank int) (models.Rating, error)
	Leaderboard(ctx context.Context, roomID int64, questionID *int64) ([]models.LeaderboardRow, error)
	ListReceivedRatings(ctx context.Context, roomID, studentID int64) ([]models.Rating, error)
}

// Cache — мемоизация свода. Get на промахе возвращает ключ,
// зафиксированный ДО чтения БД: конкурентная инвалидация сдвигает
// версию комнаты, и запоздавший Set ложится в уже мёртвый ключ.
// Пустой ключ — кэш сейчас недоступен, Set пропускаем.
type Cache interface {
	Get(ctx context.Context, roomID int64, questionID *int64) (rows []models.LeaderboardRow, key string, ok bool)
	Set(ctx context.Context, key string, rows []models.LeaderboardRow)
	InvalidateRoom(ctx context.Context, roomID int64)
}

type Service struct {
	store       Store
	cache       Cache // nil — кэш выключен
	strictRanks bool
}

func NewService(store Store, cache Cache, strictRanks bool) *Service {
	return &Service{store: store, cache: cache, strictRanks: strictRanks}
}

// SubmitInput — полезная нагрузка отправки. Оценщика здесь нет:
// его id идёт отдельным аргументом из проверенной сессии.
type SubmitInput struct {
	RoomID     int64
	QuestionID int64
	StudentID  int64
	Rank       int
}

// Submit — единственная мутация леджера. Проверяет справочник,
// затем атомарный upsert по тройке (question, student, rater):
// повторная отправка перезаписывает rank на месте, дубликат строки
// невозможен даже под гонкой.
func (s *Service) Submit(ctx context.Context, raterID int64, in SubmitInput) (models.Rating, error) {
	var zero models.Rating

	if in.RoomID <= 0 || in.QuestionID <= 0 || in.StudentID <= 0 {
		return zero, apperr.E(apperr.Validation, "room_id, question_id и student_id обязательны")
	}
	if in.Rank < 1 {
		return zero, apperr.E(apperr.Validation, "rank должен быть не меньше 1")
	}

	rater, err := s.store.GetStudent(ctx, raterID)
	if err != nil {
		return zero, err
	}
	if rater == nil || !rater.Registered {
		return zero, apperr.E(apperr.PermissionDenied, "оценивать могут только зарегистрированные ученики")
	}

	room, err := s.store.GetRoom(ctx, in.RoomID)
	if err != nil {
		return zero, err
	}
	if room == nil {
		return zero, apperr.Errorf(apperr.NotFound, "комната %d не найдена", in.RoomID)
	}

	question, err := s.store.GetQuestion(ctx, in.QuestionID)
	if err != nil {
		return zero, err
	}
	if question == nil || question.RoomID != in.RoomID {
		return zero, apperr.Errorf(apperr.NotFound, "вопрос %d не найден в комнате %d", in.QuestionID, in.RoomID)
	}

	student, err := s.store.GetStudent(ctx, in.StudentID)
	if err != nil {
		return zero, err
	}
	if student == nil {
		return zero, apperr.Errorf(apperr.NotFound, "ученик %d не найден", in.StudentID)
	}

	raterIn, err := s.store.IsAssigned(ctx, in.RoomID, raterID)
	if err != nil {
		return zero, err
	}
	if !raterIn {
		return zero, apperr.E(apperr.PermissionDenied, "оценщик не состоит в этой комнате")
	}

	studentIn, err := s.store.IsAssigned(ctx, in.RoomID, in.StudentID)
	if err != nil {
		return zero, err
	}
	if !studentIn {
		return zero, apperr.E(apperr.Validation, "оцениваемый ученик не состоит в этой комнате")
	}

	if s.strictRanks {
		taken, err := s.store.RankTakenByOther(ctx, in.QuestionID, raterID, in.Rank, in.StudentID)
		if err != nil {
			return zero, err
		}
		if taken {
			return zero, apperr.Errorf(apperr.Validation, "rank %d уже отдан другому ученику в этом вопросе", in.Rank)
		}
	}

	r, err := s.store.UpsertRating(ctx, in.RoomID, in.QuestionID, in.StudentID, raterID, in.Rank)
	if err != nil {
		return zero, err
	}

	if s.cache != nil {
		s.cache.InvalidateRoom(ctx, in.RoomID)
	}
	return r, nil
}

// Leaderboard — чтение свода. Пустая комната — пустой срез,
// отсутствующая — NotFound: вызывающий различает эти случаи.
func (s *Service) Leaderboard(ctx context.Context, roomID int64, questionID *int64) ([]models.LeaderboardRow, error) {
	room, err := s.store.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, apperr.Errorf(apperr.NotFound, "комната %d не найдена", roomID)
	}
	if questionID != nil {
		q, err := s.store.GetQuestion(ctx, *questionID)
		if err != nil {
			return nil, err
		}
		if q == nil || q.RoomID != roomID {
			return nil, apperr.Errorf(apperr.NotFound, "вопрос %d не найден в комнате %d", *questionID, roomID)
		}
	}

	var cacheKey string
	if s.cache != nil {
		rows, key, ok := s.cache.Get(ctx, roomID, questionID)
		if ok {
			return rows, nil
		}
		cacheKey = key
	}

	rows, err := s.store.Leaderboard(ctx, roomID, questionID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && cacheKey != "" {
		s.cache.Set(ctx, cacheKey, rows)
	}
	return rows, nil
}

// ReceivedRatings — полученные учеником оценки (без оценщиков).
func (s *Service) ReceivedRatings(ctx context.Context, roomID, studentID int64) ([]models.Rating, error) {
	room, err := s.store.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, apperr.Errorf(apperr.NotFound, "комната %d не найдена", roomID)
	}
	student, err := s.store.GetStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperr.Errorf(apperr.NotFound, "ученик %d не найден", studentID)
	}
	return s.store.ListReceivedRatings(ctx, roomID, studentID)
}
