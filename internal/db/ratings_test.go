//go:build testutil
// +build testutil

package db_test

import (
	"context"
	"sync"
	"testing"

	"github.com/Spok95/peerrank/internal/db"
	"github.com/Spok95/peerrank/internal/models"
	"github.com/Spok95/peerrank/internal/testutil/testdb"
)

type fixture struct {
	store    *db.Store
	room     models.Room
	question models.Question
	students []models.Student
}

// setupLedger — комната, вопрос и n учеников с привязкой.
func setupLedger(t *testing.T, h *testdb.DBHandle, n int) fixture {
	t.Helper()
	ctx := context.Background()
	store := db.New(h.DB)

	room, err := store.CreateRoom(ctx, "9А", "основной", "А")
	if err != nil {
		t.Fatal(err)
	}
	q, err := store.CreateQuestion(ctx, room.ID, "Кого возьмёшь в команду?")
	if err != nil {
		t.Fatal(err)
	}
	students := make([]models.Student, 0, n)
	for i := 0; i < n; i++ {
		st, err := store.CreateStudent(ctx,
			string(rune('A'+i))+"-001",
			string(rune('a'+i))+"@school.test",
			"Ученик "+string(rune('А'+i)),
			true,
		)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := store.AssignStudent(ctx, room.ID, st.ID); err != nil {
			t.Fatal(err)
		}
		students = append(students, st)
	}
	return fixture{store: store, room: room, question: q, students: students}
}

func countRatings(t *testing.T, fx fixture) int {
	t.Helper()
	var n int
	if err := fx.store.DB.QueryRow(`SELECT count(*) FROM ratings`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	return n
}

func TestUpsertRating_OverwriteInPlace(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	fx := setupLedger(t, h, 2)
	ctx := context.Background()
	rater, rated := fx.students[0], fx.students[1]

	first, err := fx.store.UpsertRating(ctx, fx.room.ID, fx.question.ID, rated.ID, rater.ID, 3)
	if err != nil {
		t.Fatal(err)
	}
	second, err := fx.store.UpsertRating(ctx, fx.room.ID, fx.question.ID, rated.ID, rater.ID, 1)
	if err != nil {
		t.Fatal(err)
	}

	if first.ID != second.ID {
		t.Fatalf("повторная отправка создала новую строку: id %d и %d", first.ID, second.ID)
	}
	if second.Rank != 1 {
		t.Fatalf("ожидали rank=1, получили %d", second.Rank)
	}
	if n := countRatings(t, fx); n != 1 {
		t.Fatalf("в леджере %d строк, ожидали 1", n)
	}
	if !second.UpdatedAt.After(second.CreatedAt) {
		t.Fatal("updated_at должен сдвинуться при перезаписи")
	}
}

func TestUpsertRating_Parallel(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	fx := setupLedger(t, h, 2)
	ctx := context.Background()
	rater, rated := fx.students[0], fx.students[1]

	wg := sync.WaitGroup{}
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(rank int) {
			defer wg.Done()
			_, _ = fx.store.UpsertRating(ctx, fx.room.ID, fx.question.ID, rated.ID, rater.ID, rank)
		}(i%5 + 1)
		go func(rank int) {
			defer wg.Done()
			_, _ = fx.store.UpsertRating(ctx, fx.room.ID, fx.question.ID, rated.ID, rater.ID, rank)
		}(i%3 + 1)
	}
	wg.Wait()

	// гонка по одной тройке схлопывается в одну живую строку
	if n := countRatings(t, fx); n != 1 {
		t.Fatalf("после гонки в леджере %d строк, ожидали 1", n)
	}
}

func TestAssignStudent_MovesAssignment(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	fx := setupLedger(t, h, 1)
	ctx := context.Background()
	st := fx.students[0]

	other, err := fx.store.CreateRoom(ctx, "9Б", "основной", "Б")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fx.store.AssignStudent(ctx, other.ID, st.ID); err != nil {
		t.Fatal(err)
	}

	inOld, err := fx.store.IsAssigned(ctx, fx.room.ID, st.ID)
	if err != nil {
		t.Fatal(err)
	}
	inNew, err := fx.store.IsAssigned(ctx, other.ID, st.ID)
	if err != nil {
		t.Fatal(err)
	}
	if inOld || !inNew {
		t.Fatalf("привязка должна переехать: old=%v new=%v", inOld, inNew)
	}
}
