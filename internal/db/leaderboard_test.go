//go:build testutil
// +build testutil

package db_test

import (
	"context"
	"math"
	"testing"

	"github.com/Spok95/peerrank/internal/testutil/testdb"
)

func TestLeaderboard_SumAndAverage(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	// 4 ученика: трое оценивают одного
	fx := setupLedger(t, h, 4)
	ctx := context.Background()
	rated := fx.students[0]
	for i, rank := range []int{1, 2, 3} {
		rater := fx.students[i+1]
		if _, err := fx.store.UpsertRating(ctx, fx.room.ID, fx.question.ID, rated.ID, rater.ID, rank); err != nil {
			t.Fatal(err)
		}
	}

	rows, err := fx.store.Leaderboard(ctx, fx.room.ID, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("ожидали одну строку свода, получили %d", len(rows))
	}
	got := rows[0]
	if got.StudentID != rated.ID || got.TotalRating != 6 || got.RatingsCount != 3 {
		t.Fatalf("сумма/количество: %+v", got)
	}
	if math.Abs(got.AverageRating-2.0) > 1e-9 {
		t.Fatalf("ожидали среднее 2.0, получили %f", got.AverageRating)
	}
	if got.Position != 1 {
		t.Fatalf("ожидали позицию 1, получили %d", got.Position)
	}
}

func TestLeaderboard_OrderingAndPositions(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	fx := setupLedger(t, h, 4)
	ctx := context.Background()
	a, b := fx.students[0], fx.students[1]
	r1, r2 := fx.students[2], fx.students[3]

	// A: ранги 1 и 2 (среднее 1.5), B: ранги 2 и 2 (среднее 2.0)
	for _, s := range []struct {
		rater, rated int64
		rank         int
	}{
		{r1.ID, a.ID, 1}, {r2.ID, a.ID, 2},
		{r1.ID, b.ID, 2}, {r2.ID, b.ID, 2},
	} {
		if _, err := fx.store.UpsertRating(ctx, fx.room.ID, fx.question.ID, s.rated, s.rater, s.rank); err != nil {
			t.Fatal(err)
		}
	}

	rows, err := fx.store.Leaderboard(ctx, fx.room.ID, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("ожидали 2 строки, получили %d", len(rows))
	}
	// лучший средний ранг (меньше) — выше
	if rows[0].StudentID != a.ID || rows[0].Position != 1 {
		t.Fatalf("первым должен идти A: %+v", rows[0])
	}
	if rows[1].StudentID != b.ID || rows[1].Position != 2 {
		t.Fatalf("вторым должен идти B: %+v", rows[1])
	}
	// оценщики без полученных оценок в свод не попадают
	for _, row := range rows {
		if row.StudentID == r1.ID || row.StudentID == r2.ID {
			t.Fatalf("ученик без оценок попал в свод: %+v", row)
		}
	}
}

func TestLeaderboard_TieBreakDeterministic(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	fx := setupLedger(t, h, 4)
	ctx := context.Background()
	s0, s1, s2, s3 := fx.students[0], fx.students[1], fx.students[2], fx.students[3]

	// все трое со средним 2.0:
	// s0 — ранги [1,3], s1 — ранги [2,2] (равное и среднее, и количество),
	// s2 — один ранг [2] (равное среднее, оценок меньше)
	for _, s := range []struct {
		rater, rated int64
		rank         int
	}{
		{s2.ID, s0.ID, 1}, {s3.ID, s0.ID, 3},
		{s2.ID, s1.ID, 2}, {s3.ID, s1.ID, 2},
		{s0.ID, s2.ID, 2},
	} {
		if _, err := fx.store.UpsertRating(ctx, fx.room.ID, fx.question.ID, s.rated, s.rater, s.rank); err != nil {
			t.Fatal(err)
		}
	}

	rows, err := fx.store.Leaderboard(ctx, fx.room.ID, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("ожидали 3 строки, получили %d", len(rows))
	}
	// при равном среднем: больше оценок — выше; затем меньший student_id
	wantOrder := []int64{s0.ID, s1.ID, s2.ID}
	for i, row := range rows {
		if row.StudentID != wantOrder[i] {
			t.Fatalf("позиция %d: ожидали ученика %d, получили %d (%+v)", i+1, wantOrder[i], row.StudentID, rows)
		}
		if row.Position != i+1 {
			t.Fatalf("ожидали позицию %d, получили %d", i+1, row.Position)
		}
	}
	if rows[0].RatingsCount != 2 || rows[1].RatingsCount != 2 || rows[2].RatingsCount != 1 {
		t.Fatalf("количество оценок: %+v", rows)
	}

	// повторный запрос по тому же состоянию — тот же порядок
	again, err := fx.store.Leaderboard(ctx, fx.room.ID, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := range rows {
		if again[i].StudentID != rows[i].StudentID || again[i].Position != rows[i].Position {
			t.Fatalf("порядок нестабилен между запусками: %+v vs %+v", rows, again)
		}
	}
}

func TestLeaderboard_QuestionScope(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	fx := setupLedger(t, h, 2)
	ctx := context.Background()
	rater, rated := fx.students[0], fx.students[1]

	q2, err := fx.store.CreateQuestion(ctx, fx.room.ID, "А с кем в поход?")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fx.store.UpsertRating(ctx, fx.room.ID, fx.question.ID, rated.ID, rater.ID, 1); err != nil {
		t.Fatal(err)
	}

	// фильтр по другому вопросу не видит оценку из первого
	rows, err := fx.store.Leaderboard(ctx, fx.room.ID, &q2.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Fatalf("оценка из чужого вопроса попала в свод: %+v", rows)
	}

	rows, err = fx.store.Leaderboard(ctx, fx.room.ID, &fx.question.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("ожидали 1 строку по своему вопросу, получили %d", len(rows))
	}

	// без фильтра — агрегат по всем вопросам комнаты
	if _, err := fx.store.UpsertRating(ctx, fx.room.ID, q2.ID, rated.ID, rater.ID, 3); err != nil {
		t.Fatal(err)
	}
	rows, err = fx.store.Leaderboard(ctx, fx.room.ID, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].TotalRating != 4 || rows[0].RatingsCount != 2 {
		t.Fatalf("агрегат по комнате: %+v", rows)
	}
}

func TestCascade_DeleteQuestionRemovesRatings(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	fx := setupLedger(t, h, 2)
	ctx := context.Background()
	rater, rated := fx.students[0], fx.students[1]

	if _, err := fx.store.UpsertRating(ctx, fx.room.ID, fx.question.ID, rated.ID, rater.ID, 2); err != nil {
		t.Fatal(err)
	}
	deleted, err := fx.store.DeleteQuestion(ctx, fx.question.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !deleted {
		t.Fatal("вопрос не удалился")
	}

	if n := countRatings(t, fx); n != 0 {
		t.Fatalf("оценки удалённого вопроса остались: %d", n)
	}
	rows, err := fx.store.Leaderboard(ctx, fx.room.ID, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Fatalf("свод после каскада должен быть пуст: %+v", rows)
	}
}

func TestCascade_DeleteRoomRemovesEverything(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	fx := setupLedger(t, h, 2)
	ctx := context.Background()
	rater, rated := fx.students[0], fx.students[1]

	if _, err := fx.store.UpsertRating(ctx, fx.room.ID, fx.question.ID, rated.ID, rater.ID, 2); err != nil {
		t.Fatal(err)
	}
	if _, err := fx.store.DeleteRoom(ctx, fx.room.ID); err != nil {
		t.Fatal(err)
	}

	if n := countRatings(t, fx); n != 0 {
		t.Fatalf("оценки удалённой комнаты остались: %d", n)
	}
	qs, err := fx.store.ListQuestionsByRoom(ctx, fx.room.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(qs) != 0 {
		t.Fatalf("вопросы удалённой комнаты остались: %d", len(qs))
	}
	// ученики живут отдельно от комнаты
	st, err := fx.store.GetStudent(ctx, rated.ID)
	if err != nil {
		t.Fatal(err)
	}
	if st == nil {
		t.Fatal("ученик не должен удаляться вместе с комнатой")
	}
}
