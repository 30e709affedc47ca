package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Spok95/peerrank/internal/apperr"
)

func TestKindMatching(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		marker *apperr.Error
		kind   apperr.Kind
	}{
		{"validation", apperr.E(apperr.Validation, "rank должен быть не меньше 1"), apperr.ErrValidation, apperr.Validation},
		{"not_found", apperr.Errorf(apperr.NotFound, "комната %d не найдена", 7), apperr.ErrNotFound, apperr.NotFound},
		{"permission_denied", apperr.E(apperr.PermissionDenied, "оценщик не состоит в комнате"), apperr.ErrPermissionDenied, apperr.PermissionDenied},
		{"conflict", apperr.Wrap(apperr.Conflict, "ученик уже существует", errors.New("duplicate key")), apperr.ErrConflict, apperr.Conflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !errors.Is(tc.err, tc.marker) {
				t.Fatalf("ошибка не совпала со своим маркером: %v", tc.err)
			}
			if got := apperr.KindOf(tc.err); got != tc.kind {
				t.Fatalf("ожидали kind=%s, получили %s", tc.kind, got)
			}
			// чужой класс не совпадает
			for _, other := range cases {
				if other.kind != tc.kind && errors.Is(tc.err, other.marker) {
					t.Fatalf("%s совпал с маркером %s", tc.kind, other.kind)
				}
			}
		})
	}
}

func TestWrappingKeepsKind(t *testing.T) {
	inner := errors.New("duplicate key value violates unique constraint")
	err := apperr.Wrap(apperr.Conflict, "гонка при создании", inner)

	if !errors.Is(err, inner) {
		t.Fatal("Wrap должен сохранять исходную ошибку для errors.Is")
	}

	// обёртка через fmt.Errorf не теряет класс
	outer := fmt.Errorf("createStudent: %w", err)
	if apperr.KindOf(outer) != apperr.Conflict {
		t.Fatalf("kind потерялся при обёртке: %v", outer)
	}
	if !errors.Is(outer, apperr.ErrConflict) {
		t.Fatal("маркер должен находиться сквозь fmt.Errorf")
	}
}

func TestKindOf_UnknownIsInternal(t *testing.T) {
	if got := apperr.KindOf(errors.New("boom")); got != apperr.Internal {
		t.Fatalf("посторонняя ошибка должна быть internal, получили %s", got)
	}
}
