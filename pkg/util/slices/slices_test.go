package slices

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestUniqueAdd(t *testing.T) {
	for _, tc := range []struct {
		name         string
		s            []string
		e            string
		wantS        []string
		wantModified bool
	}{
		{
			name:         "Add unique element",
			s:            []string{},
			e:            "nightly_linux_repeated",
			wantS:        []string{"nightly_linux_repeated"},
			wantModified: true,
		},
		{
			name:         "Add duplicated element",
			s:            []string{"nightly_linux_repeated"},
			e:            "nightly_linux_repeated",
			wantS:        []string{"nightly_linux_repeated"},
			wantModified: false,
		},
		{
			name:         "Add to nil slice",
			e:            "nightly_win_rep",
			wantS:        []string{"nightly_win_rep"},
			wantModified: true,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			gotS, gotModified := UniqueAdd(tc.s, tc.e)

			if gotModified != tc.wantModified {
				t.Errorf("want %t got %t", tc.wantModified, gotModified)
			}

			if diff := cmp.Diff(tc.wantS, gotS); diff != "" {
				t.Errorf("unexpected slice:\n%s", diff)
			}
		})
	}
}

func TestDedupe(t *testing.T) {
	for _, tc := range []struct {
		name  string
		s     []int
		wantS []int
	}{
		{
			name:  "Nil slice",
			wantS: []int{},
		},
		{
			name:  "No duplicates",
			s:     []int{3, 1, 2},
			wantS: []int{3, 1, 2},
		},
		{
			name:  "Keeps first appearance order",
			s:     []int{3, 1, 3, 2, 1},
			wantS: []int{3, 1, 2},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			input := append([]int(nil), tc.s...)
			gotS := Dedupe(tc.s)

			if diff := cmp.Diff(tc.wantS, gotS); diff != "" {
				t.Errorf("unexpected slice:\n%s", diff)
			}
			if diff := cmp.Diff(input, tc.s); diff != "" {
				t.Errorf("input was modified:\n%s", diff)
			}
		})
	}
}
