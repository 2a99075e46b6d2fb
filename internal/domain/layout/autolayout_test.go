package layout

import (
	"testing"

	"shelter-map/internal/domain/kennels"
)

func TestDefaultPosition_FirstSlotAtMargin(t *testing.T) {
	cfg := DefaultConfig()

	g := cfg.DefaultPosition(kennels.Kennel{}, 0)
	want := BoxGeometry{X: cfg.GridMargin, Y: cfg.GridMargin, W: 160, H: 120}
	if g != want {
		t.Fatalf("DefaultPosition(idx 0) = %+v, want %+v", g, want)
	}
}

func TestDefaultPosition_GridIsDeterministicAndDisjoint(t *testing.T) {
	cfg := DefaultConfig()

	const n = 17 // más de 4 filas, columnas no alineadas
	seen := make([]BoxGeometry, 0, n)
	for i := 0; i < n; i++ {
		g := cfg.DefaultPosition(kennels.Kennel{}, i)

		// determinístico
		if again := cfg.DefaultPosition(kennels.Kennel{}, i); again != g {
			t.Fatalf("idx %d: posición no determinística: %+v vs %+v", i, g, again)
		}

		// sin solapes contra todos los anteriores
		for j, prev := range seen {
			if overlaps(g, prev) {
				t.Fatalf("idx %d solapa con idx %d: %+v vs %+v", i, j, g, prev)
			}
		}
		seen = append(seen, g)
	}

	// columna y fila según índice
	g5 := cfg.DefaultPosition(kennels.Kennel{}, 5)
	slotW := cfg.ToPixels(cfg.DefaultLengthCm)
	slotH := cfg.ToPixels(cfg.DefaultWidthCm)
	wantX := cfg.GridMargin + 1*(slotW+cfg.GridGap) // col 1
	wantY := cfg.GridMargin + 1*(slotH+cfg.GridGap) // row 1
	if g5.X != wantX || g5.Y != wantY {
		t.Fatalf("idx 5 en (%d,%d), want (%d,%d)", g5.X, g5.Y, wantX, wantY)
	}
}

func TestDefaultPosition_StoredGeometryWins(t *testing.T) {
	cfg := DefaultConfig()

	k := kennels.Kennel{MapX: 431, MapY: 17, MapW: 90, MapH: 75}
	want := BoxGeometry{X: 431, Y: 17, W: 90, H: 75}

	// el índice no importa cuando hay geometría persistida
	for _, idx := range []int{0, 3, 11} {
		if g := cfg.DefaultPosition(k, idx); g != want {
			t.Fatalf("idx %d: geometría persistida alterada: %+v, want %+v", idx, g, want)
		}
	}
}

func overlaps(a, b BoxGeometry) bool {
	return a.X < b.X+b.W && b.X < a.X+a.W && a.Y < b.Y+b.H && b.Y < a.Y+a.H
}
