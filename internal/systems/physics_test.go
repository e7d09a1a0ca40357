package systems

import (
	"maze-core/internal/domain"
	"testing"
)

func TestHasLineOfSight(t *testing.T) {
	// Карта 5x5
	// . . . . .
	// . . # . .  (2,1) - стена
	// . # # # .  (1,2), (2,2), (3,2) - стена
	// . . # . .  (2,3) - стена
	// . . . . .
	world := createTestWorld(5, 5,
		domain.Tile{X: 2, Y: 1},
		domain.Tile{X: 1, Y: 2}, domain.Tile{X: 2, Y: 2}, domain.Tile{X: 3, Y: 2},
		domain.Tile{X: 2, Y: 3},
	)

	tests := []struct {
		name     string
		p1, p2   domain.Tile
		expected bool
	}{
		{"same point", domain.Tile{X: 0, Y: 0}, domain.Tile{X: 0, Y: 0}, true},
		{"clear row", domain.Tile{X: 0, Y: 0}, domain.Tile{X: 4, Y: 0}, true},
		{"blocked through center", domain.Tile{X: 0, Y: 2}, domain.Tile{X: 4, Y: 2}, false},
		{"blocked diagonal", domain.Tile{X: 0, Y: 0}, domain.Tile{X: 4, Y: 4}, false},
		{"clear column on edge", domain.Tile{X: 4, Y: 0}, domain.Tile{X: 4, Y: 4}, true},
		{"target is wall itself", domain.Tile{X: 2, Y: 0}, domain.Tile{X: 2, Y: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasLineOfSight(world, tt.p1, tt.p2); got != tt.expected {
				t.Errorf("HasLineOfSight(%v, %v) = %v, want %v", tt.p1, tt.p2, got, tt.expected)
			}
		})
	}
}
