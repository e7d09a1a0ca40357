package systems

import (
	"maze-core/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNearestEnemy(t *testing.T) {
	near := newTestEnemy(2, 0)
	far := newTestEnemy(6, 0)
	dead := newTestEnemy(1, 0)
	dead.Health.TakeDamage(100)

	enemies := []*domain.Enemy{far, dead, near}

	assert.Same(t, near, NearestEnemy(domain.Vec2{}, enemies, 10))
	assert.Nil(t, NearestEnemy(domain.Vec2{}, enemies, 1))

	within := EnemiesWithin(domain.Vec2{}, enemies, 5)
	assert.Equal(t, []*domain.Enemy{near}, within)
}
