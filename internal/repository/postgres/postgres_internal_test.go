package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWhereBuilder(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		w := &whereBuilder{}
		assert.Equal(t, "", w.String())
		assert.Empty(t, w.args)
	})

	t.Run("Placeholders follow argument order", func(t *testing.T) {
		w := &whereBuilder{}
		w.where("status = %s", "published")
		w.where("(title ILIKE %s OR description ILIKE %s)", "%chess%", "%chess%")
		suffix := w.page(2, 10)

		assert.Equal(t, " WHERE status = $1 AND (title ILIKE $2 OR description ILIKE $3)", w.String())
		assert.Equal(t, " LIMIT $4 OFFSET $5", suffix)
		assert.Equal(t, []any{"published", "%chess%", "%chess%", int32(10), int32(10)}, w.args)
	})
}

func TestPageBounds(t *testing.T) {
	limit, offset := pageBounds(0, 0)
	assert.Equal(t, int32(20), limit)
	assert.Equal(t, int32(0), offset)

	limit, offset = pageBounds(3, 500)
	assert.Equal(t, int32(maxPageSize), limit)
	assert.Equal(t, int32(200), offset)
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, `%50\% off\_now%`, likePattern("50% off_now"))
}
