package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hbaltazar/go-match-engine/config"
	"github.com/hbaltazar/go-match-engine/geometry"
	"github.com/hbaltazar/go-match-engine/internal/extraction"
	"github.com/hbaltazar/go-match-engine/model"
	"github.com/hbaltazar/go-match-engine/store"
)

func cubeRecord(id string, origin float64) model.ElementRecord {
	return model.ElementRecord{
		Element: model.Element{ID: id},
		Primitives: []geometry.Box{
			*geometry.NewBox(
				[3]float64{origin, origin, origin},
				[3]float64{origin + 1, origin + 1, origin + 1},
			),
		},
	}
}

func TestBuild(t *testing.T) {
	es := store.NewElementStore()
	require.NoError(t, es.Add([]model.ElementRecord{
		cubeRecord("a", 0),
		{Element: model.Element{ID: "no-geometry"}},
		cubeRecord("b", 5),
	}))

	provider, err := extraction.NewProvider(es, config.GeometryOptions{})
	require.NoError(t, err)

	c := Build(provider, es.Elements())
	defer c.Release()

	assert.Equal(t, 2, c.Size(), "element without geometry must be excluded")

	entries := c.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].Element.ID, "entries keep candidate input order")
	assert.Equal(t, "b", entries[1].Element.ID)
}

func TestRelease(t *testing.T) {
	es := store.NewElementStore()
	require.NoError(t, es.Add([]model.ElementRecord{cubeRecord("a", 0)}))

	provider, err := extraction.NewProvider(es, config.GeometryOptions{})
	require.NoError(t, err)

	c := Build(provider, es.Elements())
	assert.Equal(t, 1, c.Size())

	c.Release()
	assert.Equal(t, 0, c.Size())
	assert.Empty(t, c.Entries())

	// Release must be idempotent.
	c.Release()
}
