package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgress_ToggleIsInvolution(t *testing.T) {
	sets := [][]int{
		{},
		{1, 2, 3},
		{5, 9},
	}
	for _, watched := range sets {
		for _, ep := range []int{1, 4, 9, 30} {
			p := Progress{Total: 12, Watched: watched}
			once := p.Toggle(ep)
			twice := Progress{Total: 12, Watched: once}.Toggle(ep)
			assert.Equal(t, watched, twice, "toggle(%d) twice on %v", ep, watched)
		}
	}
}

func TestProgress_Toggle(t *testing.T) {
	p := Progress{Total: 12, Watched: []int{3, 1}}

	assert.Equal(t, []int{1, 2, 3}, p.Toggle(2))
	assert.Equal(t, []int{3}, p.Toggle(1))
	assert.Equal(t, []int{3, 1}, p.Watched, "toggle must not mutate the receiver")
}

func TestProgress_ToggleDoesNotValidateBounds(t *testing.T) {
	p := Progress{Total: 3}
	assert.Equal(t, []int{7}, p.Toggle(7))
}

func TestProgress_MarkUpTo(t *testing.T) {
	p := Progress{Total: 10, Watched: []int{9}}

	got, ok := p.MarkUpTo(4)
	assert.True(t, ok)
	assert.Equal(t, []int{1, 2, 3, 4}, got)

	got, ok = p.MarkUpTo(50)
	assert.True(t, ok)
	assert.Equal(t, episodeRange(10), got)
}

func TestProgress_MarkUpToInvalidIsNoop(t *testing.T) {
	p := Progress{Total: 10, Watched: []int{2, 5}}

	for _, n := range []int{0, -1, -100} {
		got, ok := p.MarkUpTo(n)
		assert.False(t, ok)
		assert.Equal(t, []int{2, 5}, got)
	}

	for _, in := range []string{"abc", "", "  ", "-1", "0", "3.5", "1e3"} {
		got, ok := p.MarkUpToInput(in)
		assert.False(t, ok, in)
		assert.Equal(t, []int{2, 5}, got, in)
	}
}

func TestProgress_MarkUpToInput(t *testing.T) {
	p := Progress{Total: 5}
	got, ok := p.MarkUpToInput(" 3 ")
	assert.True(t, ok)
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestProgress_MarkAllEqualsMarkUpToTotal(t *testing.T) {
	for _, total := range []int{1, 12, 24, 25, 366} {
		p := Progress{Total: total, Watched: []int{1}}
		upTo, ok := p.MarkUpTo(total)
		assert.True(t, ok)
		assert.Equal(t, p.MarkAll(), upTo)
	}
}

func TestProgress_ClearAllEqualsInvalidMarkUpToOnCleared(t *testing.T) {
	p := Progress{Total: 12, Watched: []int{1, 2, 3}}
	cleared := p.ClearAll()
	assert.NotNil(t, cleared)
	assert.Empty(t, cleared)

	again, ok := Progress{Total: 12, Watched: cleared}.MarkUpTo(0)
	assert.False(t, ok)
	assert.Equal(t, cleared, again)
}

func TestProgress_Prune(t *testing.T) {
	p := Progress{Total: 5, Watched: []int{7, 1, 5, 6, 0, 3}}
	assert.Equal(t, []int{1, 3, 5}, p.Prune())
}

func TestProgress_Collapsed(t *testing.T) {
	assert.False(t, Progress{Total: 12}.Collapsed())
	assert.False(t, Progress{Total: CollapseThreshold}.Collapsed())
	assert.True(t, Progress{Total: CollapseThreshold + 1}.Collapsed())
	assert.True(t, Progress{Total: 220}.Collapsed())
}

func TestProgress_Has(t *testing.T) {
	p := Progress{Total: 5, Watched: []int{2, 4}}
	assert.True(t, p.Has(4))
	assert.False(t, p.Has(3))
}
