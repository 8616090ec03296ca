package regs

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounterAddAccumulatesCountAndScore(t *testing.T) {
	c := NewCounter(0, true)
	c.Add(10)
	c.Add(5)

	count, score := c.GetCountScore()
	assert.Equal(t, 2, count)
	assert.Equal(t, 15, score)
}

func TestCounterOffIsNoop(t *testing.T) {
	c := NewCounter(0, false)
	c.Add(10)
	assert.Zero(t, c.GetCount())
	assert.Zero(t, c.GetScore())
}

func TestDecounterCheckIn(t *testing.T) {
	d := NewDecounter(4, true)
	d.CheckIn("a")
	d.CheckIn("a")
	d.CheckIn("b")

	assert.Equal(t, 2, d.KeysCount())
	assert.Equal(t, 3, d.TotalCount())
	assert.Equal(t, map[interface{}]int{"a": 2, "b": 1}, d.GetScores())
}

type lesserKey string

func (k lesserKey) Less(other interface{}) bool {
	return k < other.(lesserKey)
}

func TestCounterPairsSortByKey(t *testing.T) {
	d := NewDecounter(4, true)
	d.CheckIn(lesserKey("b"))
	d.CheckIn(lesserKey("a"))
	d.CheckIn(lesserKey("a"))

	cp := d.GetCounterPairs()
	sort.Sort(CounterPairsByKey(cp))
	assert.Equal(t, []CounterPair{{lesserKey("a"), 2}, {lesserKey("b"), 1}}, cp)
}
