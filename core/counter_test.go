package core

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInBand(t *testing.T) {
	assert.False(t, InBand(0))
	assert.False(t, InBand(2), "lower bound is exclusive")
	assert.True(t, InBand(2.01))
	assert.True(t, InBand(8))
	assert.True(t, InBand(14.99))
	assert.False(t, InBand(15), "upper bound is exclusive")
	assert.False(t, InBand(20))
}

func TestCounterDebounce(t *testing.T) {
	ranger := newScriptedRanger()
	var tx bytes.Buffer
	c := NewMarbleCounter(ranger, &tx)

	// Marble arrives at the entry sensor
	ranger.set(SensorEntry, 8)
	c.SamplePass(1000)
	assert.Equal(t, Counts{Entered: 1, Present: 1}, c.Counts())
	assert.True(t, c.Detector(SensorEntry).Triggered)

	// Still in band on the next passes: counted once
	c.SamplePass(1100)
	c.SamplePass(1200)
	assert.Equal(t, uint32(1), c.Counts().Entered)

	// Spurious out-of-band blip then back in band within the cooldown
	ranger.set(SensorEntry, 19)
	c.SamplePass(1300)
	assert.False(t, c.Detector(SensorEntry).Triggered)
	ranger.set(SensorEntry, 8)
	c.SamplePass(1400)
	assert.Equal(t, uint32(1), c.Counts().Entered, "second reading inside the cooldown is ignored")

	// Leaves the band, cooldown elapses, next marble counts
	ranger.set(SensorEntry, -1)
	c.SamplePass(1500)
	ranger.set(SensorEntry, 10)
	c.SamplePass(1501)
	assert.Equal(t, uint32(2), c.Counts().Entered)
	assert.Equal(t, uint32(1501), c.Detector(SensorEntry).LastTrigger)

	assert.Equal(t, "#IN,1,0,1\n#IN,2,0,2\n", tx.String())
}

func TestCounterCooldownIsStrict(t *testing.T) {
	ranger := newScriptedRanger()
	c := NewMarbleCounter(ranger, nil)

	ranger.set(SensorEntry, 8)
	c.SamplePass(1000)
	ranger.set(SensorEntry, 30)
	c.SamplePass(1100)
	ranger.set(SensorEntry, 8)
	c.SamplePass(1500)
	assert.Equal(t, uint32(1), c.Counts().Entered, "exactly the cooldown is not enough")
	c.SamplePass(1600)
	assert.Equal(t, uint32(2), c.Counts().Entered, "first pass past the cooldown counts")
}

func TestCounterBootCooldown(t *testing.T) {
	ranger := newScriptedRanger()
	c := NewMarbleCounter(ranger, nil)

	ranger.set(SensorEntry, 8)
	c.SamplePass(100)
	assert.Zero(t, c.Counts().Entered, "nothing counts in the first cooldown after boot")
	assert.False(t, c.Detector(SensorEntry).Triggered)
}

func TestCounterExitFloorsPresent(t *testing.T) {
	ranger := newScriptedRanger()
	var tx bytes.Buffer
	c := NewMarbleCounter(ranger, &tx)

	ranger.set(SensorExit, 5)
	c.SamplePass(1000)
	assert.Equal(t, Counts{Exited: 1, Present: 0}, c.Counts())

	ranger.set(SensorExit, -1)
	ranger.set(SensorEntry, 5)
	c.SamplePass(2000)
	ranger.set(SensorEntry, -1)
	ranger.set(SensorExit, 5)
	c.SamplePass(3000)
	assert.Equal(t, Counts{Entered: 1, Exited: 2, Present: 0}, c.Counts())

	assert.Equal(t, "#OUT,0,1,0\n#IN,1,1,1\n#OUT,1,2,0\n", tx.String())
}

func TestCounterSensorsIndependent(t *testing.T) {
	ranger := newScriptedRanger()
	c := NewMarbleCounter(ranger, nil)

	ranger.set(SensorEntry, 6)
	ranger.set(SensorExit, 7)
	c.SamplePass(1000)
	assert.Equal(t, Counts{Entered: 1, Exited: 1, Present: 0}, c.Counts())
	assert.Equal(t, 2, ranger.calls, "one measurement per sensor per pass")
}
