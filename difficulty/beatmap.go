// Package difficulty models beatmaps and computes their difficulty
// attributes, with a memoizing cache keyed by map, mods and ruleset flavor.
package difficulty

import (
	"errors"
	"fmt"
	"math"
)

// ObjectKind discriminates hit object shapes.
type ObjectKind int

const (
	Circle ObjectKind = iota
	Slider
	Spinner
)

// HitObject is one timed object of a beatmap. Times are milliseconds from
// map start; Duration is zero for circles.
type HitObject struct {
	StartTime float64
	Kind      ObjectKind
	Duration  float64
}

// Beatmap is the parsed map data the calculation runs on.
type Beatmap struct {
	MapID    int
	Checksum string
	AR       float64
	CS       float64
	OD       float64
	HP       float64
	BPM      float64
	Objects  []HitObject
}

// Suspicion thresholds. Maps past these are assumed to be malicious uploads
// whose calculation would burn unbounded cpu.
const (
	maxObjectCount = 500_000
	maxLengthMS    = 24 * 60 * 60 * 1000
)

// ErrSuspicious marks maps rejected by CheckSuspicion.
var ErrSuspicious = errors.New("difficulty: map too suspicious")

// CheckSuspicion rejects maps with absurd object counts or lengths.
func (b *Beatmap) CheckSuspicion() error {
	if n := len(b.Objects); n > maxObjectCount {
		return fmt.Errorf("%w: %d objects", ErrSuspicious, n)
	}

	if n := len(b.Objects); n > 0 {
		last := b.Objects[n-1]
		if length := last.StartTime + last.Duration; length > maxLengthMS {
			return fmt.Errorf("%w: %.0fms long", ErrSuspicious, length)
		}
	}

	return nil
}

// Attributes is the output of a difficulty calculation.
type Attributes struct {
	Stars       float64
	MaxCombo    int
	AimStrain   float64
	SpeedStrain float64
}

// strainDecay is the per-second decay base of accumulated strain.
const strainDecay = 0.3

// Calculate computes attributes for the map under the given mods. The lazer
// flavor counts slider tails toward max combo; the stable flavor does not.
// The computation is deterministic: equal inputs always yield equal outputs.
func Calculate(b *Beatmap, mods Mods, lazer bool) Attributes {
	rate := mods.ClockRate()

	var (
		aim, speed float64
		prevTime   float64
		combo      int
	)

	for i, obj := range b.Objects {
		switch obj.Kind {
		case Circle:
			combo++
		case Slider:
			combo++
			if lazer {
				combo++
			}
		case Spinner:
			combo++
		}

		if i == 0 {
			prevTime = obj.StartTime
			continue
		}

		delta := (obj.StartTime - prevTime) / rate
		if delta < 25 {
			delta = 25
		}

		decay := math.Pow(strainDecay, delta/1000)
		aim = aim*decay + 80/delta
		speed = speed*decay + 50/delta
		prevTime = obj.StartTime
	}

	difficulty := (b.AR + b.OD + b.CS) / 3

	if mods.Contains("HR") {
		difficulty *= 1.4
	}

	if mods.Contains("EZ") {
		difficulty *= 0.5
	}

	stars := math.Sqrt(aim*aim+speed*speed)*0.08 + difficulty*0.4*math.Sqrt(rate)

	return Attributes{
		Stars:       stars,
		MaxCombo:    combo,
		AimStrain:   aim,
		SpeedStrain: speed,
	}
}
