package unit

import "github.com/pfassina/grimdark/dice"

// bodyPartRoll is a body part and its cumulative roll threshold out of 100, per the
// distribution decided in DESIGN.md's Open Question section: torso is
// hit most often, head rarest.
type bodyPartRoll struct {
	part      string
	threshold int
}

var bodyPartTable = []bodyPartRoll{
	{"torso", 40},
	{"arm", 65},
	{"leg", 90},
	{"head", 100},
}

func rollBodyPart(roll int) string {
	for _, row := range bodyPartTable {
		if roll <= row.threshold {
			return row.part
		}
	}
	return "torso"
}

// severityForDamage buckets a damage amount relative to the defender's
// max HP into a wound severity. Thresholds are fractions of HPMax.
func severityForDamage(amount, hpMax int) WoundSeverity {
	if hpMax <= 0 {
		return SeverityMinor
	}
	ratio := float64(amount) / float64(hpMax)
	switch {
	case ratio >= 0.5:
		return SeverityMortal
	case ratio >= 0.3:
		return SeverityMajor
	case ratio >= 0.15:
		return SeverityModerate
	default:
		return SeverityMinor
	}
}

var severityPenalties = map[WoundSeverity]map[string]int{
	SeverityMinor:    {},
	SeverityModerate: {"strength": -1},
	SeverityMajor:    {"strength": -2, "defense": -1},
	SeverityMortal:   {"strength": -3, "defense": -2},
}

// WoundFactory creates wounds from combat resolution outcomes, using a
// dice.Roller to pick the struck body part so replays stay reproducible
// when seeded with a DeterministicRoller.
type WoundFactory struct {
	Roller dice.Roller
}

// NewWoundFactory builds a WoundFactory backed by the given roller.
func NewWoundFactory(roller dice.Roller) *WoundFactory {
	return &WoundFactory{Roller: roller}
}

// Create produces a Wound for a hit that dealt amount damage against a
// defender with the given max HP.
func (f *WoundFactory) Create(amount, hpMax int) (Wound, error) {
	roll, err := f.Roller.Roll(100)
	if err != nil {
		return Wound{}, err
	}
	part := rollBodyPart(roll)
	severity := severityForDamage(amount, hpMax)
	penalties := make(map[string]int, len(severityPenalties[severity]))
	for k, v := range severityPenalties[severity] {
		penalties[k] = v
	}
	return Wound{
		Severity:      severity,
		BodyPart:      part,
		StatPenalties: penalties,
		Bleeding:      severity == SeverityMajor || severity == SeverityMortal,
		Permanent:     severity == SeverityMortal,
	}, nil
}
