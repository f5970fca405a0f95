package routing

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
)

// Turn classifies the maneuver that begins a navigation instruction.
type Turn int

// The eight maneuver kinds, in wire order.
const (
	Start Turn = iota
	Straight
	SlightLeft
	SlightRight
	Right
	Left
	SharpLeft
	SharpRight
)

// turnPhrases is the fixed phrase table, indexed by Turn. It is built once
// and never mutated.
var turnPhrases = [...]string{
	Start:       "Start",
	Straight:    "Go straight",
	SlightLeft:  "Slight left",
	SlightRight: "Slight right",
	Right:       "Turn right",
	Left:        "Turn left",
	SharpLeft:   "Sharp left",
	SharpRight:  "Sharp right",
}

// String returns the instruction phrase for the maneuver.
func (t Turn) String() string {
	if t < 0 || int(t) >= len(turnPhrases) {
		return fmt.Sprintf("Turn(%d)", int(t))
	}
	return turnPhrases[t]
}

// ClassifyTurn maps a relative bearing in degrees (current edge bearing
// minus the bearing at the start of the previous instruction) to a
// maneuver. Window boundaries are exact; 15 is Straight, the next
// representable value above it is SlightRight.
func ClassifyTurn(relativeBearing float64) Turn {
	rel := relativeBearing
	switch {
	case rel >= -15 && rel <= 15:
		return Straight
	case rel >= -30 && rel < -15:
		return SlightLeft
	case rel > 15 && rel <= 30:
		return SlightRight
	case rel >= -100 && rel < -30:
		return Right
	case rel > 30 && rel <= 100:
		return Left
	case rel < -100:
		return SharpLeft
	default:
		return SharpRight
	}
}

// UnknownRoad is substituted for ways whose name cannot be resolved.
const UnknownRoad = "unknown road"

// Direction is one turn-by-turn instruction: a maneuver, the way it
// follows, and the distance traveled along that way in miles.
type Direction struct {
	Turn     Turn
	Way      string
	Distance float64
}

// String renders the instruction in its canonical sentence form, e.g.
// "Turn left on Shattuck Avenue and continue for 0.212 miles.".
func (d Direction) String() string {
	return fmt.Sprintf("%s on %s and continue for %.3f miles.", d.Turn, d.Way, d.Distance)
}

var directionPattern = regexp.MustCompile(`^([a-zA-Z\s]+) on ([\w\s]*) and continue for ([0-9.]+) miles\.$`)

// ParseDirection parses the canonical sentence form back into a Direction.
// Exactly the eight fixed maneuver phrases and a decimal distance are
// accepted; anything else returns an error.
func ParseDirection(s string) (Direction, error) {
	m := directionPattern.FindStringSubmatch(s)
	if m == nil {
		return Direction{}, fmt.Errorf("routing: malformed direction %q", s)
	}
	turn, ok := turnFromPhrase(m[1])
	if !ok {
		return Direction{}, fmt.Errorf("routing: unknown maneuver phrase %q", m[1])
	}
	dist, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return Direction{}, fmt.Errorf("routing: bad distance in %q: %w", s, err)
	}
	return Direction{Turn: turn, Way: m[2], Distance: dist}, nil
}

func turnFromPhrase(p string) (Turn, bool) {
	for t, phrase := range turnPhrases {
		if phrase == p {
			return Turn(t), true
		}
	}
	return 0, false
}

// Directions converts a vertex path into navigation instructions.
//
// Consecutive edges that stay on the way locked in at the start of the
// current instruction accumulate into it. An edge that leaves the way
// closes the open instruction and opens the next one, classified by the
// change in bearing since the current instruction began. The final edge
// always folds into the open instruction, and the first instruction is
// always Start. Routes shorter than one edge produce no instructions.
func Directions(g Graph, route []int64) []Direction {
	if len(route) < 2 {
		return nil
	}

	var (
		dirs       []Direction
		turn       = Start
		distance   float64
		relBearing float64
		curWay     int64
		haveWay    bool
	)
	startNode := route[0]
	prevBearing := g.Bearing(route[0], route[1])

	for i := 1; i < len(route); i++ {
		prev, cur := route[i-1], route[i]
		curBearing := g.Bearing(prev, cur)
		relBearing = curBearing - prevBearing

		if prev == startNode {
			// Opening edge of an instruction: lock in the way shared by
			// its endpoints. The reference bearing stays fixed until the
			// next instruction opens.
			curWay, haveWay = commonWay(g, prev, cur)
		} else {
			prevBearing = curBearing
		}

		if i == len(route)-1 {
			// The final edge folds into the open instruction even when it
			// leaves the current way.
			distance += g.Distance(prev, cur)
		} else if haveWay && onWay(g, cur, curWay) {
			distance += g.Distance(prev, cur)
			continue
		}

		dirs = append(dirs, Direction{
			Turn:     turn,
			Way:      wayDisplayName(g, curWay, haveWay),
			Distance: distance,
		})
		startNode = cur
		turn = ClassifyTurn(relBearing)
		distance = g.Distance(prev, cur)
	}
	return dirs
}

// commonWay returns a way shared by both vertices, preferring the first
// match in a's way order.
func commonWay(g Graph, a, b int64) (int64, bool) {
	bw := g.IncidentWays(b)
	for _, w := range g.IncidentWays(a) {
		if slices.Contains(bw, w) {
			return w, true
		}
	}
	return 0, false
}

func onWay(g Graph, id, way int64) bool {
	return slices.Contains(g.IncidentWays(id), way)
}

func wayDisplayName(g Graph, way int64, ok bool) string {
	if !ok {
		return UnknownRoad
	}
	name, found := g.WayName(way)
	if !found || name == "" {
		return UnknownRoad
	}
	return name
}
