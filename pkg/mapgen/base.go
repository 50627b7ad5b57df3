package mapgen

import (
	"fmt"
	"time"

	"github.com/dshills/dungeonwalk/pkg/grid"
	"github.com/dshills/dungeonwalk/pkg/rng"
)

// Dimension bounds shared by every generator kind.
const (
	MinWidth  = 10
	MinHeight = 10
	MaxWidth  = 100
	MaxHeight = 100
)

// Kind selects which algorithm Generate runs.
type Kind int

const (
	KindRoom Kind = iota
	KindPassage
	KindWalk
)

func (k Kind) String() string {
	switch k {
	case KindRoom:
		return "room"
	case KindPassage:
		return "passage"
	case KindWalk:
		return "walk"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind parses the operator CLI's generator type token. It defaults to
// KindPassage on an empty string, matching the command surface's documented
// default.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "", "passage":
		return KindPassage, nil
	case "room":
		return KindRoom, nil
	case "walk":
		return KindWalk, nil
	default:
		return 0, fmt.Errorf("%w: unknown generator kind %q", ErrInvalidParameters, s)
	}
}

// Params bundles the inputs to Generate. Seed is a pointer so "absent"
// (fresh seed) is distinguishable from the zero seed. MinRooms/MaxRooms are
// only consulted by KindPassage.
type Params struct {
	Width, Height int
	Seed          *uint64
	Kind          Kind
	MinRooms      int
	MaxRooms      int
}

// Result is the sealed map plus any non-fatal conditions encountered while
// building it.
type Result struct {
	Grid     *grid.Grid
	Seed     uint64
	Warnings []string
}

// PlacementExhaustedWarning formats the one warning generators actually
// emit: fewer rooms placed than requested because MAX_PLACEMENT_ATTEMPTS ran
// out.
func PlacementExhaustedWarning(wanted, got int) string {
	return fmt.Sprintf("placement exhausted: wanted %d rooms, placed %d", wanted, got)
}

func validateDimensions(w, h int) error {
	if w < MinWidth || w > MaxWidth {
		return fmt.Errorf("%w: width %d outside [%d, %d]", ErrInvalidDimensions, w, MinWidth, MaxWidth)
	}
	if h < MinHeight || h > MaxHeight {
		return fmt.Errorf("%w: height %d outside [%d, %d]", ErrInvalidDimensions, h, MinHeight, MaxHeight)
	}
	return nil
}

func emptyMap(w, h int) *grid.Grid {
	return grid.NewGrid(w, h)
}

// Generate validates params, seeds a deterministic Source, dispatches to the
// chosen algorithm, and returns a sealed Result. It never partially commits:
// on any validation error the returned Result is nil.
func Generate(p Params) (*Result, error) {
	if err := validateDimensions(p.Width, p.Height); err != nil {
		return nil, err
	}

	seed := rng.FreshSeed(uint64(time.Now().UnixNano()))
	if p.Seed != nil {
		seed = *p.Seed
	}
	source := rng.NewSource(seed, p.Kind.String())

	g := emptyMap(p.Width, p.Height)

	var warnings []string
	var err error
	switch p.Kind {
	case KindRoom:
		warnings, err = generateRoom(g, source)
	case KindPassage:
		if p.MinRooms < 1 {
			return nil, fmt.Errorf("%w: minRooms must be >= 1, got %d", ErrInvalidParameters, p.MinRooms)
		}
		if p.MaxRooms < p.MinRooms {
			return nil, fmt.Errorf("%w: maxRooms (%d) must be >= minRooms (%d)", ErrInvalidParameters, p.MaxRooms, p.MinRooms)
		}
		warnings, err = generatePassage(g, source, p.MinRooms, p.MaxRooms)
	case KindWalk:
		warnings, err = generateWalk(g, source)
	default:
		return nil, fmt.Errorf("%w: unknown generator kind %v", ErrInvalidParameters, p.Kind)
	}
	if err != nil {
		return nil, err
	}

	return &Result{Grid: g, Seed: seed, Warnings: warnings}, nil
}
