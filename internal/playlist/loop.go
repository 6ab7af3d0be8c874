package playlist

import "fmt"

// LoopMode decides where the cursor goes when a track ends.
//
//	LoopNone   -> next track, stop after the last one
//	LoopSingle -> same track again
//	LoopQueue  -> next track, wrap to the first one
type LoopMode int

const (
	LoopNone LoopMode = iota
	LoopSingle
	LoopQueue
)

func (m LoopMode) String() string {
	switch m {
	case LoopSingle:
		return "single"
	case LoopQueue:
		return "queue"
	default:
		return "none"
	}
}

// Next cycles None -> Queue -> Single -> None.
func (m LoopMode) Next() LoopMode {
	switch m {
	case LoopNone:
		return LoopQueue
	case LoopQueue:
		return LoopSingle
	default:
		return LoopNone
	}
}

// ParseLoopMode parses a config value. Empty means LoopNone.
func ParseLoopMode(s string) (LoopMode, error) {
	switch s {
	case "", "none", "off":
		return LoopNone, nil
	case "single", "one":
		return LoopSingle, nil
	case "queue", "all":
		return LoopQueue, nil
	default:
		return LoopNone, fmt.Errorf("unknown loop mode %q", s)
	}
}
