package gesture

// Label is the discrete classification of one frame
type Label uint8

const (
	// LabelHandAbsent means no hand was detected at all
	LabelHandAbsent Label = iota
	// LabelNone means a hand is present but matches no pose
	LabelNone
	LabelVSign
	LabelPointing
	LabelFourFingers
)

var labelNames = [...]string{
	LabelHandAbsent:  "absent",
	LabelNone:        "none",
	LabelVSign:       "v-sign",
	LabelPointing:    "pointing",
	LabelFourFingers: "four-fingers",
}

func (l Label) String() string {
	if int(l) < len(labelNames) {
		return labelNames[l]
	}
	return "unknown"
}

// Intent is the human-readable action a label drives
func (l Label) Intent() string {
	switch l {
	case LabelVSign:
		return "gather"
	case LabelPointing:
		return "rotate"
	case LabelFourFingers:
		return "zoom"
	case LabelNone:
		return "hand detected"
	default:
		return "no hand"
	}
}

// Finger order used by the extension mask
const (
	FingerIndex = iota
	FingerMiddle
	FingerRing
	FingerPinky
)

// Fingers is the extension state of index, middle, ring, pinky
type Fingers [4]bool

// LabelFor classifies an extension mask; first match wins in fixed priority
func LabelFor(f Fingers) Label {
	switch f {
	case Fingers{true, true, false, false}:
		return LabelVSign
	case Fingers{true, false, false, false}:
		return LabelPointing
	case Fingers{true, true, true, true}:
		return LabelFourFingers
	default:
		return LabelNone
	}
}
