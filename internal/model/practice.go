package model

// PracticeType enumerates the fixed catalog of institution categories.
type PracticeType uint8

const (
	PracticeWork PracticeType = iota
	PracticeChurch
	PracticeClub
	PracticePoliticalOrg
	PracticeEducation
	PracticeCommunityCenter
)

// NumPractices is the size of the practice catalog.
const NumPractices = 6

var practiceNames = [NumPractices]string{
	"work", "church", "club", "political_org", "education", "community_center",
}

// PracticeName returns the canonical name of a practice type.
func PracticeName(p PracticeType) string {
	if int(p) < len(practiceNames) {
		return practiceNames[p]
	}
	return "unknown"
}

// PracticeByName resolves a practice name; ok is false for unknown names.
func PracticeByName(name string) (PracticeType, bool) {
	for i, n := range practiceNames {
		if n == name {
			return PracticeType(i), true
		}
	}
	return 0, false
}

// Practices returns all practice types in catalog order.
func Practices() [NumPractices]PracticeType {
	var out [NumPractices]PracticeType
	for i := range out {
		out[i] = PracticeType(i)
	}
	return out
}

// PracticeProfile describes how hours at a practice convert into value
// benefits: a diminishing-returns exponent (>1) and per-dimension
// benefit-per-hour rates. MaxHours caps the greedy allocator per type.
type PracticeProfile struct {
	OptimalHours float64
	Gamma        float64 // Diminishing-returns exponent, > 1
	Benefits     ValueVector
	MaxHours     float64
}

// DefaultMaxHours caps allocation for any practice outside the catalog.
const DefaultMaxHours = 50.0

// profiles is the process-wide constant profile table, indexed by PracticeType.
var profiles = [NumPractices]PracticeProfile{
	PracticeWork: {
		OptimalHours: 40, Gamma: 1.5, MaxHours: 60,
		Benefits: ValueVector{0.01, 0.0, 0.02, 0.01, 0.03, -0.05, 0.0},
	},
	PracticeChurch: {
		OptimalHours: 10, Gamma: 1.3, MaxHours: 20,
		Benefits: ValueVector{0.15, 0.12, 0.05, 0.06, 0.04, 0.0, 0.0},
	},
	PracticeClub: {
		OptimalHours: 6, Gamma: 1.4, MaxHours: 15,
		Benefits: ValueVector{0.10, 0.02, 0.08, 0.03, 0.06, 0.05, 0.0},
	},
	PracticePoliticalOrg: {
		OptimalHours: 15, Gamma: 1.2, MaxHours: 30,
		Benefits: ValueVector{0.07, 0.03, 0.06, 0.15, 0.09, 0.0, 0.0},
	},
	PracticeEducation: {
		OptimalHours: 20, Gamma: 1.1, MaxHours: 40,
		Benefits: ValueVector{0.05, 0.04, 0.15, 0.05, 0.10, 0.0, 0.0},
	},
	PracticeCommunityCenter: {
		OptimalHours: 30, Gamma: 1.2, MaxHours: 50,
		Benefits: ValueVector{0.12, 0.08, 0.04, 0.02, 0.02, 0.08, 0.0},
	},
}

// Profile returns the profile for a practice type. Unknown types get a
// zero-benefit profile with the default cap.
func Profile(p PracticeType) PracticeProfile {
	if int(p) < NumPractices {
		return profiles[p]
	}
	return PracticeProfile{Gamma: 1.2, MaxHours: DefaultMaxHours}
}
