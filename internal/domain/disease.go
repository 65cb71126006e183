package domain

// Disease is a label returned by the prediction service, or Unknown.
type Disease string

const (
	Aphids          Disease = "Aphids"
	ArmyWorm        Disease = "Army worm"
	BacterialBlight Disease = "Bacterial blight"
	CottonBollRot   Disease = "Cotton Boll Rot"
	GreenCottonBoll Disease = "Green Cotton Boll"
	Healthy         Disease = "Healthy"
	PowderyMildew   Disease = "Powdery mildew"
	TargetSpot      Disease = "Target spot"
	Unknown         Disease = "Unknown"
)

// KnownDiseases is the closed set the classifier can return, excluding Unknown.
var KnownDiseases = []Disease{
	Aphids, ArmyWorm, BacterialBlight, CottonBollRot,
	GreenCottonBoll, Healthy, PowderyMildew, TargetSpot,
}

// ParseDisease maps any label outside the known set to Unknown.
func ParseDisease(s string) Disease {
	for _, d := range KnownDiseases {
		if string(d) == s {
			return d
		}
	}
	return Unknown
}

// Valid reports whether d is a known label or Unknown.
func (d Disease) Valid() bool {
	return d == Unknown || ParseDisease(string(d)) != Unknown
}
