package config

// SignatureConfig describes one time signature as groups of equal subdivisions.
type SignatureConfig struct {
	ID        string `yaml:"id"`
	Groups    int    `yaml:"groups"`
	Divisions int    `yaml:"divisions"`
}

// defaultSignatures lists the signatures offered out of the box, in display order. Simple meters split each beat
// into sixteenths; compound meters group eighths in threes.
func defaultSignatures() []SignatureConfig {
	return []SignatureConfig{
		{ID: "2/4", Groups: 2, Divisions: 4},
		{ID: "3/4", Groups: 3, Divisions: 4},
		{ID: "4/4", Groups: 4, Divisions: 4},
		{ID: "5/4", Groups: 5, Divisions: 4},
		{ID: "6/8", Groups: 2, Divisions: 3},
		{ID: "9/8", Groups: 3, Divisions: 3},
		{ID: "12/8", Groups: 4, Divisions: 3},
	}
}
