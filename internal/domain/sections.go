package domain

// Builtin section configurations for the standard academic test: group layout
// and band table are data, so adding a section type is a configuration change,
// not a code change.

// SectionListening and SectionReading are the IDs of the built-in sections.
const (
	SectionListening = "listening"
	SectionReading   = "reading"
)

// BuiltinSections returns the reference Listening and Reading configurations,
// 40 questions each.
func BuiltinSections() map[string]Section {
	return map[string]Section{
		SectionListening: {
			ID:   SectionListening,
			Name: "Listening",
			Groups: []Group{
				{Title: "Part 1, Q1-10", Count: 10},
				{Title: "Part 2, Q11-20", Count: 10},
				{Title: "Part 3, Q21-30", Count: 10},
				{Title: "Part 4, Q31-40", Count: 10},
			},
			Bands: listeningBands(),
		},
		SectionReading: {
			ID:   SectionReading,
			Name: "Reading",
			Groups: []Group{
				{Title: "Reading Passage 1, Q1-13", Count: 13},
				{Title: "Reading Passage 2, Q14-26", Count: 13},
				{Title: "Reading Passage 3, Q27-40", Count: 14},
			},
			Bands: readingBands(),
		},
	}
}

func listeningBands() []BandStep {
	return []BandStep{
		{39, 9.0},
		{37, 8.5},
		{35, 8.0},
		{32, 7.5},
		{30, 7.0},
		{26, 6.5},
		{23, 6.0},
		{18, 5.5},
		{16, 5.0},
		{13, 4.5},
		{11, 4.0},
		{8, 3.5},
		{6, 3.0},
		{4, 2.5},
		{0, 2.0},
	}
}

func readingBands() []BandStep {
	return []BandStep{
		{39, 9.0},
		{37, 8.5},
		{35, 8.0},
		{33, 7.5},
		{30, 7.0},
		{27, 6.5},
		{23, 6.0},
		{19, 5.5},
		{15, 5.0},
		{13, 4.5},
		{10, 4.0},
		{8, 3.5},
		{6, 3.0},
		{4, 2.5},
		{0, 2.0},
	}
}
