package data

const (
	DatePattern            = "2006-01-02"
	DatePatternCompact     = "20060102"
	DateTimePattern        = "2006-01-02 15:04:05"
	DateTimePatternCompact = "20060102150405"

	RunModeDev     = "dev"
	RunModeTest    = "test"
	RunModeRelease = "release"
)

const (
	//digits used as the key of a metadata request
	PrefixLengthForMetadataRequest = 6
	//digits used to decide whether a prefix is worth a metadata request
	PrefixLengthForBrandGuess = PrefixLengthForMetadataRequest - 1

	MaxPanLength     = 19
	UnknownPanLength = 19
	MinPanLength     = 12
)
