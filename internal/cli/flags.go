package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile  string
	I18nDir  string
	PagesDir string
	AudioDir string

	// Chat provider flags
	Provider string
	Model    string

	// Journal flags
	JournalPath string
	NoJournal   bool

	// translate flags
	SourceLang  string
	TargetLang  string
	ContextSize int
	Offline     bool
	DryRun      bool

	// easyread flags
	Lang             string
	StartKey         string
	EndKey           string
	PreserveGlossary bool

	// eli5 / alttext flags
	Force bool

	// timecodes flags
	JSONFile     string
	AudioFolder  string
	Output       string
	ContinueFrom bool
	AlignURL     string
	AlignLang    string
	AlignKind    string

	// regen flags
	StartPage   int
	EndPage     int
	Language    string
	ContentType string
	Concurrency int

	// narrate flags
	TTSModel string
	Voice    string
	Speed    float64
	CacheDir string

	// history flags
	HistoryCount int
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		I18nDir:      "content/i18n",
		PagesDir:     ".",
		AudioDir:     "content/audio",
		Provider:     "openai",
		SourceLang:   "es",
		TargetLang:   "en",
		ContextSize:  10,
		Lang:         "es",
		Output:       "timecode_output.json",
		AlignLang:    "spa - Spanish",
		AlignKind:    "text",
		Language:     "both",
		ContentType:  "both",
		Concurrency:  10,
		Speed:        1.0,
		HistoryCount: 10,
	}
}
