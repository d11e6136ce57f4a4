package cfg

type Cfg struct {
	// Crawl configuration
	SourceURL    string
	ArticlesFile string
	UserAgent    string
	Timeout      int
	Schedule     string

	// Digest configuration
	TopicsFile string
	OutputFile string
	CSSFile    string

	// Application metadata
	LogFile  string
	Timezone string
	Debug    bool
	Version  string
}
