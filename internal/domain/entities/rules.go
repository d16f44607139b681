package entities

// RuleSource identifies an upstream detection-rule repository
type RuleSource string

// Supported rule sources
const (
	RuleSourceCommunity RuleSource = "community"
	RuleSourceElastic   RuleSource = "elastic"
	RuleSourceHayabusa  RuleSource = "hayabusa"
)

// RulesUpdateResult reports the outcome of a rules update
type RulesUpdateResult struct {
	Source       string
	RepoURL      string
	RepoPath     string
	HeadCommit   string // short (12 char) HEAD commit of the rule repo
	CombinedPath string
	RuleCount    int
}
