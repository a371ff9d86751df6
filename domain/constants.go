package domain

const (
	// Redis Key Patterns
	RedisKeyPosted = "forwarder:posted"

	// Default persistence file for posted product keys
	DefaultPostedDB = "posted_links.txt"
)
