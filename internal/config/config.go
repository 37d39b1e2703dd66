package config

import (
	"github.com/spf13/viper"
)

// Global configuration variables, resolved once at startup.
var (
	// APIBaseURL is the base URL of the Bangumi v0 API
	APIBaseURL string
	// SiteBaseURL is the base URL of the Bangumi website, used for book detail links
	SiteBaseURL string
	// UserAgent is sent with every API request
	UserAgent string
	// TagUserCount is the minimum number of taggers for a tag to be kept
	TagUserCount int
	// TagCount is the maximum number of tags kept per book
	TagCount int
	// SearchLimit is the result cap requested from the search endpoint
	SearchLimit int
)

// InitConfig initializes the global configuration from viper.
func InitConfig() {
	// Set default values
	viper.SetDefault("bangumi.api_base_url", "https://api.bgm.tv/v0")
	viper.SetDefault("bangumi.site_base_url", "https://bangumi.tv")
	viper.SetDefault("bangumi.user_agent", "Cusox/calibre-bangumi")
	viper.SetDefault("bangumi.search_limit", 3)
	viper.SetDefault("tags.user_count", 5)
	viper.SetDefault("tags.count", 10)

	// Get values from viper
	APIBaseURL = viper.GetString("bangumi.api_base_url")
	SiteBaseURL = viper.GetString("bangumi.site_base_url")
	UserAgent = viper.GetString("bangumi.user_agent")
	SearchLimit = viper.GetInt("bangumi.search_limit")
	TagUserCount = viper.GetInt("tags.user_count")
	TagCount = viper.GetInt("tags.count")
}

// SetTagUserCount overrides the minimum tagger count.
func SetTagUserCount(n int) {
	if n > 0 {
		TagUserCount = n
	}
}

// SetTagCount overrides the maximum number of tags kept.
func SetTagCount(n int) {
	if n > 0 {
		TagCount = n
	}
}
