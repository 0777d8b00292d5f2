package config

import "strings"

// envKeyReplacer maps "feed-input" to CTE_FEED_INPUT
var envKeyReplacer = strings.NewReplacer("-", "_")
