package cache

import "time"

// TTLs per spec.md §3's keyed cache table definitions.
const (
	dnsTTL      = 24 * time.Hour
	geoTTL      = 7 * 24 * time.Hour
	attackerTTL = 6 * time.Hour

	// SITREP sub-key TTLs.
	SitrepChannelsTTL     = 5 * time.Minute
	SitrepUpdateCheckTTL  = 1 * time.Hour
	SitrepActionItemsTTL  = 5 * time.Minute
)
