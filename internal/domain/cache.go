package domain

// ReportCacheEntry maps content hashes to previously computed reports.
type ReportCacheEntry struct {
	ConfigHash string                      `json:"config_hash"`
	Reports    map[string]ValidationReport `json:"reports"`
}

// IsInvalidated reports whether the cached reports were produced under a
// different configuration.
func (c *ReportCacheEntry) IsInvalidated(configHash string) bool {
	return c.ConfigHash != configHash
}

// Lookup returns the cached report for a content hash.
func (c *ReportCacheEntry) Lookup(contentHash string) (ValidationReport, bool) {
	if c == nil || c.Reports == nil {
		return ValidationReport{}, false
	}
	r, ok := c.Reports[contentHash]
	return r, ok
}

// Store records a report under its content hash.
func (c *ReportCacheEntry) Store(contentHash string, r ValidationReport) {
	if c.Reports == nil {
		c.Reports = make(map[string]ValidationReport)
	}
	c.Reports[contentHash] = r
}
