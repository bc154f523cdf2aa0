package models

// UpgradeCursor records, per kind, the highest item id a legacy sweep has
// visited. A nil cursor starts from the first row.
type UpgradeCursor map[ItemKind]int64

// After returns the id a sweep resumes after for kind.
func (c UpgradeCursor) After(kind ItemKind) int64 {
	return c[kind]
}

// UpgradeReport summarises one pass of the legacy upgrade.
type UpgradeReport struct {
	// Scanned is the number of legacy items loaded.
	Scanned int

	// Upgraded is the number of items re-sealed with the canonical scheme.
	Upgraded int

	// Skipped is the number of items left untouched because they could not
	// be opened or were changed concurrently.
	Skipped int

	// Next is the cursor the following pass resumes from. Skipped items sit
	// behind it, so they are not loaded again until the sweep restarts.
	Next UpgradeCursor
}
