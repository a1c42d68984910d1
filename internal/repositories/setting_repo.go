package repositories

// SettingRepository defines the interface for key-value configuration
// access. Get reports NotFound for an absent key; Upsert inserts or
// overwrites in one statement.
type SettingRepository interface {
	Get(key string) (string, error)
	Upsert(key, value string) error
}
