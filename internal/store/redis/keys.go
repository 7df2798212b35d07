package redis

const (
	// KeyPrefixRecord is the prefix for snooze record keys
	KeyPrefixRecord = "tabnap:snooze:"
	// KeyPrefixConfig is the prefix for recurring config keys
	KeyPrefixConfig = "tabnap:recurring:"
	// KeyAllRecords is the key for the set of all snooze record keys
	KeyAllRecords = "tabnap:snoozes:all"
	// KeyAllConfigs is the key for the set of all recurring config ids
	KeyAllConfigs = "tabnap:recurrings:all"
)

// RecordKey returns the Redis key for a snooze record
func RecordKey(key string) string {
	return KeyPrefixRecord + key
}

// ConfigKey returns the Redis key for a recurring config
func ConfigKey(id string) string {
	return KeyPrefixConfig + id
}
