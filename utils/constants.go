// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = 72 * time.Hour

// ProfileCachePrefix is the prefix for cached profile documents.
const ProfileCachePrefix = "profile:"

// ProfileCacheTTL is how long a cached profile document stays fresh.
const ProfileCacheTTL = 10 * time.Minute

// ResetTokenPrefix is the prefix for password-reset token keys.
const ResetTokenPrefix = "pwdreset:"

// ResetTokenTTL is how long a password-reset token stays valid.
const ResetTokenTTL = 30 * time.Minute
