// SPDX-License-Identifier: GPL-3.0-or-later

package dynali

import (
	"crypto/md5"
	"encoding/hex"
)

// Digest returns the lowercase hexadecimal MD5 digest of the UTF-8 bytes of s.
//
// The Dynali API never sees plaintext credentials: every password and new
// password travels as a digest. Apply Digest exactly once per credential,
// before storing it inside an [Action]. Hashing a value that is already a
// digest produces a different digest that the server will reject.
func Digest(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
