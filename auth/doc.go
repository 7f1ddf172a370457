// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing and access token utilities.

# Passwords

Passwords are stored as bcrypt hashes:

	hash, err := auth.HashPassword(password)
	err := auth.CheckPassword(hash, password) // ErrInvalidCredentials on mismatch

# Access Tokens

Access tokens are HS256 JWTs whose subject is the user ID:

	token, err := auth.SignToken(userID, email, secret, ttl)
	claims, err := auth.ParseToken(token, secret) // claims.Subject == userID

ParseToken rejects other signing methods, foreign issuers and expired
tokens with ErrInvalidToken.

# User IDs

	id := auth.NewUserID() // random UUID string
*/
package auth
