package security

import (
	"encoding/base64"
	"io/ioutil"
	"strings"

	"github.com/fastlab-io/server/plugins/common"
	"golang.org/x/crypto/bcrypt"
)

// Basic auth users storage.
type basicAuthStorage struct {
	logger    common.ILoggerProvider
	passwords map[string]string
}

// Constructs a new storage from configured users and htpasswd file.
// Passwords must be bcrypt hashes, htpasswd -B generates them.
func newBasicAuthStorage(logger common.ILoggerProvider, users map[string]string, file string) *basicAuthStorage {
	b := &basicAuthStorage{
		logger:    logger,
		passwords: make(map[string]string),
	}

	if !b.readFile(file) {
		b.logger.Debug("_users file is not found, going to use settings only", common.LogFileToken, file)
	}

	for k, v := range users {
		b.passwords[k] = v
	}

	return b
}

// Authorize validates basic auth header.
func (b *basicAuthStorage) Authorize(header string) (username string, err error) {
	auth := strings.SplitN(header, " ", 2)
	if 2 != len(auth) || "Basic" != auth[0] {
		b.logger.Warn("No Basic Auth header found")
		return "", &ErrNoHeader{}
	}

	payload, err := base64.StdEncoding.DecodeString(auth[1])
	if err != nil {
		b.logger.Warn("Failed to decode Basic Auth header")
		return "", &ErrIncorrectHeader{}
	}

	pair := strings.SplitN(string(payload), ":", 2)
	if 2 != len(pair) {
		b.logger.Warn("Corrupted Basic Auth header")
		return "", &ErrCorruptedHeader{Header: auth[1]}
	}

	pwd, ok := b.passwords[pair[0]]
	if ok && bcrypt.CompareHashAndPassword([]byte(pwd), []byte(pair[1])) == nil {
		b.logger.Debug("User authorized", common.LogUserNameToken, pair[0])
		return pair[0], nil
	}

	b.logger.Warn("User is unauthorized", common.LogUserNameToken, pair[0])
	return "", &ErrUserNotFound{User: pair[0]}
}

// Reads htpasswd file.
func (b *basicAuthStorage) readFile(name string) bool {
	bytes, err := ioutil.ReadFile(name)
	if err != nil {
		return false
	}

	lines := strings.Split(string(bytes), "\n")
	for _, v := range lines {
		v = strings.Trim(v, " \r")
		if 0 == len(v) {
			continue
		}

		parts := strings.SplitN(v, ":", 2)
		if 2 != len(parts) {
			continue
		}

		b.passwords[parts[0]] = parts[1]
	}

	return true
}
