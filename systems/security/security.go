// Package security implements API access control.
package security

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/fastlab-io/server/plugins/common"
	"github.com/fastlab-io/server/providers"
	"github.com/fastlab-io/server/utils"
	"github.com/patrickmn/go-cache"
)

// Implements security provider.
type provider struct {
	sync.Mutex

	logger  common.ILoggerProvider
	storage *basicAuthStorage
	cache   *cache.Cache
}

// ConstructSecurityProvider has all data required for a new security provider.
// UsersFile is optional, configs/_users is used when it's empty.
type ConstructSecurityProvider struct {
	Logger    common.ILoggerProvider
	Users     map[string]string
	UsersFile string
}

// NewSecurityProvider constructs new security provider.
// Security is disabled if neither settings nor users file have users.
func NewSecurityProvider(ctor *ConstructSecurityProvider) providers.ISecurityProvider {
	file := ctor.UsersFile
	if "" == file {
		file = fmt.Sprintf("%s/_users", utils.GetDefaultConfigsDir())
	}

	storage := newBasicAuthStorage(ctor.Logger, ctor.Users, file)
	if 0 == len(storage.passwords) {
		ctor.Logger.Info("No users defined, API is open")
	}

	return &provider{
		logger:  ctor.Logger,
		storage: storage,
		cache:   cache.New(5*time.Minute, 10*time.Minute),
	}
}

// IsEnabled returns whether any user is defined.
func (p *provider) IsEnabled() bool {
	return len(p.storage.passwords) > 0
}

// Authorize validates request headers.
// Successful checks are cached since bcrypt is slow by design.
func (p *provider) Authorize(headers http.Header) (string, error) {
	p.Lock()
	defer p.Unlock()

	header := headers.Get("Authorization")
	if usr, ok := p.cache.Get(header); ok && "" != header {
		return usr.(string), nil
	}

	usr, err := p.storage.Authorize(header)
	if err != nil {
		return "", err
	}

	p.cache.Set(header, usr, cache.DefaultExpiration)
	return usr, nil
}
