package server

import (
	"github.com/fastlab-io/server/plugins/common"
	"github.com/gobwas/glob"
)

// Compiles allowed origins patterns.
func compileOrigins(patterns []string, logger common.ILoggerProvider) []glob.Glob {
	result := make([]glob.Glob, 0, len(patterns))
	for _, v := range patterns {
		g, err := glob.Compile(v)
		if err != nil {
			logger.Warn("Failed to compile allowed origin, ignoring", common.LogURLToken, v,
				common.LogSystemToken, logSystem)
			continue
		}

		result = append(result, g)
	}

	return result
}

// Checks whether request origin is allowed.
// Requests without origin come from non-browser clients and are always allowed,
// empty configuration allows everything.
func (s *FastLabServer) isOriginAllowed(origin string) bool {
	if "" == origin || 0 == len(s.origins) {
		return true
	}

	for _, v := range s.origins {
		if v.Match(origin) {
			return true
		}
	}

	s.Logger.Debug("Origin is not allowed", common.LogURLToken, origin, common.LogSystemToken, logSystem)
	return false
}
