package camera

import (
	"image"

	"github.com/corona10/goimagehash"
)

// Checks whether image differs enough from the last sent one.
// Hashing failures let the frame through.
func (s *stream) isChanged(img image.Image) bool {
	hash, err := goimagehash.AverageHash(img)
	if err != nil {
		return true
	}

	if nil == s.prevHash {
		s.prevHash = hash
		return true
	}

	distance, err := s.prevHash.Distance(hash)
	if err != nil {
		return true
	}

	if distance >= s.minDistance {
		s.prevHash = hash
		return true
	}

	return false
}
