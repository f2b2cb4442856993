package catalog

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Version is a value object identifying one published catalog snapshot
type Version struct {
	value uuid.UUID
}

// NewVersion creates a new Version
func NewVersion() Version {
	return Version{value: uuid.New()}
}

// ParseVersion parses a string into a Version
func ParseVersion(version string) (Version, error) {
	uid, err := uuid.Parse(version)
	if err != nil {
		return Version{}, fmt.Errorf("invalid catalog version format: %w", err)
	}
	return Version{value: uid}, nil
}

func (v Version) String() string {
	return v.value.String()
}

func (v Version) UUID() uuid.UUID {
	return v.value
}

func (v Version) Equals(other Version) bool {
	return v.value == other.value
}

var fullNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+/[a-zA-Z0-9_.-]+$`)

// FullName is a value object representing a validated "owner/repo" reference
type FullName struct {
	value string
}

// NewFullName creates a new FullName with validation
func NewFullName(fullName string) (FullName, error) {
	fullName = strings.TrimSpace(fullName)

	if !fullNamePattern.MatchString(fullName) {
		return FullName{}, ErrInvalidRepoName(fullName)
	}

	return FullName{value: fullName}, nil
}

// JoinFullName builds a FullName from its owner and repo halves
func JoinFullName(owner, repo string) (FullName, error) {
	return NewFullName(strings.TrimSpace(owner) + "/" + strings.TrimSpace(repo))
}

func (n FullName) String() string {
	return n.value
}

// Owner returns the owner half of the reference
func (n FullName) Owner() string {
	owner, _, _ := SplitFullName(n.value)
	return owner
}

// Repo returns the repository half of the reference
func (n FullName) Repo() string {
	_, repo, _ := SplitFullName(n.value)
	return repo
}

func (n FullName) Equals(other FullName) bool {
	return n.value == other.value
}
