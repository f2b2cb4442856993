package catalog

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// PopularRepo is a curated shortlist entry offered for one-click selection
type PopularRepo struct {
	Owner    string `json:"owner"`
	Repo     string `json:"repo"`
	Language string `json:"language"`
	Category string `json:"category"`
}

// FullName returns the "owner/repo" form of the entry
func (p PopularRepo) FullName() string {
	return p.Owner + "/" + p.Repo
}

// Document is the canonical JSON shape of a catalog, as read from a
// local file or the embedded default
type Document struct {
	Owners       []string            `json:"owners"`
	ReposByOwner map[string][]string `json:"reposByOwner"`
	PopularRepos []PopularRepo       `json:"popularRepos"`
	Languages    map[string][]string `json:"languages"`
	Categories   map[string][]string `json:"categories"`
}

// Catalog is an immutable snapshot of the owner, repository, language and
// category indexes backing the selector widgets. All lookups are pure
// reads; a catalog is never mutated after construction, it is replaced
// wholesale through the Store.
type Catalog struct {
	owners       []string
	reposByOwner map[string][]string
	popularRepos []PopularRepo
	languages    map[string][]string
	categories   map[string][]string
}

// NewCatalog builds a validated Catalog. Inputs are deep-copied so later
// mutation by the caller cannot leak into a published snapshot.
func NewCatalog(
	owners []string,
	reposByOwner map[string][]string,
	popularRepos []PopularRepo,
	languages map[string][]string,
	categories map[string][]string,
) (*Catalog, error) {
	if len(owners) == 0 {
		return nil, ErrInvalidCatalog("owners must not be empty")
	}

	seen := make(map[string]struct{}, len(owners))
	for _, owner := range owners {
		if strings.TrimSpace(owner) == "" {
			return nil, ErrInvalidCatalog("owner name must not be blank")
		}
		if _, dup := seen[owner]; dup {
			return nil, ErrInvalidCatalog(fmt.Sprintf("duplicate owner %q", owner))
		}
		seen[owner] = struct{}{}
	}

	if len(reposByOwner) != len(owners) {
		return nil, ErrInvalidCatalog("owners must be exactly the key set of reposByOwner")
	}
	for _, owner := range owners {
		repos, ok := reposByOwner[owner]
		if !ok {
			return nil, ErrInvalidCatalog(fmt.Sprintf("owner %q has no entry in reposByOwner", owner))
		}
		if len(repos) == 0 {
			return nil, ErrInvalidCatalog(fmt.Sprintf("owner %q has an empty repository list", owner))
		}
		for _, repo := range repos {
			if strings.TrimSpace(repo) == "" {
				return nil, ErrInvalidCatalog(fmt.Sprintf("owner %q has a blank repository name", owner))
			}
		}
	}

	c := &Catalog{
		owners:       copyStrings(owners),
		reposByOwner: copyIndex(reposByOwner),
		popularRepos: copyPopular(popularRepos),
		languages:    copyIndex(languages),
		categories:   copyIndex(categories),
	}

	for name, fullNames := range c.languages {
		if err := c.checkIndexEntries("languages", name, fullNames); err != nil {
			return nil, err
		}
	}
	for name, fullNames := range c.categories {
		if err := c.checkIndexEntries("categories", name, fullNames); err != nil {
			return nil, err
		}
	}

	for _, p := range c.popularRepos {
		if strings.TrimSpace(p.Owner) == "" || strings.TrimSpace(p.Repo) == "" {
			return nil, ErrInvalidCatalog(fmt.Sprintf("popular entry %q is missing owner or repo", p.FullName()))
		}
		if !c.contains(p.Owner, p.Repo) {
			return nil, ErrInvalidCatalog(fmt.Sprintf("popular entry %q is not listed in reposByOwner", p.FullName()))
		}
		if p.Language != "" {
			if _, ok := c.languages[p.Language]; !ok {
				return nil, ErrInvalidCatalog(fmt.Sprintf("popular entry %q references unknown language %q", p.FullName(), p.Language))
			}
		}
		if p.Category != "" {
			if _, ok := c.categories[p.Category]; !ok {
				return nil, ErrInvalidCatalog(fmt.Sprintf("popular entry %q references unknown category %q", p.FullName(), p.Category))
			}
		}
	}

	return c, nil
}

// ParseDocument parses and validates the canonical JSON shape
func ParseDocument(data []byte) (*Catalog, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog document: %w", err)
	}
	return FromDocument(doc)
}

// FromDocument builds a validated Catalog from a decoded document
func FromDocument(doc Document) (*Catalog, error) {
	return NewCatalog(doc.Owners, doc.ReposByOwner, doc.PopularRepos, doc.Languages, doc.Categories)
}

// Document copies the catalog out into its canonical JSON shape
func (c *Catalog) Document() Document {
	return Document{
		Owners:       copyStrings(c.owners),
		ReposByOwner: copyIndex(c.reposByOwner),
		PopularRepos: copyPopular(c.popularRepos),
		Languages:    copyIndex(c.languages),
		Categories:   copyIndex(c.categories),
	}
}

// Owners returns the ordered owner list, each owner exactly once
func (c *Catalog) Owners() []string {
	return copyStrings(c.owners)
}

// ReposFor returns the ordered repository names for an owner
func (c *Catalog) ReposFor(owner string) ([]string, error) {
	repos, ok := c.reposByOwner[owner]
	if !ok {
		return nil, ErrOwnerNotFound(owner)
	}
	return copyStrings(repos), nil
}

// Popular returns the curated shortlist in document order
func (c *Catalog) Popular() []PopularRepo {
	return copyPopular(c.popularRepos)
}

// PopularBy filters the shortlist by language and category. Empty filter
// values match everything; unknown values yield an empty list.
func (c *Catalog) PopularBy(language, category string) []PopularRepo {
	out := make([]PopularRepo, 0, len(c.popularRepos))
	for _, p := range c.popularRepos {
		if language != "" && p.Language != language {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	return out
}

// LanguageNames returns the sorted language index keys
func (c *Catalog) LanguageNames() []string {
	return sortedKeys(c.languages)
}

// CategoryNames returns the sorted category index keys
func (c *Catalog) CategoryNames() []string {
	return sortedKeys(c.categories)
}

// ReposForLanguage returns exactly the "owner/repo" entries indexed
// under the language
func (c *Catalog) ReposForLanguage(name string) ([]string, error) {
	fullNames, ok := c.languages[name]
	if !ok {
		return nil, ErrLanguageNotFound(name)
	}
	return copyStrings(fullNames), nil
}

// ReposForCategory returns exactly the "owner/repo" entries indexed
// under the category
func (c *Catalog) ReposForCategory(name string) ([]string, error) {
	fullNames, ok := c.categories[name]
	if !ok {
		return nil, ErrCategoryNotFound(name)
	}
	return copyStrings(fullNames), nil
}

// FullNames returns every "owner/repo" in the catalog, sorted
func (c *Catalog) FullNames() []string {
	out := make([]string, 0, c.RepoCount())
	for owner, repos := range c.reposByOwner {
		for _, repo := range repos {
			out = append(out, owner+"/"+repo)
		}
	}
	sort.Strings(out)
	return out
}

// OwnerCount returns the number of owners
func (c *Catalog) OwnerCount() int {
	return len(c.owners)
}

// RepoCount returns the total number of repository entries
func (c *Catalog) RepoCount() int {
	total := 0
	for _, repos := range c.reposByOwner {
		total += len(repos)
	}
	return total
}

func (c *Catalog) checkIndexEntries(index, name string, fullNames []string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidCatalog(fmt.Sprintf("%s index has a blank key", index))
	}
	for _, fullName := range fullNames {
		owner, repo, err := SplitFullName(fullName)
		if err != nil {
			return ErrInvalidCatalog(fmt.Sprintf("%s[%q] entry %q is not an owner/repo pair", index, name, fullName))
		}
		if !c.contains(owner, repo) {
			return ErrInvalidCatalog(fmt.Sprintf("%s[%q] entry %q is not listed in reposByOwner", index, name, fullName))
		}
	}
	return nil
}

func (c *Catalog) contains(owner, repo string) bool {
	for _, candidate := range c.reposByOwner[owner] {
		if candidate == repo {
			return true
		}
	}
	return false
}

// SplitFullName splits an "owner/repo" string into its two halves
func SplitFullName(fullName string) (owner, repo string, err error) {
	parts := strings.Split(fullName, "/")
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
		return "", "", ErrInvalidRepoName(fullName)
	}
	return parts[0], parts[1], nil
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func copyPopular(in []PopularRepo) []PopularRepo {
	if in == nil {
		return nil
	}
	out := make([]PopularRepo, len(in))
	copy(out, in)
	return out
}

func copyIndex(in map[string][]string) map[string][]string {
	out := make(map[string][]string, len(in))
	for key, values := range in {
		out[key] = copyStrings(values)
	}
	return out
}

func sortedKeys(index map[string][]string) []string {
	keys := make([]string, 0, len(index))
	for key := range index {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
