package dto

// PopularRepoResponse is one curated shortlist entry. The enrichment
// fields are filled only when live GitHub metadata was requested.
type PopularRepoResponse struct {
	Owner       string `json:"owner"`
	Repo        string `json:"repo"`
	Language    string `json:"language"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	HTMLURL     string `json:"html_url,omitempty"`
	Stars       int    `json:"stars,omitempty"`
}

// CatalogDocumentResponse is the full snake_case wire document. Serving
// it makes one instance a valid remote source for another.
type CatalogDocumentResponse struct {
	Owners       []string              `json:"owners"`
	ReposByOwner map[string][]string   `json:"repos_by_owner"`
	PopularRepos []PopularRepoResponse `json:"popular_repos"`
	Languages    map[string][]string   `json:"languages"`
	Categories   map[string][]string   `json:"categories"`
}

// OwnersResponse backs the owner selector
type OwnersResponse struct {
	Owners []string `json:"owners"`
}

// OwnerReposResponse backs the repository selector for one owner
type OwnerReposResponse struct {
	Owner string   `json:"owner"`
	Repos []string `json:"repos"`
}

// PopularListResponse lists the (optionally filtered) shortlist
type PopularListResponse struct {
	PopularRepos []PopularRepoResponse `json:"popular_repos"`
}

// LanguagesResponse backs the language filter dropdown
type LanguagesResponse struct {
	Languages []string `json:"languages"`
}

// CategoriesResponse backs the category filter dropdown
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// IndexedReposResponse lists the "owner/repo" entries of one language
// or category index
type IndexedReposResponse struct {
	Name  string   `json:"name"`
	Repos []string `json:"repos"`
}

// VersionResponse describes the currently published snapshot
type VersionResponse struct {
	Version  string `json:"version"`
	Source   string `json:"source"`
	LoadedAt string `json:"loaded_at"`
	Owners   int    `json:"owners"`
	Repos    int    `json:"repos"`
}

// RefreshRequest selects the source for a catalog refresh
type RefreshRequest struct {
	Source string `json:"source"`
}

// RefreshResponse reports a successful catalog refresh
type RefreshResponse struct {
	Message string          `json:"message"`
	Version VersionResponse `json:"version"`
}
