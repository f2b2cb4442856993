package catalog_test

import (
	"reflect"
	"testing"

	"github.com/andrewsame/shaishaile/internal/domain/catalog"
)

func validDocument() catalog.Document {
	return catalog.Document{
		Owners: []string{"X-lab2018", "vuejs"},
		ReposByOwner: map[string][]string{
			"X-lab2018": {"open-digger", "open-leaderboard"},
			"vuejs":     {"vue"},
		},
		PopularRepos: []catalog.PopularRepo{
			{Owner: "X-lab2018", Repo: "open-digger", Language: "Python", Category: "metrics-tools"},
			{Owner: "vuejs", Repo: "vue", Language: "JavaScript", Category: "frontend"},
		},
		Languages: map[string][]string{
			"Python":     {"X-lab2018/open-digger"},
			"JavaScript": {"vuejs/vue"},
		},
		Categories: map[string][]string{
			"metrics-tools": {"X-lab2018/open-digger"},
			"frontend":      {"vuejs/vue"},
		},
	}
}

func TestFromDocument_Valid(t *testing.T) {
	c, err := catalog.FromDocument(validDocument())
	if err != nil {
		t.Fatalf("FromDocument() error = %v", err)
	}

	owners := c.Owners()
	if !reflect.DeepEqual(owners, []string{"X-lab2018", "vuejs"}) {
		t.Errorf("Owners() = %v, want [X-lab2018 vuejs]", owners)
	}

	repos, err := c.ReposFor("X-lab2018")
	if err != nil {
		t.Fatalf("ReposFor() error = %v", err)
	}
	if !reflect.DeepEqual(repos, []string{"open-digger", "open-leaderboard"}) {
		t.Errorf("ReposFor(X-lab2018) = %v, want [open-digger open-leaderboard]", repos)
	}

	python, err := c.ReposForLanguage("Python")
	if err != nil {
		t.Fatalf("ReposForLanguage() error = %v", err)
	}
	if !reflect.DeepEqual(python, []string{"X-lab2018/open-digger"}) {
		t.Errorf("ReposForLanguage(Python) = %v, want [X-lab2018/open-digger]", python)
	}

	names := c.LanguageNames()
	if !reflect.DeepEqual(names, []string{"JavaScript", "Python"}) {
		t.Errorf("LanguageNames() = %v, want sorted [JavaScript Python]", names)
	}

	if c.OwnerCount() != 2 {
		t.Errorf("OwnerCount() = %v, want 2", c.OwnerCount())
	}
	if c.RepoCount() != 3 {
		t.Errorf("RepoCount() = %v, want 3", c.RepoCount())
	}
}

func TestFromDocument_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(doc *catalog.Document)
	}{
		{
			name:   "no owners",
			mutate: func(doc *catalog.Document) { doc.Owners = nil },
		},
		{
			name: "duplicate owner",
			mutate: func(doc *catalog.Document) {
				doc.Owners = append(doc.Owners, "vuejs")
			},
		},
		{
			name:   "blank owner",
			mutate: func(doc *catalog.Document) { doc.Owners[0] = "  " },
		},
		{
			name: "owner missing from reposByOwner",
			mutate: func(doc *catalog.Document) {
				delete(doc.ReposByOwner, "vuejs")
			},
		},
		{
			name: "unlisted key in reposByOwner",
			mutate: func(doc *catalog.Document) {
				doc.ReposByOwner["facebook"] = []string{"react"}
			},
		},
		{
			name: "empty repo list",
			mutate: func(doc *catalog.Document) {
				doc.ReposByOwner["vuejs"] = []string{}
			},
		},
		{
			name: "blank repo name",
			mutate: func(doc *catalog.Document) {
				doc.ReposByOwner["vuejs"] = []string{"  "}
			},
		},
		{
			name: "language entry is not owner/repo",
			mutate: func(doc *catalog.Document) {
				doc.Languages["Python"] = []string{"open-digger"}
			},
		},
		{
			name: "language entry not listed in reposByOwner",
			mutate: func(doc *catalog.Document) {
				doc.Languages["Python"] = []string{"X-lab2018/unknown"}
			},
		},
		{
			name: "category entry not listed in reposByOwner",
			mutate: func(doc *catalog.Document) {
				doc.Categories["frontend"] = []string{"vuejs/vitepress"}
			},
		},
		{
			name: "popular entry not listed in reposByOwner",
			mutate: func(doc *catalog.Document) {
				doc.PopularRepos = append(doc.PopularRepos, catalog.PopularRepo{Owner: "vuejs", Repo: "vitepress"})
			},
		},
		{
			name: "popular entry references unknown language",
			mutate: func(doc *catalog.Document) {
				doc.PopularRepos[0].Language = "Elm"
			},
		},
		{
			name: "popular entry references unknown category",
			mutate: func(doc *catalog.Document) {
				doc.PopularRepos[0].Category = "databases"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validDocument()
			tt.mutate(&doc)
			if _, err := catalog.FromDocument(doc); err == nil {
				t.Errorf("FromDocument() error = nil, want validation error")
			}
		})
	}
}

func TestParseDocument(t *testing.T) {
	data := []byte(`{
		"owners": ["X-lab2018"],
		"reposByOwner": {"X-lab2018": ["open-digger"]},
		"popularRepos": [{"owner": "X-lab2018", "repo": "open-digger"}],
		"languages": {"Python": ["X-lab2018/open-digger"]},
		"categories": {"metrics-tools": ["X-lab2018/open-digger"]}
	}`)

	c, err := catalog.ParseDocument(data)
	if err != nil {
		t.Fatalf("ParseDocument() error = %v", err)
	}
	if c.OwnerCount() != 1 {
		t.Errorf("OwnerCount() = %v, want 1", c.OwnerCount())
	}

	if _, err := catalog.ParseDocument([]byte(`{not json`)); err == nil {
		t.Error("ParseDocument() error = nil for malformed JSON, want error")
	}

	if _, err := catalog.ParseDocument([]byte(`{"owners": "X-lab2018"}`)); err == nil {
		t.Error("ParseDocument() error = nil for wrong shape, want error")
	}
}

func TestCatalog_CopySemantics(t *testing.T) {
	doc := validDocument()
	c, err := catalog.FromDocument(doc)
	if err != nil {
		t.Fatalf("FromDocument() error = %v", err)
	}

	// Mutating the source document must not leak into the catalog
	doc.Owners[0] = "mutated"
	doc.ReposByOwner["X-lab2018"][0] = "mutated"

	// Neither must mutating a returned slice
	owners := c.Owners()
	owners[0] = "mutated-again"

	if got := c.Owners()[0]; got != "X-lab2018" {
		t.Errorf("Owners()[0] = %v, want X-lab2018", got)
	}
	repos, _ := c.ReposFor("X-lab2018")
	if repos[0] != "open-digger" {
		t.Errorf("ReposFor(X-lab2018)[0] = %v, want open-digger", repos[0])
	}
}

func TestCatalog_PopularBy(t *testing.T) {
	c, err := catalog.FromDocument(validDocument())
	if err != nil {
		t.Fatalf("FromDocument() error = %v", err)
	}

	tests := []struct {
		name     string
		language string
		category string
		want     int
	}{
		{name: "no filter", want: 2},
		{name: "language filter", language: "Python", want: 1},
		{name: "category filter", category: "frontend", want: 1},
		{name: "both filters", language: "JavaScript", category: "frontend", want: 1},
		{name: "mismatched filters", language: "Python", category: "frontend", want: 0},
		{name: "unknown language", language: "Elm", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.PopularBy(tt.language, tt.category)
			if len(got) != tt.want {
				t.Errorf("len(PopularBy(%q, %q)) = %v, want %v", tt.language, tt.category, len(got), tt.want)
			}
		})
	}
}

func TestCatalog_FullNames(t *testing.T) {
	c, err := catalog.FromDocument(validDocument())
	if err != nil {
		t.Fatalf("FromDocument() error = %v", err)
	}

	want := []string{"X-lab2018/open-digger", "X-lab2018/open-leaderboard", "vuejs/vue"}
	if got := c.FullNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("FullNames() = %v, want %v", got, want)
	}
}

func TestNewFullName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "simple", input: "vuejs/vue", want: "vuejs/vue"},
		{name: "dots dashes underscores", input: "X-lab2018/open_digger.js", want: "X-lab2018/open_digger.js"},
		{name: "surrounding whitespace", input: "  vuejs/vue  ", want: "vuejs/vue"},
		{name: "missing slash", input: "vuejs", wantErr: true},
		{name: "too many segments", input: "a/b/c", wantErr: true},
		{name: "empty owner", input: "/vue", wantErr: true},
		{name: "empty repo", input: "vuejs/", wantErr: true},
		{name: "space inside", input: "vue js/vue", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := catalog.NewFullName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewFullName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got.String() != tt.want {
				t.Errorf("NewFullName(%q) = %v, want %v", tt.input, got.String(), tt.want)
			}
		})
	}
}

func TestFullName_Halves(t *testing.T) {
	fullName, err := catalog.NewFullName("X-lab2018/open-digger")
	if err != nil {
		t.Fatalf("NewFullName() error = %v", err)
	}
	if fullName.Owner() != "X-lab2018" {
		t.Errorf("Owner() = %v, want X-lab2018", fullName.Owner())
	}
	if fullName.Repo() != "open-digger" {
		t.Errorf("Repo() = %v, want open-digger", fullName.Repo())
	}
}

func TestDefault(t *testing.T) {
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	repos, err := c.ReposFor("X-lab2018")
	if err != nil {
		t.Fatalf("ReposFor(X-lab2018) error = %v", err)
	}
	if len(repos) == 0 || repos[0] != "open-digger" {
		t.Errorf("ReposFor(X-lab2018) = %v, want [open-digger]", repos)
	}

	python, err := c.ReposForLanguage("Python")
	if err != nil {
		t.Fatalf("ReposForLanguage(Python) error = %v", err)
	}
	if len(python) == 0 {
		t.Error("ReposForLanguage(Python) is empty, want curated entries")
	}

	again, err := catalog.Default()
	if err != nil {
		t.Fatalf("Default() second call error = %v", err)
	}
	if again != c {
		t.Error("Default() should return the same parsed catalog on every call")
	}
}
