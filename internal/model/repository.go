package model

// Repository is a catalog entry the user can select for download
type Repository struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// Selection returns the repository as a transfer target
func (r Repository) Selection() Selection {
	return Selection{URL: r.URL, Label: r.Label}
}

// DefaultRepositories returns the built-in catalog
func DefaultRepositories() []Repository {
	return []Repository{
		{
			Label: "Glide - Image Loading Library by BumpTech",
			URL:   "https://github.com/bumptech/glide/archive/master.zip",
		},
		{
			Label: "LoadApp - Current repository by Udacity",
			URL:   "https://github.com/udacity/nd940-c3-advanced-android-programming-project-starter/archive/master.zip",
		},
		{
			Label: "Retrofit - Type-safe HTTP client for Android and Java by Square, Inc",
			URL:   "https://github.com/square/retrofit/archive/master.zip",
		},
	}
}
