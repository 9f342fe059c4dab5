package config

// Manifest is the ranger.json file: the repositories to fetch.
type Manifest struct {
	Repositories []Repository `json:"repositories" yaml:"repositories" validate:"dive"`
}

// Repository is one manifest entry. URL is its identity in the lock file.
type Repository struct {
	URL         string `json:"url" yaml:"url" validate:"required"`
	Destination string `json:"destination" yaml:"destination" validate:"required"`
	// Version is a tag glob ("1.2.*") or a branch marker ("b:main").
	Version string `json:"version" yaml:"version" validate:"required"`
}

// Credentials are used to authenticate against HTTPS remotes.
type Credentials struct {
	Username string `json:"username" yaml:"username"`
	Token    string `json:"token" yaml:"token"`
}

// Empty reports whether no credentials are set.
func (c Credentials) Empty() bool {
	return c.Username == "" && c.Token == ""
}
