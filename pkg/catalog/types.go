package catalog

// searchResponse mirrors the catalog search endpoint payload.
type searchResponse struct {
	Data []searchEntry `json:"data"`
}

// searchEntry is one result of a catalog search.
type searchEntry struct {
	Name     string `json:"name"`
	Owner    string `json:"owner"`
	Language string `json:"language"`
	Title    string `json:"title"`
	Repo     struct {
		Description string `json:"description"`
	} `json:"repo"`
	Release struct {
		TagName     string `json:"tag_name"`
		PublishedAt string `json:"published_at"`
	} `json:"release"`
}

// entryResponse mirrors the catalog entry endpoint payload.
type entryResponse struct {
	ZipballURL string `json:"zipball_url"`
}
