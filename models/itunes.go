package models

type ITunesSearchResponse struct {
	ResultCount int                  `json:"resultCount"`
	Results     []ITunesSearchResult `json:"results"`
}

type ITunesSearchResult struct {
	WrapperType    string `json:"wrapperType"`
	ArtistName     string `json:"artistName"`
	TrackName      string `json:"trackName"`
	CollectionName string `json:"collectionName"`
	ArtworkURL100  string `json:"artworkUrl100"`
}
