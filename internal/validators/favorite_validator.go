package validators

// ToggleFavoriteRequest carries the client's known state; the server trusts
// it instead of reading first. See the favorites service for the tradeoff.
type ToggleFavoriteRequest struct {
	CurrentlyFavorited bool `json:"currently_favorited"`
}
