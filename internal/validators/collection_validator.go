package validators

type CreateCollectionRequest struct {
	Title string `json:"title" binding:"required,min=1,max=100"`
}

type RenameCollectionRequest struct {
	Title string `json:"title" binding:"required,min=1,max=100"`
}

type CollectionQuoteRequest struct {
	QuoteID uint `json:"quote_id" binding:"required"`
}
