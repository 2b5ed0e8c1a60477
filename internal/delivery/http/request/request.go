package request

// AddItemRequest is the body of the synchronous add-item endpoint.
type AddItemRequest struct {
	ListID int64  `json:"listId"`
	URL    string `json:"url"`
}

// CreateIngestionRequest is the body of the asynchronous ingestion endpoint.
type CreateIngestionRequest struct {
	ListID int64  `json:"listId"`
	URL    string `json:"url"`
}
