package contract

type AddMediaResponse struct {
	ResultSuccess
	MediaID int64 `json:"media_id"`
}
