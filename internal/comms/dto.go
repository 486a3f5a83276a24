package comms

type CreatePostRequest struct {
	Title      string   `json:"title" validate:"required,max=200"`
	Body       string   `json:"body" validate:"required"`
	RequireAck bool     `json:"requireAck"`
	TeamIDs    []string `json:"teamIds" validate:"required,min=1,dive,uuid"`
}

type UpdatePostRequest struct {
	Title *string `json:"title,omitempty" validate:"omitempty,max=200"`
	Body  *string `json:"body,omitempty"`
}

type ListPostsRequest struct {
	Limit  int `json:"limit" validate:"gte=0,lte=50"`
	Offset int `json:"offset" validate:"gte=0"`
}
